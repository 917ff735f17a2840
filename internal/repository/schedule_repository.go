package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/model"
)

// ScheduleRepo wraps the schedule collection: one entry per date, each
// listing the movie ids playing on that date.
type ScheduleRepo struct {
	store *database.RecordStore[model.ScheduleEntry]
}

func NewScheduleRepo(store *database.RecordStore[model.ScheduleEntry]) *ScheduleRepo {
	return &ScheduleRepo{store: store}
}

// NewScheduleStore builds the record store backing ScheduleRepo.
func NewScheduleStore(doc database.Document) *database.RecordStore[model.ScheduleEntry] {
	return database.NewRecordStore[model.ScheduleEntry]("schedule", doc, model.ScheduleEntry.Clone)
}

func (r *ScheduleRepo) List() []model.ScheduleEntry {
	return r.store.All()
}

// MoviesOnDate returns the movie ids scheduled for date.
func (r *ScheduleRepo) MoviesOnDate(date string) ([]string, error) {
	e, ok := r.store.FindFirst(func(e model.ScheduleEntry) bool { return e.Date == date })
	if !ok {
		return nil, NotFound(LevelDate, date)
	}
	return e.Movies, nil
}

// DatesForMovie returns every date on which movieID is scheduled.
func (r *ScheduleRepo) DatesForMovie(movieID string) ([]string, error) {
	var dates []string
	for _, e := range r.store.Filter(func(e model.ScheduleEntry) bool { return e.Has(movieID) }) {
		dates = append(dates, e.Date)
	}
	if len(dates) == 0 {
		return nil, NotFound(LevelMovie, movieID)
	}
	return dates, nil
}

// AddDate creates an entry for date.  Duplicate movie ids in movies are
// collapsed.  An existing date is rejected with ErrConflict.
func (r *ScheduleRepo) AddDate(ctx context.Context, date string, movies []string) (model.ScheduleEntry, error) {
	entry := model.ScheduleEntry{Date: date, Movies: []string{}}
	for _, id := range movies {
		if id != "" && !entry.Has(id) {
			entry.Movies = append(entry.Movies, id)
		}
	}
	err := r.store.Update(ctx, func(entries []model.ScheduleEntry) ([]model.ScheduleEntry, error) {
		for _, e := range entries {
			if e.Date == date {
				return nil, fmt.Errorf("%w: schedule date %q already exists", ErrConflict, date)
			}
		}
		return append(entries, entry), nil
	})
	return entry, err
}

// AddMovie schedules movieID on date, creating the date when it does
// not exist yet.  created reports whether a new date entry was made.
func (r *ScheduleRepo) AddMovie(ctx context.Context, date, movieID string) (entry model.ScheduleEntry, created bool, err error) {
	err = r.store.Update(ctx, func(entries []model.ScheduleEntry) ([]model.ScheduleEntry, error) {
		for i := range entries {
			if entries[i].Date != date {
				continue
			}
			if entries[i].Has(movieID) {
				return nil, fmt.Errorf("%w: movie %q already scheduled on %s", ErrConflict, movieID, date)
			}
			entries[i].Movies = append(entries[i].Movies, movieID)
			entry = entries[i].Clone()
			return entries, nil
		}
		created = true
		entry = model.ScheduleEntry{Date: date, Movies: []string{movieID}}
		return append(entries, entry.Clone()), nil
	})
	return entry, created, err
}

// RemoveDate deletes the whole entry for date.
func (r *ScheduleRepo) RemoveDate(ctx context.Context, date string) error {
	return r.store.Update(ctx, func(entries []model.ScheduleEntry) ([]model.ScheduleEntry, error) {
		for i := range entries {
			if entries[i].Date == date {
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, NotFound(LevelDate, date)
	})
}

// RemoveMovie unschedules movieID from date.  The date entry is kept
// even when it ends up empty.
func (r *ScheduleRepo) RemoveMovie(ctx context.Context, date, movieID string) error {
	return r.store.Update(ctx, func(entries []model.ScheduleEntry) ([]model.ScheduleEntry, error) {
		for i := range entries {
			if entries[i].Date != date {
				continue
			}
			if !entries[i].Has(movieID) {
				return nil, NotFound(LevelMovie, movieID)
			}
			entries[i].RemoveMovie(movieID)
			return entries, nil
		}
		return nil, NotFound(LevelDate, date)
	})
}

// RemoveMovieEverywhere unschedules movieID from every date and returns
// how many dates were touched.  The collection is persisted once.
func (r *ScheduleRepo) RemoveMovieEverywhere(ctx context.Context, movieID string) (int, error) {
	touched := 0
	err := r.store.Update(ctx, func(entries []model.ScheduleEntry) ([]model.ScheduleEntry, error) {
		for i := range entries {
			if entries[i].Has(movieID) {
				touched++
			}
		}
		if touched == 0 {
			return nil, NotFound(LevelMovie, movieID)
		}
		for i := range entries {
			entries[i].RemoveMovie(movieID)
		}
		return entries, nil
	})
	return touched, err
}
