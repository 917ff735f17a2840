package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/model"
)

// MovieRepo wraps the movies collection.
type MovieRepo struct {
	store *database.RecordStore[model.Movie]
}

func NewMovieRepo(store *database.RecordStore[model.Movie]) *MovieRepo {
	return &MovieRepo{store: store}
}

// NewMovieStore builds the record store backing MovieRepo.
func NewMovieStore(doc database.Document) *database.RecordStore[model.Movie] {
	return database.NewRecordStore[model.Movie]("movies", doc, nil)
}

func (r *MovieRepo) List() []model.Movie {
	return r.store.All()
}

func (r *MovieRepo) GetByID(id string) (model.Movie, error) {
	m, ok := r.store.FindFirst(func(m model.Movie) bool { return m.ID == id })
	if !ok {
		return model.Movie{}, NotFound(LevelMovie, id)
	}
	return m, nil
}

// GetByTitle returns the first movie whose title matches exactly.
func (r *MovieRepo) GetByTitle(title string) (model.Movie, error) {
	m, ok := r.store.FindFirst(func(m model.Movie) bool { return m.Title == title })
	if !ok {
		return model.Movie{}, NotFound(LevelMovie, title)
	}
	return m, nil
}

func (r *MovieRepo) Create(ctx context.Context, m model.Movie) error {
	return r.store.Update(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		for _, existing := range movies {
			if existing.ID == m.ID {
				return nil, fmt.Errorf("%w: movie id %q already exists", ErrConflict, m.ID)
			}
		}
		return append(movies, m), nil
	})
}

func (r *MovieRepo) UpdateRating(ctx context.Context, id string, rating float64) (model.Movie, error) {
	var updated model.Movie
	err := r.store.Update(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		for i := range movies {
			if movies[i].ID == id {
				movies[i].Rating = rating
				updated = movies[i]
				return movies, nil
			}
		}
		return nil, NotFound(LevelMovie, id)
	})
	return updated, err
}

func (r *MovieRepo) Delete(ctx context.Context, id string) (model.Movie, error) {
	var removed model.Movie
	err := r.store.Update(ctx, func(movies []model.Movie) ([]model.Movie, error) {
		for i := range movies {
			if movies[i].ID == id {
				removed = movies[i]
				return append(movies[:i], movies[i+1:]...), nil
			}
		}
		return nil, NotFound(LevelMovie, id)
	})
	return removed, err
}
