package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/cinema-records/internal/database"
	"github.com/iliyamo/cinema-records/internal/model"
)

// BookingRepo wraps the bookings collection and keeps its nesting
// consistent: one record per user, one date element per date, one
// occurrence of a movie id per date.
type BookingRepo struct {
	store *database.RecordStore[model.Booking]
}

func NewBookingRepo(store *database.RecordStore[model.Booking]) *BookingRepo {
	return &BookingRepo{store: store}
}

// NewBookingStore builds the record store backing BookingRepo.
func NewBookingStore(doc database.Document) *database.RecordStore[model.Booking] {
	return database.NewRecordStore[model.Booking]("bookings", doc, model.Booking.Clone)
}

func (r *BookingRepo) List() []model.Booking {
	return r.store.All()
}

// ForUser returns the booking record of userID.
func (r *BookingRepo) ForUser(userID string) (model.Booking, error) {
	b, ok := r.store.FindFirst(func(b model.Booking) bool { return b.UserID == userID })
	if !ok {
		return model.Booking{}, NotFound(LevelBooking, userID)
	}
	return b, nil
}

// Add books movieID on date for userID.  It locates the user's record
// or creates it, appends to the date or creates it, and rejects a
// movie already booked on that date with ErrConflict.  Date and movie
// order is insertion order.
func (r *BookingRepo) Add(ctx context.Context, userID, date, movieID string) (model.BookingResult, error) {
	var res model.BookingResult
	err := r.store.Update(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		for i := range bookings {
			b := &bookings[i]
			if b.UserID != userID {
				continue
			}
			if d := b.DateIndex(date); d >= 0 {
				if b.Dates[d].Has(movieID) {
					return nil, fmt.Errorf("%w: movie %q already booked on %s for %s", ErrConflict, movieID, date, userID)
				}
				b.Dates[d].Movies = append(b.Dates[d].Movies, movieID)
				res = model.BookingResult{Outcome: model.OutcomeMovieAdded, Booking: b.Clone()}
				return bookings, nil
			}
			b.Dates = append(b.Dates, model.BookedDate{Date: date, Movies: []string{movieID}})
			res = model.BookingResult{Outcome: model.OutcomeDateAdded, Booking: b.Clone()}
			return bookings, nil
		}
		nb := model.Booking{
			UserID: userID,
			Dates:  []model.BookedDate{{Date: date, Movies: []string{movieID}}},
		}
		res = model.BookingResult{Outcome: model.OutcomeBookingCreated, Booking: nb.Clone()}
		return append(bookings, nb), nil
	})
	return res, err
}

// RemoveMovie cancels one movie on one date.  Not-found errors name the
// level that was missing: booking, then date, then movie.  Empty dates
// are kept.
func (r *BookingRepo) RemoveMovie(ctx context.Context, userID, date, movieID string) (model.Booking, error) {
	var out model.Booking
	err := r.store.Update(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		i := indexOfBooking(bookings, userID)
		if i < 0 {
			return nil, NotFound(LevelBooking, userID)
		}
		b := &bookings[i]
		d := b.DateIndex(date)
		if d < 0 {
			return nil, NotFound(LevelDate, date)
		}
		if !b.Dates[d].RemoveMovie(movieID) {
			return nil, NotFound(LevelMovie, movieID)
		}
		out = b.Clone()
		return bookings, nil
	})
	return out, err
}

// RemoveDate cancels every movie of one date by dropping the date
// element.  The booking is kept even when no date remains.
func (r *BookingRepo) RemoveDate(ctx context.Context, userID, date string) (model.Booking, error) {
	var out model.Booking
	err := r.store.Update(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		i := indexOfBooking(bookings, userID)
		if i < 0 {
			return nil, NotFound(LevelBooking, userID)
		}
		b := &bookings[i]
		d := b.DateIndex(date)
		if d < 0 {
			return nil, NotFound(LevelDate, date)
		}
		b.Dates = append(b.Dates[:d], b.Dates[d+1:]...)
		out = b.Clone()
		return bookings, nil
	})
	return out, err
}

// RemoveAll deletes the whole booking record of userID.
func (r *BookingRepo) RemoveAll(ctx context.Context, userID string) error {
	return r.store.Update(ctx, func(bookings []model.Booking) ([]model.Booking, error) {
		i := indexOfBooking(bookings, userID)
		if i < 0 {
			return nil, NotFound(LevelBooking, userID)
		}
		return append(bookings[:i], bookings[i+1:]...), nil
	})
}

func indexOfBooking(bookings []model.Booking, userID string) int {
	for i := range bookings {
		if bookings[i].UserID == userID {
			return i
		}
	}
	return -1
}
