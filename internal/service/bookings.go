package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/queue"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// BookingsService owns the bookings collection and validates new
// bookings against the schedule before writing them.
type BookingsService struct {
	repo     *repository.BookingRepo
	guard    *AdminGuard
	schedule ScheduleClient
	movies   MovieClient
	users    UsersClient
	events   EventPublisher
}

// NewBookingsService wires the orchestrator.  events may be nil, in
// which case no booking events are emitted.
func NewBookingsService(repo *repository.BookingRepo, guard *AdminGuard, schedule ScheduleClient,
	movies MovieClient, users UsersClient, events EventPublisher) *BookingsService {
	return &BookingsService{
		repo:     repo,
		guard:    guard,
		schedule: schedule,
		movies:   movies,
		users:    users,
		events:   events,
	}
}

// List returns every booking.  Admin only; the users service calls it
// for the users-who-booked lookup.
func (s *BookingsService) List(ctx context.Context, caller string) ([]model.Booking, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	return s.repo.List(), nil
}

func (s *BookingsService) ForUser(ctx context.Context, caller, userID string) (model.Booking, error) {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return model.Booking{}, err
	}
	return s.repo.ForUser(userID)
}

// Add books movieID on date for userID after checking that the movie is
// on the schedule for that date.  The schedule is consulted before the
// bookings collection is locked.
func (s *BookingsService) Add(ctx context.Context, caller, userID, date, movieID string) (model.BookingResult, error) {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return model.BookingResult{}, err
	}
	if strings.TrimSpace(date) == "" || strings.TrimSpace(movieID) == "" {
		return model.BookingResult{}, fmt.Errorf("%w: date and movie id are required", ErrBadRequest)
	}

	scheduled, err := s.schedule.MoviesOnDate(ctx, caller, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.BookingResult{}, repository.NotFound(repository.LevelDate, date)
		}
		return model.BookingResult{}, fmt.Errorf("check schedule: %w", err)
	}
	if !contains(scheduled, movieID) {
		return model.BookingResult{}, fmt.Errorf("%w: movie %s is not available on %s", ErrBadRequest, movieID, date)
	}

	res, err := s.repo.Add(ctx, userID, date, movieID)
	if err != nil {
		return model.BookingResult{}, err
	}
	s.publish(ctx, addEventType(res.Outcome), userID, date, movieID)
	return res, nil
}

func (s *BookingsService) RemoveMovie(ctx context.Context, caller, userID, date, movieID string) (model.Booking, error) {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return model.Booking{}, err
	}
	b, err := s.repo.RemoveMovie(ctx, userID, date, movieID)
	if err != nil {
		return model.Booking{}, err
	}
	s.publish(ctx, queue.EventMovieRemoved, userID, date, movieID)
	return b, nil
}

func (s *BookingsService) RemoveDate(ctx context.Context, caller, userID, date string) (model.Booking, error) {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return model.Booking{}, err
	}
	b, err := s.repo.RemoveDate(ctx, userID, date)
	if err != nil {
		return model.Booking{}, err
	}
	s.publish(ctx, queue.EventDateRemoved, userID, date, "")
	return b, nil
}

func (s *BookingsService) RemoveAll(ctx context.Context, caller, userID string) error {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return err
	}
	if err := s.repo.RemoveAll(ctx, userID); err != nil {
		return err
	}
	s.publish(ctx, queue.EventUserCleared, userID, "", "")
	return nil
}

// Details returns the booking of userID with the user record resolved
// and every movie expanded.  Each lookup fails on its own: a missing
// movie or user becomes an inline error and the rest is still filled.
func (s *BookingsService) Details(ctx context.Context, caller, userID string) (model.BookingDetails, error) {
	if err := s.guard.Authorize(ctx, caller, userID); err != nil {
		return model.BookingDetails{}, err
	}
	b, err := s.repo.ForUser(userID)
	if err != nil {
		return model.BookingDetails{}, err
	}

	out := model.BookingDetails{UserID: b.UserID, Dates: make([]model.DateDetails, 0, len(b.Dates))}
	u, err := s.users.UserByID(ctx, b.UserID)
	switch {
	case err == nil:
		out.User = &u
	case errors.Is(err, repository.ErrNotFound):
		out.UserError = "user not found"
	default:
		logging.FromContext(ctx).WithError(err).WithField("userid", b.UserID).
			Warn("user expansion failed")
		out.UserError = "user service unreachable"
	}

	for _, d := range b.Dates {
		if ctx.Err() != nil {
			return model.BookingDetails{}, ctx.Err()
		}
		out.Dates = append(out.Dates, model.DateDetails{
			Date:   d.Date,
			Movies: expandMovies(ctx, s.movies, caller, d.Movies),
		})
	}
	return out, nil
}

func (s *BookingsService) publish(ctx context.Context, typ, userID, date, movieID string) {
	if s.events == nil {
		return
	}
	ev := queue.NewBookingEvent(ctx, typ, userID, date, movieID)
	if err := s.events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).WithError(err).WithField("event", typ).
			Warn("booking event dropped")
	}
}

func addEventType(o model.BookingOutcome) string {
	switch o {
	case model.OutcomeMovieAdded:
		return queue.EventMovieAdded
	case model.OutcomeDateAdded:
		return queue.EventDateAdded
	default:
		return queue.EventBookingCreated
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
