package service

import (
	"context"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/queue"
)

// The interfaces below are the only view a service has of its peers.
// Implementations report a missing record with an error matching
// repository.ErrNotFound and an unreachable peer with ErrUnavailable.

// AdminLookup answers the is_admin question for a user id.
type AdminLookup interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// UsersClient resolves user records for the bookings detail view.
type UsersClient interface {
	UserByID(ctx context.Context, userID string) (model.User, error)
}

// MovieClient fetches single movies on behalf of caller.
type MovieClient interface {
	MovieByID(ctx context.Context, caller, movieID string) (model.Movie, error)
}

// ScheduleClient lists the movie ids scheduled on a date.
type ScheduleClient interface {
	MoviesOnDate(ctx context.Context, caller, date string) ([]string, error)
}

// BookingsClient lists every booking visible to caller.
type BookingsClient interface {
	UserBookings(ctx context.Context, caller string) ([]model.Booking, error)
}

// EventPublisher hands booking events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}
