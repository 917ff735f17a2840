// Package queue defines the booking events exchanged over the message
// broker together with their publisher and the log-writing consumer.
package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-records/internal/logging"
)

// BookingEventsQueue is the durable queue booking events are routed to.
const BookingEventsQueue = "booking.events"

// Booking event types.
const (
	EventBookingCreated = "booking.created"
	EventMovieAdded     = "booking.movie_added"
	EventDateAdded      = "booking.date_added"
	EventMovieRemoved   = "booking.movie_removed"
	EventDateRemoved    = "booking.date_removed"
	EventUserCleared    = "booking.user_cleared"
)

// BookingEvent is published after a booking mutation has been
// persisted.  It carries enough context for downstream consumers to
// log or notify without calling back into the bookings service.
type BookingEvent struct {
	EventID       string `json:"event_id"`
	Type          string `json:"type"`
	UserID        string `json:"userid"`
	Date          string `json:"date,omitempty"`
	MovieID       string `json:"movie_id,omitempty"`
	OccurredAt    string `json:"occurred_at"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// NewBookingEvent stamps a fresh event id and time and picks the
// correlation id up from ctx.
func NewBookingEvent(ctx context.Context, typ, userID, date, movieID string) BookingEvent {
	return BookingEvent{
		EventID:       uuid.NewString(),
		Type:          typ,
		UserID:        userID,
		Date:          date,
		MovieID:       movieID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		CorrelationID: logging.CorrelationIDFromContext(ctx),
	}
}
