// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrNotFound indicates that an entity or a nested element of
// one is absent, while ErrConflict signals that a create or add would
// duplicate an existing record.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every *NotFoundError. Handlers should
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an id already exists or a movie is
// already booked or scheduled for a date. Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrIntegrity is returned when a record references an entity that
// does not exist, e.g. a booking whose userid has no matching user.
var ErrIntegrity = errors.New("data integrity violation")

// Nesting levels reported by NotFoundError.
const (
	LevelUser     = "user"
	LevelMovie    = "movie"
	LevelDate     = "date"
	LevelBooking  = "booking"
	LevelSchedule = "schedule"
)

// NotFoundError identifies which level of a lookup came up empty.
type NotFoundError struct {
	Level string
	Key   string
}

// NotFound builds a *NotFoundError for the given level and key.
func NotFound(level, key string) error {
	return &NotFoundError{Level: level, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Level, e.Key)
}

// Is makes errors.Is(err, ErrNotFound) hold for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFoundLevel returns the level of the NotFoundError wrapped in err,
// or "" if there is none.
func NotFoundLevel(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Level
	}
	return ""
}
