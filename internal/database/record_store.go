// Package database owns durable storage: SQL connections, the document
// backends and the generic in-memory record store layered on them.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/metrics"
)

// ErrWriteFailed is returned when a mutation was applied in memory but
// could not be flushed.  The in-memory state is not rolled back, so
// callers should treat the outcome as uncertain and re-read.
var ErrWriteFailed = errors.New("write failed")

// RecordStore holds one collection in memory, in insertion order, and
// rewrites the whole collection to its Document after every mutation.
// The store exclusively owns the slice; readers get copies.
type RecordStore[T any] struct {
	mu     sync.RWMutex
	field  string
	doc    Document
	clone  func(T) T
	items  []T
	loaded bool
}

// NewRecordStore builds a store whose document wraps the collection in
// the named field (e.g. "bookings").  clone must return a value that
// shares no mutable state with its argument; nil means T is copied by
// assignment.
func NewRecordStore[T any](field string, doc Document, clone func(T) T) *RecordStore[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &RecordStore[T]{field: field, doc: doc, clone: clone}
}

// Name returns the collection name.
func (s *RecordStore[T]) Name() string { return s.field }

// Load reads the collection from its document.  It is meant to be
// called once at startup; a missing document yields an empty
// collection.
func (s *RecordStore[T]) Load(ctx context.Context) error {
	body, err := s.doc.Read(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.field, err)
	}
	items := []T{}
	if len(body) > 0 {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return fmt.Errorf("decode %s: %w", s.field, err)
		}
		if raw, ok := wrapper[s.field]; ok && string(raw) != "null" {
			if err := json.Unmarshal(raw, &items); err != nil {
				return fmt.Errorf("decode %s: %w", s.field, err)
			}
		}
	}

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.mu.Unlock()

	logging.FromContext(ctx).WithField("collection", s.field).
		Infof("loaded %d records", len(items))
	return nil
}

// All returns a copy of the collection.
func (s *RecordStore[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	for i, v := range s.items {
		out[i] = s.clone(v)
	}
	return out
}

// Len returns the number of records.
func (s *RecordStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// FindFirst returns a copy of the first record matching pred.
func (s *RecordStore[T]) FindFirst(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.items {
		if pred(v) {
			return s.clone(v), true
		}
	}
	var zero T
	return zero, false
}

// Filter returns copies of every record matching pred, in order.
func (s *RecordStore[T]) Filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, v := range s.items {
		if pred(v) {
			out = append(out, s.clone(v))
		}
	}
	return out
}

// Update runs fn on the owned collection and persists the result.  fn
// receives the live slice and returns the slice to keep.  When fn
// fails nothing is stored or persisted, so fn must validate before it
// mutates.  When the flush fails the error wraps ErrWriteFailed and the
// mutation stays in memory.
func (s *RecordStore[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := fn(s.items)
	if err != nil {
		return err
	}
	s.items = items
	return s.persistLocked(ctx)
}

// Persist flushes the current collection.
func (s *RecordStore[T]) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(ctx)
}

func (s *RecordStore[T]) persistLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(map[string][]T{s.field: items})
	if err == nil {
		err = s.doc.Write(ctx, body)
	}
	metrics.StorePersists.WithLabelValues(s.field, metrics.Outcome(err)).Inc()
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("collection", s.field).
			Error("persist failed; in-memory state kept")
		return fmt.Errorf("%w: persist %s: %v", ErrWriteFailed, s.field, err)
	}
	return nil
}
