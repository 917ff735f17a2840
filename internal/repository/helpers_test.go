package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/database"
)

type memDoc struct {
	body     []byte
	writes   int
	writeErr error
}

func (d *memDoc) Read(context.Context) ([]byte, error) { return d.body, nil }

func (d *memDoc) Write(_ context.Context, body []byte) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.writes++
	d.body = append([]byte(nil), body...)
	return nil
}

func loaded[T any](t *testing.T, store *database.RecordStore[T]) *database.RecordStore[T] {
	t.Helper()
	require.NoError(t, store.Load(context.Background()))
	return store
}

var errDisk = errors.New("disk full")
