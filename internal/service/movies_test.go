package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

func TestMoviesService(t *testing.T) {
	doc := &memDoc{body: []byte(`{"movies":[{"id":"m1","title":"Alien","rating":8.4,"director":"Ridley Scott"}]}`)}
	store := repository.NewMovieStore(doc)
	loadStore(t, store)
	guard, _ := testGuard()
	svc := NewMoviesService(repository.NewMovieRepo(store), guard)
	ctx := context.Background()

	m, err := svc.MovieByTitle(ctx, "u1", "Alien")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)

	_, err = svc.MovieByID(ctx, "ghost", "m1")
	assert.ErrorIs(t, err, ErrUnknownCaller)

	_, err = svc.Create(ctx, "u1", model.Movie{ID: "m2", Title: "Heat"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, "admin", model.Movie{ID: "m2", Title: "Heat", Rating: 8.3})
	require.NoError(t, err)

	m, err = svc.UpdateRating(ctx, "admin", "m2", 9.1)
	require.NoError(t, err)
	assert.Equal(t, 9.1, m.Rating)

	_, err = svc.Delete(ctx, "admin", "m404")
	assert.Equal(t, repository.LevelMovie, repository.NotFoundLevel(err))

	all, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
