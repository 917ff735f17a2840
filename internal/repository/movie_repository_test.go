package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/model"
)

func TestMovieRepo(t *testing.T) {
	doc := &memDoc{body: []byte(`{"movies":[{"id":"m1","title":"Alien","rating":8.4,"director":"Ridley Scott"}]}`)}
	repo := NewMovieRepo(loaded(t, NewMovieStore(doc)))
	ctx := context.Background()

	m, err := repo.GetByTitle("Alien")
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)

	require.NoError(t, repo.Create(ctx, model.Movie{ID: "m2", Title: "Heat", Rating: 8.3, Director: "Michael Mann"}))
	assert.ErrorIs(t, repo.Create(ctx, model.Movie{ID: "m2"}), ErrConflict)

	m, err = repo.UpdateRating(ctx, "m2", 9)
	require.NoError(t, err)
	assert.Equal(t, 9.0, m.Rating)

	_, err = repo.Delete(ctx, "m1")
	require.NoError(t, err)
	_, err = repo.GetByID("m1")
	assert.Equal(t, LevelMovie, NotFoundLevel(err))
	assert.Len(t, repo.List(), 1)
}
