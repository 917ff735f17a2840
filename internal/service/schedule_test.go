package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/repository"
)

func newScheduleFixture(t *testing.T) *ScheduleService {
	doc := &memDoc{body: []byte(`{"schedule":[{"date":"2024-01-01","movies":["m1","m2"]}]}`)}
	store := repository.NewScheduleStore(doc)
	loadStore(t, store)
	guard, _ := testGuard()
	movies := &fakeMovies{movies: map[string]model.Movie{
		"m1": {ID: "m1", Title: "Alien", Rating: 8.4, Director: "Ridley Scott"},
	}}
	return NewScheduleService(repository.NewScheduleRepo(store), guard, movies)
}

func TestScheduleReadsNeedKnownCaller(t *testing.T) {
	svc := newScheduleFixture(t)
	ctx := context.Background()

	movies, err := svc.MoviesOnDate(ctx, "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, movies)

	_, err = svc.MoviesOnDate(ctx, "ghost", "2024-01-01")
	assert.ErrorIs(t, err, ErrUnknownCaller)

	_, err = svc.DatesForMovie(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrBadRequest)

	md, err := svc.DatesForMovie(ctx, "u1", "m2")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, md.Dates)
}

func TestScheduleDateDetails(t *testing.T) {
	svc := newScheduleFixture(t)

	d, err := svc.DateDetails(context.Background(), "u1", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, d.Movies, 2)
	assert.Equal(t, "Alien", d.Movies[0].Title)
	assert.Equal(t, ReasonMovieNotFound, d.Movies[1].Error)
}

func TestScheduleMutations(t *testing.T) {
	svc := newScheduleFixture(t)
	ctx := context.Background()

	_, err := svc.AddMovieToDate(ctx, "u1", "2024-01-01", "m3")
	assert.ErrorIs(t, err, ErrForbidden)

	res, err := svc.AddMovieToDate(ctx, "admin", "2024-01-01", "m3")
	require.NoError(t, err)
	assert.Equal(t, OutcomeScheduleMovieAdded, res.Outcome)

	res, err = svc.AddMovieToDate(ctx, "admin", "2024-01-09", "m3")
	require.NoError(t, err)
	assert.Equal(t, OutcomeScheduleDateAdded, res.Outcome)

	_, err = svc.AddDate(ctx, "admin", "2024-01-09", nil)
	assert.ErrorIs(t, err, repository.ErrConflict)

	n, err := svc.RemoveMovieEverywhere(ctx, "admin", "m3")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	err = svc.RemoveMovieFromDate(ctx, "admin", "2024-01-01", "m3")
	assert.Equal(t, repository.LevelMovie, repository.NotFoundLevel(err))

	require.NoError(t, svc.RemoveDate(ctx, "admin", "2024-01-09"))
	entries, err := svc.List(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
