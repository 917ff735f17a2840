package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/queue"
	"github.com/iliyamo/cinema-records/internal/repository"
)

type bookingsFixture struct {
	svc      *BookingsService
	repo     *repository.BookingRepo
	doc      *memDoc
	schedule *fakeSchedule
	movies   *fakeMovies
	users    *fakeUsers
	events   *recordingPublisher
}

func newBookingsFixture(t *testing.T, body string) *bookingsFixture {
	doc := &memDoc{body: []byte(body)}
	store := repository.NewBookingStore(doc)
	loadStore(t, store)

	f := &bookingsFixture{
		repo: repository.NewBookingRepo(store),
		doc:  doc,
		schedule: &fakeSchedule{dates: map[string][]string{
			"2024-01-01": {"m1", "m2"},
		}},
		movies: &fakeMovies{movies: map[string]model.Movie{
			"m1": {ID: "m1", Title: "Alien", Rating: 8.4, Director: "Ridley Scott"},
		}},
		users: &fakeUsers{users: map[string]model.User{
			"u1": {ID: "u1", Name: "Bob"},
		}},
		events: &recordingPublisher{},
	}
	guard, _ := testGuard()
	f.svc = NewBookingsService(f.repo, guard, f.schedule, f.movies, f.users, f.events)
	return f
}

func TestBookingCreateScenarios(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[]}`)
	ctx := context.Background()

	// new booking
	res, err := f.svc.Add(ctx, "u1", "u1", "2024-01-01", "m1")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeBookingCreated, res.Outcome)
	assert.JSONEq(t, `{"bookings":[{"userid":"u1","dates":[{"date":"2024-01-01","movies":["m1"]}]}]}`, string(f.doc.body))

	// repeat
	_, err = f.svc.Add(ctx, "u1", "u1", "2024-01-01", "m1")
	assert.ErrorIs(t, err, repository.ErrConflict)

	// second movie on the same date
	res, err = f.svc.Add(ctx, "u1", "u1", "2024-01-01", "m2")
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeMovieAdded, res.Outcome)
	assert.Equal(t, []string{"m1", "m2"}, res.Booking.Dates[0].Movies)

	// movie not on the schedule
	before := string(f.doc.body)
	_, err = f.svc.Add(ctx, "u1", "u1", "2024-01-01", "m9")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, before, string(f.doc.body))

	assert.Equal(t, []string{queue.EventBookingCreated, queue.EventMovieAdded}, f.events.Types())
}

func TestBookingCreateUnknownDate(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[]}`)

	_, err := f.svc.Add(context.Background(), "admin", "u1", "2031-01-01", "m1")
	assert.Equal(t, repository.LevelDate, repository.NotFoundLevel(err))
	assert.Empty(t, f.repo.List())
}

func TestBookingCreateValidation(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[]}`)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, "u1", "u2", "2024-01-01", "m1")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Add(ctx, "u1", "u1", "", "m1")
	assert.ErrorIs(t, err, ErrBadRequest)

	f.schedule.err = ErrUnavailable
	_, err = f.svc.Add(ctx, "u1", "u1", "2024-01-01", "m1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, f.repo.List())
}

func TestBookingPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[]}`)
	f.events.err = errors.New("broker down")

	_, err := f.svc.Add(context.Background(), "u1", "u1", "2024-01-01", "m1")
	assert.NoError(t, err)
}

func TestBookingRemovals(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[{"userid":"u1","dates":[{"date":"2024-01-01","movies":["m1","m2"]}]}]}`)
	ctx := context.Background()

	b, err := f.svc.RemoveMovie(ctx, "u1", "u1", "2024-01-01", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, b.Dates[0].Movies)

	_, err = f.svc.RemoveMovie(ctx, "u1", "u1", "2024-01-01", "m1")
	assert.Equal(t, repository.LevelMovie, repository.NotFoundLevel(err))

	b, err = f.svc.RemoveDate(ctx, "admin", "u1", "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, b.Dates)

	_, err = f.svc.ForUser(ctx, "u1", "u1")
	require.NoError(t, err, "booking kept after its last date is removed")

	assert.ErrorIs(t, f.svc.RemoveAll(ctx, "u2", "u1"), ErrForbidden)
	require.NoError(t, f.svc.RemoveAll(ctx, "u1", "u1"))
	_, err = f.svc.ForUser(ctx, "admin", "u1")
	assert.Equal(t, repository.LevelBooking, repository.NotFoundLevel(err))

	assert.Equal(t, []string{queue.EventMovieRemoved, queue.EventDateRemoved, queue.EventUserCleared}, f.events.Types())
}

func TestBookingListIsAdminOnly(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[{"userid":"u1","dates":[]}]}`)
	ctx := context.Background()

	_, err := f.svc.List(ctx, "u1")
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := f.svc.List(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingDetailsIsolatesFailures(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[{"userid":"u1","dates":[{"date":"2024-01-01","movies":["m1","m404","m503"]}]}]}`)
	f.movies.down = map[string]bool{"m503": true}

	d, err := f.svc.Details(context.Background(), "u1", "u1")
	require.NoError(t, err)
	require.NotNil(t, d.User)
	assert.Equal(t, "Bob", d.User.Name)
	require.Len(t, d.Dates, 1)

	movies := d.Dates[0].Movies
	require.Len(t, movies, 3)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Empty(t, movies[0].Error)
	assert.Equal(t, model.MovieDetail{ID: "m404", Error: ReasonMovieNotFound}, movies[1])
	assert.Equal(t, model.MovieDetail{ID: "m503", Error: ReasonMovieUnreachable}, movies[2])
}

func TestBookingDetailsUserFailure(t *testing.T) {
	f := newBookingsFixture(t, `{"bookings":[{"userid":"u1","dates":[]}]}`)
	f.users.err = ErrUnavailable

	d, err := f.svc.Details(context.Background(), "admin", "u1")
	require.NoError(t, err)
	assert.Nil(t, d.User)
	assert.Equal(t, "user service unreachable", d.UserError)
	assert.Empty(t, d.Dates)
}
