package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-records/internal/model"
	"github.com/iliyamo/cinema-records/internal/queue"
	"github.com/iliyamo/cinema-records/internal/repository"
)

type memDoc struct {
	mu   sync.Mutex
	body []byte
}

func (d *memDoc) Read(context.Context) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.body, nil
}

func (d *memDoc) Write(_ context.Context, body []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.body = append([]byte(nil), body...)
	return nil
}

// fakeAdminLookup answers from a fixed table and counts remote calls.
type fakeAdminLookup struct {
	mu     sync.Mutex
	admins map[string]bool
	err    error
	calls  int
}

func (f *fakeAdminLookup) IsAdmin(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	admin, ok := f.admins[id]
	if !ok {
		return false, repository.NotFound(repository.LevelUser, id)
	}
	return admin, nil
}

func (f *fakeAdminLookup) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeSchedule struct {
	dates map[string][]string
	err   error
}

func (f *fakeSchedule) MoviesOnDate(_ context.Context, _, date string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	movies, ok := f.dates[date]
	if !ok {
		return nil, repository.NotFound(repository.LevelDate, date)
	}
	return movies, nil
}

type fakeMovies struct {
	movies map[string]model.Movie
	down   map[string]bool
	denied map[string]bool
}

func (f *fakeMovies) MovieByID(_ context.Context, _, id string) (model.Movie, error) {
	if f.down[id] {
		return model.Movie{}, ErrUnavailable
	}
	if f.denied[id] {
		return model.Movie{}, ErrForbidden
	}
	m, ok := f.movies[id]
	if !ok {
		return model.Movie{}, repository.NotFound(repository.LevelMovie, id)
	}
	return m, nil
}

type fakeUsers struct {
	users map[string]model.User
	err   error
}

func (f *fakeUsers) UserByID(_ context.Context, id string) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.NotFound(repository.LevelUser, id)
	}
	return u, nil
}

type fakeBookings struct {
	bookings []model.Booking
	err      error
}

func (f *fakeBookings) UserBookings(context.Context, string) ([]model.Booking, error) {
	return f.bookings, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// testGuard builds a guard where "admin" is an admin and "u1", "u2" are
// regular users.
func testGuard() (*AdminGuard, *fakeAdminLookup) {
	lookup := &fakeAdminLookup{admins: map[string]bool{"admin": true, "u1": false, "u2": false}}
	return NewAdminGuard(lookup, time.Minute, 0), lookup
}

func loadStore(t *testing.T, store interface{ Load(context.Context) error }) {
	t.Helper()
	require.NoError(t, store.Load(context.Background()))
}
