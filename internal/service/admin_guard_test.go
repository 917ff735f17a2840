package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGuardReusesAnswerWithinTTL(t *testing.T) {
	lookup := &fakeAdminLookup{admins: map[string]bool{"admin": true}}
	clock := newFakeClock()
	g := NewAdminGuard(lookup, 60*time.Second, 0)
	g.now = clock.Now
	ctx := context.Background()

	admin, err := g.IsAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin)
	assert.Equal(t, 1, lookup.Calls())

	clock.Advance(30 * time.Second)
	admin, err = g.IsAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin)
	assert.Equal(t, 1, lookup.Calls(), "cached answer reused at t=30s")

	clock.Advance(31 * time.Second)
	_, err = g.IsAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, lookup.Calls(), "exactly one lookup after expiry at t=61s")

	_, err = g.IsAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, lookup.Calls())
}

func TestAdminGuardPicksUpChangesAfterTTL(t *testing.T) {
	lookup := &fakeAdminLookup{admins: map[string]bool{"u1": false}}
	clock := newFakeClock()
	g := NewAdminGuard(lookup, time.Minute, 0)
	g.now = clock.Now
	ctx := context.Background()

	admin, _ := g.IsAdmin(ctx, "u1")
	assert.False(t, admin)

	lookup.mu.Lock()
	lookup.admins["u1"] = true
	lookup.mu.Unlock()

	admin, _ = g.IsAdmin(ctx, "u1")
	assert.False(t, admin, "stale answer served within TTL")

	clock.Advance(time.Minute)
	admin, _ = g.IsAdmin(ctx, "u1")
	assert.True(t, admin)
}

func TestAdminGuardUnknownCallerIsNotCached(t *testing.T) {
	lookup := &fakeAdminLookup{admins: map[string]bool{}}
	g := NewAdminGuard(lookup, time.Minute, 0)
	ctx := context.Background()

	_, err := g.IsAdmin(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownCaller)
	_, err = g.IsAdmin(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownCaller)
	assert.Equal(t, 2, lookup.Calls())
	assert.Equal(t, 0, g.Len())
}

func TestAdminGuardUnreachableIsUnverifiable(t *testing.T) {
	lookup := &fakeAdminLookup{err: errors.New("connection refused")}
	g := NewAdminGuard(lookup, time.Minute, 0)

	_, err := g.IsAdmin(context.Background(), "admin")
	assert.ErrorIs(t, err, ErrUnverifiable)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, g.Len())
}

func TestAdminGuardAuthorize(t *testing.T) {
	g, _ := testGuard()
	ctx := context.Background()

	assert.NoError(t, g.Authorize(ctx, "admin", "u1"))
	assert.NoError(t, g.Authorize(ctx, "u1", "u1"))
	assert.ErrorIs(t, g.Authorize(ctx, "u1", "u2"), ErrForbidden)
	assert.ErrorIs(t, g.Authorize(ctx, "ghost", "ghost"), ErrUnknownCaller)

	assert.NoError(t, g.RequireAdmin(ctx, "admin"))
	assert.ErrorIs(t, g.RequireAdmin(ctx, "u1"), ErrForbidden)

	assert.NoError(t, g.Verify(ctx, "u2"))
}

func TestAdminGuardSweepAndCap(t *testing.T) {
	lookup := &fakeAdminLookup{admins: map[string]bool{"a": false, "b": false, "c": false}}
	clock := newFakeClock()
	g := NewAdminGuard(lookup, time.Minute, 2)
	g.now = clock.Now
	ctx := context.Background()

	_, _ = g.IsAdmin(ctx, "a")
	clock.Advance(time.Second)
	_, _ = g.IsAdmin(ctx, "b")
	clock.Advance(time.Second)
	_, _ = g.IsAdmin(ctx, "c")
	assert.Equal(t, 2, g.Len(), "oldest entry evicted at the cap")

	calls := lookup.Calls()
	_, _ = g.IsAdmin(ctx, "b")
	assert.Equal(t, calls, lookup.Calls(), "b still cached")

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 2, g.Sweep())
	assert.Equal(t, 0, g.Len())
}

func TestAdminGuardConcurrentMissesShareLookup(t *testing.T) {
	lookup := &fakeAdminLookup{admins: map[string]bool{"admin": true}}
	g := NewAdminGuard(lookup, time.Minute, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admin, err := g.IsAdmin(ctx, "admin")
			assert.NoError(t, err)
			assert.True(t, admin)
		}()
	}
	wg.Wait()

	_, _ = g.IsAdmin(ctx, "admin")
	assert.LessOrEqual(t, lookup.Calls(), 16)
	assert.Equal(t, 1, g.Len())
}

// gatedLookup blocks every lookup until release is closed and fails
// with the context error when its context ends first.
type gatedLookup struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (l *gatedLookup) IsAdmin(ctx context.Context, _ string) (bool, error) {
	l.once.Do(func() { close(l.started) })
	select {
	case <-l.release:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func TestAdminGuardSharedLookupSurvivesFirstCallerCancel(t *testing.T) {
	lookup := &gatedLookup{started: make(chan struct{}), release: make(chan struct{})}
	g := NewAdminGuard(lookup, time.Minute, 0)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := g.IsAdmin(firstCtx, "a1")
		first <- err
	}()
	<-lookup.started

	type answer struct {
		admin bool
		err   error
	}
	second := make(chan answer, 1)
	go func() {
		admin, err := g.IsAdmin(context.Background(), "a1")
		second <- answer{admin, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	time.Sleep(20 * time.Millisecond)
	close(lookup.release)

	got := <-second
	require.NoError(t, got.err)
	assert.True(t, got.admin)
	<-first
}

func TestAdminGuardLookupIsBounded(t *testing.T) {
	lookup := &gatedLookup{started: make(chan struct{}), release: make(chan struct{})}
	g := NewAdminGuard(lookup, time.Minute, 0)
	g.SetLookupTimeout(50 * time.Millisecond)

	_, err := g.IsAdmin(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrUnverifiable)
}
