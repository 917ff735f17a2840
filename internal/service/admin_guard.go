package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/iliyamo/cinema-records/internal/logging"
	"github.com/iliyamo/cinema-records/internal/metrics"
	"github.com/iliyamo/cinema-records/internal/repository"
)

// DefaultAdminTTL is how long an is_admin answer is reused.
const DefaultAdminTTL = 60 * time.Second

// DefaultLookupTimeout bounds one shared remote is_admin lookup.
const DefaultLookupTimeout = 5 * time.Second

type adminEntry struct {
	isAdmin   bool
	checkedAt time.Time
}

// AdminGuard caches is_admin answers per caller for a fixed TTL and
// falls back to the users service on a miss.  Concurrent misses for the
// same caller share one remote lookup.
type AdminGuard struct {
	lookup        AdminLookup
	ttl           time.Duration
	maxEntries    int
	lookupTimeout time.Duration
	now           func() time.Time

	mu    sync.Mutex
	cache map[string]adminEntry
	group singleflight.Group
}

// NewAdminGuard builds a guard over lookup.  A non-positive ttl selects
// DefaultAdminTTL; a non-positive maxEntries disables the size cap.
func NewAdminGuard(lookup AdminLookup, ttl time.Duration, maxEntries int) *AdminGuard {
	if ttl <= 0 {
		ttl = DefaultAdminTTL
	}
	return &AdminGuard{
		lookup:        lookup,
		ttl:           ttl,
		maxEntries:    maxEntries,
		lookupTimeout: DefaultLookupTimeout,
		now:           time.Now,
		cache:         make(map[string]adminEntry),
	}
}

// SetLookupTimeout bounds each remote lookup; non-positive values are
// ignored.
func (g *AdminGuard) SetLookupTimeout(d time.Duration) {
	if d > 0 {
		g.lookupTimeout = d
	}
}

// IsAdmin reports whether caller holds admin privileges.  An unknown
// caller yields ErrUnknownCaller and an unreachable users service
// ErrUnverifiable; neither outcome is cached.
func (g *AdminGuard) IsAdmin(ctx context.Context, caller string) (bool, error) {
	g.mu.Lock()
	e, ok := g.cache[caller]
	if ok && g.now().Sub(e.checkedAt) < g.ttl {
		g.mu.Unlock()
		metrics.AdminCacheLookups.WithLabelValues("hit").Inc()
		return e.isAdmin, nil
	}
	g.mu.Unlock()
	metrics.AdminCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := g.group.Do(caller, func() (interface{}, error) {
		// The lookup is shared by every waiter, so it must not die with
		// the request that happened to start it.
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.lookupTimeout)
		defer cancel()
		isAdmin, err := g.lookup.IsAdmin(lctx, caller)
		if err != nil {
			return false, err
		}
		g.store(caller, isAdmin)
		return isAdmin, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, fmt.Errorf("%w: %s", ErrUnknownCaller, caller)
		}
		logging.FromContext(ctx).WithError(err).WithField("caller", caller).
			Warn("admin lookup failed")
		return false, fmt.Errorf("%w: %v", ErrUnverifiable, err)
	}
	return v.(bool), nil
}

// RequireAdmin fails with ErrForbidden unless caller is an admin.
func (g *AdminGuard) RequireAdmin(ctx context.Context, caller string) error {
	admin, err := g.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("%w: admin access required", ErrForbidden)
	}
	return nil
}

// Authorize lets an admin act on anyone and a regular user act on
// itself only.
func (g *AdminGuard) Authorize(ctx context.Context, caller, target string) error {
	admin, err := g.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin && caller != target {
		return fmt.Errorf("%w: %s may not act on %s", ErrForbidden, caller, target)
	}
	return nil
}

// Verify only checks that caller is a known user.
func (g *AdminGuard) Verify(ctx context.Context, caller string) error {
	_, err := g.IsAdmin(ctx, caller)
	return err
}

// Len returns the number of cached callers.
func (g *AdminGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cache)
}

// Sweep drops expired entries and returns how many were removed.
func (g *AdminGuard) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.sweepLocked()
	metrics.AdminCacheEntries.Set(float64(len(g.cache)))
	return n
}

// Run sweeps the cache every TTL until ctx is done.
func (g *AdminGuard) Run(ctx context.Context) error {
	t := time.NewTicker(g.ttl)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := g.Sweep(); n > 0 {
				logging.FromContext(ctx).Debugf("admin-guard: swept %d expired entries", n)
			}
		}
	}
}

func (g *AdminGuard) store(caller string, isAdmin bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.cache[caller]; !ok && g.maxEntries > 0 && len(g.cache) >= g.maxEntries {
		if g.sweepLocked() == 0 {
			g.evictOldestLocked()
		}
	}
	g.cache[caller] = adminEntry{isAdmin: isAdmin, checkedAt: g.now()}
	metrics.AdminCacheEntries.Set(float64(len(g.cache)))
}

func (g *AdminGuard) sweepLocked() int {
	now := g.now()
	n := 0
	for id, e := range g.cache {
		if now.Sub(e.checkedAt) >= g.ttl {
			delete(g.cache, id)
			n++
		}
	}
	return n
}

func (g *AdminGuard) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
		found    bool
	)
	for id, e := range g.cache {
		if !found || e.checkedAt.Before(oldestAt) {
			oldestID, oldestAt, found = id, e.checkedAt, true
		}
	}
	if found {
		delete(g.cache, oldestID)
	}
}
