package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/iliyamo/cinema-records/internal/config"
	"github.com/iliyamo/cinema-records/internal/logging"
)

var limiterScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 and refill_tokens > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + (intervals * refill_tokens))
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		local until_next = interval_ms - (now_ms - last_refill)
		if until_next < 0 then until_next = 0 end
		retry_after_ms = until_next
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// decision is the outcome of one bucket take.
type decision struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

// bucketStore takes one token for key.  ok is false when the store could
// not decide, in which case the request is let through.
type bucketStore interface {
	take(c echo.Context, key string) (d decision, ok bool)
}

// NewTokenBucket limits requests per key.  Buckets live in Redis when
// rdb is non-nil and in process memory otherwise.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	var store bucketStore
	if rdb != nil {
		store = &redisBuckets{cfg: cfg, rdb: rdb}
	} else {
		store = newLocalBuckets(cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)
			d, ok := store.take(c, key)
			if !ok {
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))
			if cfg.Debug {
				c.Response().Header().Set("X-RateLimit-Key", key)
			}
			if !d.allowed {
				secs := int(math.Ceil(d.retry.Seconds()))
				if secs < 0 {
					secs = 0
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					logging.FromContext(c.Request().Context()).
						Infof("ratelimit: block key=%s retry=%s", key, d.retry)
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "rate limit exceeded",
					"code":        "too_many_requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

type redisBuckets struct {
	cfg config.RateLimitConfig
	rdb *redis.Client
}

func (b *redisBuckets) take(c echo.Context, key string) (decision, bool) {
	args := []interface{}{
		time.Now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL / time.Second),
	}
	vals, err := limiterScript.Run(c.Request().Context(), b.rdb, []string{key}, args...).Result()
	if err != nil {
		logging.FromContext(c.Request().Context()).WithError(err).WithField("key", key).
			Warn("ratelimit: redis error, request let through")
		return decision{}, false
	}
	arr, ok := vals.([]interface{})
	if !ok || len(arr) != 3 {
		return decision{}, false
	}
	return decision{
		allowed:   fmt.Sprint(arr[0]) == "1",
		remaining: asInt64(arr[1]),
		retry:     time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, true
}

// localBuckets keeps one rate.Limiter per key.  Keys idle for longer
// than cfg.TTL are dropped on the next sweep.
type localBuckets struct {
	cfg   config.RateLimitConfig
	limit rate.Limit

	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSweep time.Time
}

type localBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newLocalBuckets(cfg config.RateLimitConfig) *localBuckets {
	per := cfg.RefillInterval / time.Duration(cfg.RefillTokens)
	return &localBuckets{
		cfg:       cfg,
		limit:     rate.Every(per),
		buckets:   make(map[string]*localBucket),
		lastSweep: time.Now(),
	}
}

func (b *localBuckets) take(_ echo.Context, key string) (decision, bool) {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) > b.cfg.TTL {
		for k, v := range b.buckets {
			if now.Sub(v.lastSeen) > b.cfg.TTL {
				delete(b.buckets, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.buckets[key]
	if !ok {
		bk = &localBucket{lim: rate.NewLimiter(b.limit, b.cfg.Capacity)}
		b.buckets[key] = bk
	}
	bk.lastSeen = now

	r := bk.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return decision{allowed: false, remaining: 0, retry: delay}, true
	}
	return decision{allowed: true, remaining: int64(bk.lim.TokensAt(now))}, true
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	caller := callerID(c)
	route := c.Request().Method + " " + c.Path()

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "caller":
		parts = append(parts, "caller", caller)
	case "route":
		parts = append(parts, "route", route)
	case "ip_caller":
		parts = append(parts, "ip", ip, "caller", caller)
	case "caller_route":
		parts = append(parts, "caller", caller, "route", route)
	default:
		parts = append(parts, "ip", ip, "caller", caller, "route", route)
	}
	return strings.Join(parts, ":")
}
