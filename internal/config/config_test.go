package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequiresPeerURLs(t *testing.T) {
	cfg := Config{Service: ServiceBookings, StoreBackend: BackendFile, RemoteTimeout: time.Second,
		UsersURL: "http://users", MoviesURL: "http://movies"}
	assert.Error(t, cfg.Validate())

	cfg.ScheduleURL = "http://schedule"
	assert.NoError(t, cfg.Validate())

	cfg.Service = "tickets"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{Service: ServiceMovies, StoreBackend: "mongo", RemoteTimeout: time.Second, UsersURL: "http://users"}
	assert.Error(t, cfg.Validate())
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "Yes")
	t.Setenv("X_INT", "nope")
	t.Setenv("X_DUR", "90s")

	assert.True(t, envBool("X_BOOL", false))
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, 90*time.Second, envDur("X_DUR", time.Second))
	assert.Equal(t, "d", envStr("X_UNSET_FOR_TEST", "d"))
}

func TestLoadRateLimitConfigNormalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}
