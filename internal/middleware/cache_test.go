package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videogamed/videogamed/internal/config"
	"github.com/videogamed/videogamed/internal/session"
)

func cacheTestConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{http.MethodGet: true},
		TTL:     time.Minute,
		Prefix:  "cache",
	}
}

func TestCacheBypassesRequestsWithSession(t *testing.T) {
	// The client points at nothing; the bypass must short-circuit before any
	// Redis call, so the request still succeeds.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "some-session"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "fresh") }
	require.NoError(t, mw(next)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fresh", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheSkipsUnlistedMethods(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	mw := NewRedisCache(cacheTestConfig(), rdb)

	req := httptest.NewRequest(http.MethodPost, "/search", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "results") }
	require.NoError(t, mw(next)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "fresh") }
	require.NoError(t, mw(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
