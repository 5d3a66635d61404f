package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videogamed/videogamed/internal/config"
	"github.com/videogamed/videogamed/internal/handler"
	"github.com/videogamed/videogamed/internal/session"
)

func newTestRouter() *echo.Echo {
	e := echo.New()
	sessions := session.NewStore()
	h := Handlers{
		Auth:   handler.NewAuthHandler(config.Config{}, nil, sessions),
		User:   handler.NewUserHandler(config.Config{}, nil, nil),
		Game:   handler.NewGameHandler(nil, nil, nil, sessions),
		Review: handler.NewReviewHandler(nil, nil, nil),
		Tag:    handler.NewTagHandler(nil, nil),
	}
	RegisterRoutes(e, h, sessions, nil)
	return e
}

// matchedPath resolves a request against the routing table and returns the
// registered pattern it dispatches to, without invoking the handler.
func matchedPath(e *echo.Echo, method, target string) string {
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	e.Router().Find(method, target, c)
	return c.Path()
}

func TestLikeRouteNotShadowedByGameParam(t *testing.T) {
	e := newTestRouter()

	// The static "like" segment must win over the :gameId parameter.
	assert.Equal(t, "/games/like/:reviewId", matchedPath(e, http.MethodPost, "/games/like/1"))
	assert.Equal(t, "/games/:gameId", matchedPath(e, http.MethodPost, "/games/5"))
	assert.Equal(t, "/games/:gameId", matchedPath(e, http.MethodGet, "/games/5"))
}

func TestProfileRoutesCoexist(t *testing.T) {
	e := newTestRouter()

	assert.Equal(t, "/profile", matchedPath(e, http.MethodGet, "/profile"))
	assert.Equal(t, "/profile/:userId", matchedPath(e, http.MethodGet, "/profile/3"))
}

func TestListRoutesByMethod(t *testing.T) {
	e := newTestRouter()

	assert.Equal(t, "/wishlist/:gameId", matchedPath(e, http.MethodDelete, "/wishlist/2"))
	assert.Equal(t, "/wishlist", matchedPath(e, http.MethodPost, "/wishlist"))
	assert.Equal(t, "/played/:gameId", matchedPath(e, http.MethodDelete, "/played/2"))
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAuthenticatedRoutesRedirectWithoutSession(t *testing.T) {
	e := newTestRouter()

	for _, target := range []string{"/wishlist", "/played", "/profile"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, target)
		assert.Equal(t, "/login?error=Action_Forbidden", rec.Header().Get(echo.HeaderLocation), target)
	}
}
