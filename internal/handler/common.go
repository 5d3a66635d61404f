package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/session"
)

// Cookie names beyond the session cookie. remember_me is consumed once by
// the login form; email is a display convenience set after login.
const (
	rememberCookieName = "remember_me"
	emailCookieName    = "email"
)

// View names the client renders with the response payload.
const (
	viewLogin          = "LoginView"
	viewRegister       = "RegisterView"
	viewHome           = "HomeView"
	viewSearch         = "SearchView"
	viewGame           = "GameView"
	viewWishlist       = "WishlistView"
	viewPlayed         = "PlayedView"
	viewReviewForm     = "ReviewFormView"
	viewProfile        = "ProfileView"
	viewUpdateUsername = "UpdateUsernameView"
	viewUpdatePfp      = "UpdatePfpView"
	viewError          = "ErrorView"
)

// newCookie builds a session-lifetime cookie scoped to the whole site.
func newCookie(name, value string) *http.Cookie {
	return &http.Cookie{Name: name, Value: value, Path: "/", HttpOnly: true}
}

// expiredCookie marks a cookie for immediate deletion by the client.
func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{Name: name, Value: "", Path: "/", HttpOnly: true, MaxAge: -1}
}

// queryCtx bounds a handler's database work the way every handler does it.
func queryCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// paramID parses a positional path parameter as an unsigned integer id.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// currentSession resolves the session cookie against the registry. The bool
// reports whether a live session exists at all; an anonymous session (no
// user attached) still counts.
func currentSession(c echo.Context, store *session.Store) (*session.Session, bool) {
	ck, err := c.Cookie(session.CookieName)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	return store.Get(ck.Value)
}

// currentUserID resolves the authenticated user behind the request, walking
// cookie -> registry -> userId. Missing session and anonymous session both
// report false.
func currentUserID(c echo.Context, store *session.Store) (uint64, bool) {
	sess, ok := currentSession(c, store)
	if !ok {
		return 0, false
	}
	return store.UserID(sess)
}

// contextUserID reads the user id stashed by the RequireUser middleware.
func contextUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

// goToLogin redirects an unauthenticated request to the login form; the
// Action_Forbidden code renders as "Please login first." there.
func goToLogin(c echo.Context) error {
	return Respond(c, Response{
		Status:   http.StatusUnauthorized,
		Message:  "User needs to login before doing this action.",
		Redirect: redirectWithError("/login", CodeActionForbidden),
	})
}

// forbidden renders the generic forbidden view for an authenticated user
// acting on a resource they do not own. Never a stack trace.
func forbidden(c echo.Context, msg string) error {
	return Respond(c, Response{
		Status:   http.StatusForbidden,
		Message:  "Unauthorized action.",
		Payload:  echo.Map{"error": msg},
		Template: viewError,
	})
}

// storageError is the uniform policy for unexpected storage failures:
// surface a 500 with a generic message instead of silently degrading.
func storageError(c echo.Context) error {
	return Respond(c, Response{
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again later.",
	})
}
