// Package middleware holds the Echo middleware: session authentication, the
// Redis response cache and the login rate limiter.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/session"
)

// RequireUser resolves the session cookie against the registry and stashes
// the authenticated user's id under "user_id" for handlers downstream. A
// missing or anonymous session redirects to the login form with the
// Action_Forbidden code, which renders there as "Please login first."
func RequireUser(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(session.CookieName)
			if err != nil || ck.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login?error=Action_Forbidden")
			}
			sess, ok := store.Get(ck.Value)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login?error=Action_Forbidden")
			}
			userID, ok := store.UserID(sess)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login?error=Action_Forbidden")
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}
