package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/config"
	"github.com/videogamed/videogamed/internal/repository"
	"github.com/videogamed/videogamed/internal/session"
	"github.com/videogamed/videogamed/internal/utils"
)

// AuthHandler bundles dependencies for the login/logout endpoints and the
// two account forms.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions *session.Store
}

func NewAuthHandler(cfg config.Config, users UserStore, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// GetRegistrationForm renders the registration form, mapping a carried
// ?error=<Code> to the message the form displays.
func (h *AuthHandler) GetRegistrationForm(c echo.Context) error {
	if code := ErrorCode(c.QueryParam("error")); code != "" {
		if msg, ok := registerFormMessages[code]; ok {
			return Respond(c, Response{
				Status:   http.StatusOK,
				Message:  "Registration form with error",
				Payload:  echo.Map{"error": msg},
				Template: viewRegister,
			})
		}
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Going to registration form",
		Template: viewRegister,
	})
}

// GetLoginForm renders the login form. A session is created on demand here
// so the login POST always has one to attach the user to. The remember_me
// cookie, a signed token carrying the last-used email, is consumed exactly
// once: its value prefills the form and the cookie is expired.
func (h *AuthHandler) GetLoginForm(c echo.Context) error {
	sess, ok := currentSession(c, h.Sessions)
	if !ok {
		sess = h.Sessions.Create()
	}
	c.SetCookie(newCookie(session.CookieName, sess.ID))

	if code := ErrorCode(c.QueryParam("error")); code != "" {
		if msg, ok := loginFormMessages[code]; ok {
			return Respond(c, Response{
				Status:   http.StatusOK,
				Message:  "Login form with error",
				Payload:  echo.Map{"error": msg},
				Template: viewLogin,
			})
		}
	}

	if ck, err := c.Cookie(rememberCookieName); err == nil && ck.Value != "" {
		c.SetCookie(expiredCookie(rememberCookieName))
		if email, err := utils.ParseRememberToken(h.Cfg.RememberSecret, ck.Value); err == nil {
			return Respond(c, Response{
				Status:   http.StatusOK,
				Message:  "Going to login form with remembered email",
				Payload:  echo.Map{"remember": email},
				Template: viewLogin,
			})
		}
	}

	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Going to login form",
		Template: viewLogin,
	})
}

// Login authenticates the submitted credentials, attaches the user to a
// session and redirects home. A missing email falls back to the remembered
// one when the remember_me cookie is still present.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" {
		if ck, err := c.Cookie(rememberCookieName); err == nil && ck.Value != "" {
			if remembered, err := utils.ParseRememberToken(h.Cfg.RememberSecret, ck.Value); err == nil {
				email = remembered
			}
		}
		if email == "" {
			return Respond(c, Response{
				Status:   http.StatusBadRequest,
				Message:  "Missing email.",
				Redirect: redirectWithError("/login", CodeMissingEmail),
			})
		}
	}
	if password == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing password.",
			Redirect: redirectWithError("/login", CodeMissingPassword),
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return Respond(c, Response{
				Status:   http.StatusBadRequest,
				Message:  "Invalid credentials.",
				Redirect: redirectWithError("/login", CodeInvalidCredentials),
			})
		}
		log.Printf("auth: login query failed: %v", err)
		return storageError(c)
	}

	if c.FormValue("remember") == "on" {
		if tok, err := utils.NewRememberToken(h.Cfg.RememberSecret, user.Email, h.Cfg.RememberTTLDays); err == nil {
			c.SetCookie(newCookie(rememberCookieName, tok))
		}
	}

	sess, ok := currentSession(c, h.Sessions)
	if !ok {
		sess = h.Sessions.Create()
	}
	h.Sessions.SetUserID(sess, user.ID)
	c.SetCookie(newCookie(session.CookieName, sess.ID))
	c.SetCookie(newCookie(emailCookieName, user.Email))

	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Logged in successfully!",
		Payload:  echo.Map{"user": user.Public()},
		Redirect: "/home",
	})
}

// Logout destroys the session behind the cookie, so a later authorization
// check for that id reports not authenticated.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(session.CookieName); err == nil && ck.Value != "" {
		h.Sessions.Destroy(ck.Value)
	}
	c.SetCookie(expiredCookie(session.CookieName))
	c.SetCookie(expiredCookie(emailCookieName))
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Successfully logged out",
		Redirect: "/",
	})
}
