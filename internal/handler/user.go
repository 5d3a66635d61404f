package handler

import (
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/videogamed/videogamed/internal/config"
	"github.com/videogamed/videogamed/internal/repository"
)

// UserHandler covers registration and the profile pages.
type UserHandler struct {
	Cfg     config.Config
	Users   UserStore
	Reviews ReviewStore
}

func NewUserHandler(cfg config.Config, users UserStore, reviews ReviewStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Reviews: reviews}
}

// Create registers a new account. Validation failures redirect back to the
// registration form with an error code; success redirects to the login form
// carrying User_Created so it can show the confirmation message.
func (h *UserHandler) Create(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	if email == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing email.",
			Redirect: redirectWithError("/register", CodeMissingEmailLower),
		})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing email.",
			Redirect: redirectWithError("/register", CodeMissingEmailLower),
		})
	}
	if password == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing password.",
			Redirect: redirectWithError("/register", CodeMissingPassword),
		})
	}
	if password != confirm {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Passwords do not match.",
			Redirect: redirectWithError("/register", CodePasswordsMismatch),
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, email, password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return Respond(c, Response{
				Status:   http.StatusConflict,
				Message:  "Email already in use.",
				Redirect: redirectWithError("/register", CodeEmailInUse),
			})
		}
		log.Printf("user: create failed: %v", err)
		return storageError(c)
	}

	return Respond(c, Response{
		Status:   http.StatusCreated,
		Message:  "User created",
		Payload:  echo.Map{"user": user.Public()},
		Redirect: redirectWithError("/login", CodeUserCreated),
	})
}

// Profile renders a user's profile with their reviews. Without a path
// parameter it shows the viewer's own profile.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := h.profileTarget(c)
	if err != nil {
		return goToLogin(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Respond(c, Response{
				Status:   http.StatusNotFound,
				Message:  "User not found",
				Payload:  echo.Map{"error": "User not found."},
				Template: viewError,
			})
		}
		log.Printf("user: profile lookup failed: %v", err)
		return storageError(c)
	}

	reviews, err := h.Reviews.ForUser(ctx, userID)
	if err != nil {
		log.Printf("user: profile reviews failed: %v", err)
		return storageError(c)
	}

	viewerID, _ := contextUserID(c)
	return Respond(c, Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved",
		Payload: echo.Map{
			"user":    user.Public(),
			"reviews": reviews,
			"own":     viewerID == user.ID,
		},
		Template: viewProfile,
	})
}

// profileTarget resolves which profile to show: the :userId parameter when
// present, otherwise the authenticated viewer.
func (h *UserHandler) profileTarget(c echo.Context) (uint64, error) {
	if raw := c.Param("userId"); raw != "" {
		return paramID(c, "userId")
	}
	id, ok := contextUserID(c)
	if !ok {
		return 0, errors.New("not authenticated")
	}
	return id, nil
}

// UsernameForm renders the username-change form for the viewer's account.
func (h *UserHandler) UsernameForm(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("user: username form lookup failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Going to username form",
		Payload:  echo.Map{"user": user.Public()},
		Template: viewUpdateUsername,
	})
}

// UpdateUsername changes the viewer's display name. Accounts may only edit
// themselves; a mismatched user_id form field is rejected.
func (h *UserHandler) UpdateUsername(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	if !ownsForm(c, userID) {
		return forbidden(c, "You can only edit your own profile.")
	}

	username := strings.TrimSpace(c.FormValue("username"))
	if username == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing username",
			Payload:  echo.Map{"error": "Username is required."},
			Template: viewUpdateUsername,
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Users.UpdateUsername(ctx, userID, username); err != nil {
		log.Printf("user: update username failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Username updated",
		Redirect: "/profile",
	})
}

// PfpForm renders the profile-picture form for the viewer's account.
func (h *UserHandler) PfpForm(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		log.Printf("user: pfp form lookup failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Going to profile picture form",
		Payload:  echo.Map{"user": user.Public()},
		Template: viewUpdatePfp,
	})
}

// UpdatePfp changes the viewer's avatar URL, subject to the same ownership
// rule as UpdateUsername.
func (h *UserHandler) UpdatePfp(c echo.Context) error {
	userID, ok := contextUserID(c)
	if !ok {
		return goToLogin(c)
	}
	if !ownsForm(c, userID) {
		return forbidden(c, "You can only edit your own profile.")
	}

	pfp := strings.TrimSpace(c.FormValue("pfp"))
	if pfp == "" {
		return Respond(c, Response{
			Status:   http.StatusBadRequest,
			Message:  "Missing picture URL",
			Payload:  echo.Map{"error": "Picture URL is required."},
			Template: viewUpdatePfp,
		})
	}

	ctx, cancel := queryCtx(c)
	defer cancel()

	if err := h.Users.UpdateAvatar(ctx, userID, pfp); err != nil {
		log.Printf("user: update pfp failed: %v", err)
		return storageError(c)
	}
	return Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Profile picture updated",
		Redirect: "/profile",
	})
}

// ownsForm reports whether the user_id field, when submitted, matches the
// authenticated user. An absent field counts as owned.
func ownsForm(c echo.Context, userID uint64) bool {
	raw := c.FormValue("user_id")
	if raw == "" {
		return true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return false
	}
	return id == userID
}
