package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondRedirectWins(t *testing.T) {
	c, rec := newFormContext(http.MethodGet, "/", nil)

	err := Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "ignored",
		Payload:  echo.Map{"also": "ignored"},
		Redirect: "/login?error=Action_Forbidden",
		Template: viewLogin,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=Action_Forbidden", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, rec.Body.String())
}

func TestRespondJSONShape(t *testing.T) {
	c, rec := newFormContext(http.MethodGet, "/", nil)

	err := Respond(c, Response{
		Status:   http.StatusOK,
		Message:  "Game retrieved",
		Payload:  echo.Map{"id": 1},
		Template: viewGame,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Game retrieved", body["message"])
	assert.Equal(t, "GameView", body["view"])
	assert.Contains(t, body, "payload")
}

func TestRespondOmitsEmptyFields(t *testing.T) {
	c, rec := newFormContext(http.MethodGet, "/", nil)

	err := Respond(c, Response{Message: "ok"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["message"])
	assert.NotContains(t, body, "payload")
	assert.NotContains(t, body, "view")
}

func TestRedirectWithError(t *testing.T) {
	assert.Equal(t, "/login?error=Invalid_Credentials", redirectWithError("/login", CodeInvalidCredentials))
	assert.Equal(t, "/register?error=Missing_email", redirectWithError("/register", CodeMissingEmailLower))
}
