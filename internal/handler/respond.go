package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response describes everything a handler wants sent back: an HTTP status, a
// human-readable message, an optional payload, and either a redirect target
// or the name of the view the client should render with the payload.
// Redirect always wins: when set, the template and payload are not emitted
// and the client is sent a 303 to the given path (possibly carrying an
// ?error=<Code> that the destination form handler maps to a message).
type Response struct {
	Status   int
	Message  string
	Payload  echo.Map
	Redirect string
	Template string
}

// Respond writes the response. Non-redirect responses are JSON of the shape
// {"message": ..., "payload": ..., "view": ...}; payload and view are
// omitted when empty.
func Respond(c echo.Context, r Response) error {
	if r.Redirect != "" {
		return c.Redirect(http.StatusSeeOther, r.Redirect)
	}
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	body := echo.Map{"message": r.Message}
	if r.Payload != nil {
		body["payload"] = r.Payload
	}
	if r.Template != "" {
		body["view"] = r.Template
	}
	return c.JSON(r.Status, body)
}

// ErrorCode is the fixed vocabulary carried on redirect-with-error URLs.
type ErrorCode string

const (
	CodeMissingPassword    ErrorCode = "Missing_Password"
	CodeMissingEmail       ErrorCode = "Missing_Email"
	CodeMissingEmailLower  ErrorCode = "Missing_email" // historical spelling used by the register form
	CodePasswordsMismatch  ErrorCode = "Passwords_Mismatch"
	CodeEmailInUse         ErrorCode = "Email_InUse"
	CodeInvalidCredentials ErrorCode = "Invalid_Credentials"
	CodeActionForbidden    ErrorCode = "Action_Forbidden"
	CodeUserCreated        ErrorCode = "User_Created"
)

// redirectWithError builds the redirect target for a failed form submission.
func redirectWithError(path string, code ErrorCode) string {
	return path + "?error=" + string(code)
}

// registerFormMessages maps error codes to the text the registration form
// shows. Codes outside the map render the plain form.
var registerFormMessages = map[ErrorCode]string{
	CodeMissingPassword:   "Password is required.",
	CodeMissingEmailLower: "Email is required.",
	CodePasswordsMismatch: "Passwords do not match",
	CodeEmailInUse:        "User with this email already exists.",
}

// loginFormMessages maps error codes to the text the login form shows.
var loginFormMessages = map[ErrorCode]string{
	CodeMissingPassword:    "Password is required.",
	CodeMissingEmail:       "Email is required.",
	CodeInvalidCredentials: "Invalid credentials.",
	CodeActionForbidden:    "Please login first.",
	CodeUserCreated:        "Successfully created your account! Please login.",
}
