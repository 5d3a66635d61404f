package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The remember-me cookie stores the last-used email so the login form can
// prefill it. The value is an HMAC-signed token rather than the raw address,
// so a client cannot forge or tamper with the remembered value.

var errInvalidRememberToken = errors.New("invalid remember token")

// NewRememberToken signs the email into a compact token valid for ttlDays.
func NewRememberToken(secret, email string, ttlDays int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.AddDate(0, 0, ttlDays).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// ParseRememberToken verifies the signature and expiry and returns the
// remembered email. Any malformed, forged or expired token yields an error;
// callers treat that the same as no cookie at all.
func ParseRememberToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidRememberToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errInvalidRememberToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidRememberToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", errInvalidRememberToken
	}
	return email, nil
}
