package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNoCredential is returned when a login succeeds without an access token.
	ErrNoCredential = errors.New("no credential returned")
	// ErrNotAuthenticated is returned when an operation needs a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// User is the identity returned by the backend for the logged-in account.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// LoginResult is produced by both the password and the Google entry points.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// RegisterResult is the backend answer to an account creation.
type RegisterResult struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// ValidCredential reports whether token is usable as a bearer credential.
// Empty, whitespace-only and the literal placeholders "null" and "undefined"
// are not.
func ValidCredential(token string) bool {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return false
	}
	return trimmed != "null" && trimmed != "undefined"
}
