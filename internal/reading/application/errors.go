package application

import (
	"errors"
	"strings"

	"github.com/felixgeelhaar/arcana/internal/gateway"
)

var (
	// ErrAuthRequired is returned when a submission needs a login first. The
	// submission is kept and can be replayed with ResumeAfterLogin.
	ErrAuthRequired = errors.New("login required")
	// ErrQuotaExceeded wraps backend rejections caused by the plan's daily limit.
	ErrQuotaExceeded = errors.New("daily reading limit reached")
	// ErrBusy is returned while the same action is already in flight.
	ErrBusy = errors.New("action already in progress")
	// ErrRevealInProgress is returned by Interpret before every card is shown.
	ErrRevealInProgress = errors.New("cards are still being revealed")
	// ErrInvalidState is returned when an action does not apply to the current step.
	ErrInvalidState = errors.New("action not available at this step")
	// ErrNothingPending is returned by ResumeAfterLogin with no saved submission.
	ErrNothingPending = errors.New("no submission waiting for login")
	// ErrEmptyInterpretation is returned when the backend sends no text.
	ErrEmptyInterpretation = errors.New("interpretation is empty")
)

var quotaPhrases = []string{
	"daily limit exceeded",
	"upgrade your subscription",
}

// IsQuotaError reports whether err means the caller must upgrade: a 403, or
// a message naming the daily limit or an upgrade.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	if gateway.StatusCode(err) == 403 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range quotaPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
