package types

import (
	"errors"
	"fmt"
)

var (
	// ErrAttemptInFlight is returned when login/register is called while authenticating.
	ErrAttemptInFlight = errors.New("an authentication attempt is already in flight")
	// ErrAlreadyAuthenticated is returned when login/register is called on an authenticated session.
	ErrAlreadyAuthenticated = errors.New("session is already authenticated")
	// ErrInvalidCredentials is returned when a credentials record is missing fields.
	ErrInvalidCredentials = errors.New("credentials require a username and password")
	// ErrPasswordMismatch is returned when a registration confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrNotAuthenticated is returned by operations that need an identity.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthErrorKind classifies verifier failures.
type AuthErrorKind string

const (
	// AuthRejected: the service answered and refused (bad credentials, taken username, server fault).
	AuthRejected AuthErrorKind = "rejected"
	// AuthUnavailable: the call could not complete.
	AuthUnavailable AuthErrorKind = "unavailable"
)

// AuthError is the structured failure produced by a Verifier. Message is safe to
// show to users; Cause never is.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Status  int
	Cause   error
}

func (e *AuthError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	if e.Cause != nil {
		return fmt.Sprintf("auth %s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("auth %s: %s", e.Kind, msg)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// UserMessage extracts the user-facing message from err, or "" when it carries none.
func UserMessage(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}
