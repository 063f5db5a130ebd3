package domain

import (
	interfaces "taskflow/internal/domain/interfaces"
	types "taskflow/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username            = types.Username
	Status              = types.Status
	Mode                = types.Mode
	Identity            = types.Identity
	SessionState        = types.SessionState
	PreferenceState     = types.PreferenceState
	Credentials         = types.Credentials
	RegisterCredentials = types.RegisterCredentials
	Outcome             = types.Outcome
	OutcomeKind         = types.OutcomeKind
	Task                = types.Task
	AuthError           = types.AuthError
	AuthErrorKind       = types.AuthErrorKind
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Verifier     = interfaces.Verifier
	TaskSource   = interfaces.TaskSource
	KV           = interfaces.KV
	SchemeSignal = interfaces.SchemeSignal
	Marker       = interfaces.Marker
)

const (
	StatusAnonymous      = types.StatusAnonymous
	StatusAuthenticating = types.StatusAuthenticating
	StatusAuthenticated  = types.StatusAuthenticated
	StatusFailed         = types.StatusFailed

	ModeLight = types.ModeLight
	ModeDark  = types.ModeDark

	OutcomeAuthenticated = types.OutcomeAuthenticated
	OutcomeRegistered    = types.OutcomeRegistered
	OutcomeFailed        = types.OutcomeFailed
	OutcomeSuperseded    = types.OutcomeSuperseded

	AuthRejected    = types.AuthRejected
	AuthUnavailable = types.AuthUnavailable
)

var (
	ErrAttemptInFlight      = types.ErrAttemptInFlight
	ErrAlreadyAuthenticated = types.ErrAlreadyAuthenticated
	ErrInvalidCredentials   = types.ErrInvalidCredentials
	ErrPasswordMismatch     = types.ErrPasswordMismatch
	ErrNotAuthenticated     = types.ErrNotAuthenticated
)

// ParseMode accepts only the exact literals "light" and "dark".
func ParseMode(raw string) (Mode, bool) { return types.ParseMode(raw) }

// UserMessage extracts the user-facing message carried by a verifier error.
func UserMessage(err error) string { return types.UserMessage(err) }
