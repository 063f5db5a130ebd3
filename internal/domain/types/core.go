package types

import "strings"

// Username identifies an account on the TaskFlow service.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Status is the authentication state of a session.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusFailed         Status = "failed"
)

// String returns the string form of the status.
func (s Status) String() string { return string(s) }

// Mode is the two-valued display preference.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// String returns the string form of the mode.
func (m Mode) String() string { return string(m) }

// Toggle returns the opposite mode. Anything that is not dark flips to dark.
func (m Mode) Toggle() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

// ParseMode accepts only the exact literals "light" and "dark".
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case ModeLight, ModeDark:
		return Mode(raw), true
	default:
		return "", false
	}
}

// Initial returns the upper-cased first letter of a username, or "?" when empty.
func Initial(u Username) string {
	for _, r := range string(u) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
