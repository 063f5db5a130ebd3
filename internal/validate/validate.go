package validate

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"taskflow/internal/domain"
)

const (
	// minUsernameLength and maxUsernameLength bound the registration username.
	minUsernameLength = 3
	maxUsernameLength = 30
	// minPasswordLength is the shortest password accepted at registration.
	minPasswordLength = 6
)

// Form field names.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// FieldErrors maps a form field to the message shown beside it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Login checks the login form. Only presence is enforced; the service decides
// whether the pair is correct.
func Login(c domain.Credentials) error {
	fe := FieldErrors{}
	if strings.TrimSpace(c.Username.String()) == "" {
		fe[FieldUsername] = "Username is required"
	}
	if len(c.Password) == 0 {
		fe[FieldPassword] = "Password is required"
	}
	return fe.orNil()
}

// Register checks the registration form.
func Register(c domain.RegisterCredentials) error {
	fe := FieldErrors{}
	if msg := usernameProblem(c.Username.String()); msg != "" {
		fe[FieldUsername] = msg
	}
	switch {
	case len(c.Password) == 0:
		fe[FieldPassword] = "Password is required"
	case len(c.Password) < minPasswordLength:
		fe[FieldPassword] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}
	if len(c.Confirmation) == 0 {
		fe[FieldConfirmPassword] = "Please confirm your password"
	} else if !c.Matches() {
		fe[FieldConfirmPassword] = "Passwords don't match"
	}
	return fe.orNil()
}

func usernameProblem(u string) string {
	n := len([]rune(u))
	switch {
	case n == 0:
		return "Username is required"
	case n < minUsernameLength:
		return fmt.Sprintf("Username must be at least %d characters", minUsernameLength)
	case n > maxUsernameLength:
		return fmt.Sprintf("Username must be at most %d characters", maxUsernameLength)
	}
	for _, r := range u {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return "Username can only contain letters, numbers, and underscores"
		}
	}
	return ""
}
