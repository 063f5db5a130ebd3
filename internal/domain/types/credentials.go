package types

import "crypto/subtle"

// Credentials is the login input. Password is a byte slice so it can be wiped
// once the verification call completes.
type Credentials struct {
	Username Username
	Password []byte
}

// Valid reports whether both fields are present.
func (c Credentials) Valid() bool {
	return c.Username != "" && len(c.Password) > 0
}

// RegisterCredentials is the registration input.
type RegisterCredentials struct {
	Username     Username
	Password     []byte
	Confirmation []byte
}

// Matches reports whether the confirmation equals the password.
func (c RegisterCredentials) Matches() bool {
	return subtle.ConstantTimeCompare(c.Password, c.Confirmation) == 1
}

// Credentials returns the login-shaped record sent to the verifier.
func (c RegisterCredentials) Credentials() Credentials {
	return Credentials{Username: c.Username, Password: c.Password}
}
