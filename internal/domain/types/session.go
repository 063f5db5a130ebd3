package types

// Identity is the user record returned by a successful verification.
type Identity struct {
	ID       string   `json:"id"`
	Username Username `json:"username"`
	// Token is the server-issued bearer token, when the service hands one out.
	Token string `json:"-"`
}

// Initial is the avatar letter shown next to the username.
func (i Identity) Initial() string { return Initial(i.Username) }

// SessionState is a read-only snapshot of the session store.
//
// Identity is non-nil if and only if Status is StatusAuthenticated.
// ErrorMessage is non-empty only after a failed attempt and until the next
// attempt, a logout, or an explicit clear.
type SessionState struct {
	Status       Status    `json:"status"`
	Identity     *Identity `json:"identity,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// Loading reports whether an authentication call is in flight.
func (s SessionState) Loading() bool { return s.Status == StatusAuthenticating }

// Authenticated reports whether the session holds an identity.
func (s SessionState) Authenticated() bool { return s.Status == StatusAuthenticated }

// PreferenceState is a read-only snapshot of the preference store.
type PreferenceState struct {
	Mode Mode `json:"mode"`
}
