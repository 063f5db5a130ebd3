// Package session owns the client's authentication state machine.
//
// States: anonymous (initial), authenticating, authenticated, failed. Login and
// Register move the session to authenticating, call the remote verifier off the
// dispatch queue, and apply the result through the queue only if the attempt
// that issued the call is still the current one. A logout or a newer attempt
// in between makes the result stale and it is discarded.
package session
