package types

// OutcomeKind discriminates the result of a login or register call.
type OutcomeKind string

const (
	OutcomeAuthenticated OutcomeKind = "authenticated"
	OutcomeRegistered    OutcomeKind = "registered"
	OutcomeFailed        OutcomeKind = "failed"
	// OutcomeSuperseded means a logout or newer attempt replaced this one
	// before it resolved; its result was discarded.
	OutcomeSuperseded OutcomeKind = "superseded"
)

// Outcome is what the caller of Login/Register branches on.
type Outcome struct {
	Kind     OutcomeKind
	Identity *Identity
	Message  string
}

// Succeeded reports whether the attempt was applied successfully.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeAuthenticated || o.Kind == OutcomeRegistered
}
