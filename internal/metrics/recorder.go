package metrics

// Result labels for authentication outcomes.
const (
	ResultSuccess    = "success"
	ResultFailure    = "failure"
	ResultSuperseded = "superseded"
)

// Recorder receives client and server events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// IncAuthAttempt counts a login or register attempt that reached the verifier.
	IncAuthAttempt(op string)
	// IncAuthResult counts how an attempt resolved.
	IncAuthResult(op, result string)
	IncLogout()
	IncModeChange(mode string)
	// IncPersistFailure counts durable-storage operations that failed and were absorbed.
	IncPersistFailure(op string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncAuthAttempt(string)        {}
func (NoopRecorder) IncAuthResult(string, string) {}
func (NoopRecorder) IncLogout()                   {}
func (NoopRecorder) IncModeChange(string)         {}
func (NoopRecorder) IncPersistFailure(string)     {}

var _ Recorder = NoopRecorder{}

// OrNoop returns r, or a NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
