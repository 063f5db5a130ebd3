package logfields

import "log/slog"

// Canonical log field names shared by the client core and the dev server.
const (
	KeyAttemptID = "attempt_id"
	KeyOperation = "operation"
	KeyUsername  = "username"
	KeyStatus    = "status"
	KeyOutcome   = "outcome"
	KeyMode      = "mode"
	KeySource    = "source"
	KeyCount     = "count"
	KeyDuration  = "duration_ms"
	KeyError     = "error"
)

func AttemptID(id string) slog.Attr { return slog.String(KeyAttemptID, id) }
func Operation(op string) slog.Attr { return slog.String(KeyOperation, op) }
func Username(u string) slog.Attr   { return slog.String(KeyUsername, u) }
func Status(s string) slog.Attr     { return slog.String(KeyStatus, s) }
func Outcome(o string) slog.Attr    { return slog.String(KeyOutcome, o) }
func Mode(m string) slog.Attr       { return slog.String(KeyMode, m) }
func Source(s string) slog.Attr     { return slog.String(KeySource, s) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
