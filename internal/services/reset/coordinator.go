package reset

import (
	"context"
	"log/slog"

	"taskflow/internal/dispatch"
	"taskflow/internal/metrics"
)

// Session is the part of the session store the coordinator drives.
type Session interface {
	// Teardown resets to anonymous and reports whether anything changed.
	Teardown() bool
}

// Dependent is user-scoped feature state cleared on logout.
type Dependent interface {
	Clear()
}

// Coordinator owns the logout command.
type Coordinator struct {
	queue      *dispatch.Queue
	session    Session
	dependents []Dependent
	navigate   func()
	log        *slog.Logger
	rec        metrics.Recorder
}

// New returns a coordinator. navigate may be nil; when set it runs after a
// logout that actually ended a session.
func New(
	queue *dispatch.Queue,
	session Session,
	dependents []Dependent,
	navigate func(),
	logger *slog.Logger,
	rec metrics.Recorder,
) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		queue:      queue,
		session:    session,
		dependents: dependents,
		navigate:   navigate,
		log:        logger.With(slog.String("component", "reset")),
		rec:        metrics.OrNoop(rec),
	}
}

// Logout tears down the session and every dependent in one dispatch action.
// It returns false, and skips navigation, when the session was already a
// clean anonymous one. Dependents are cleared either way.
func (c *Coordinator) Logout(ctx context.Context) (bool, error) {
	var changed bool
	err := c.queue.Do(ctx, func() {
		changed = c.session.Teardown()
		for _, d := range c.dependents {
			d.Clear()
		}
	})
	if err != nil {
		return false, err
	}
	if !changed {
		c.log.Debug("Logout ignored: session already anonymous")
		return false, nil
	}
	c.rec.IncLogout()
	c.log.Info("Logged out")
	if c.navigate != nil {
		c.navigate()
	}
	return true, nil
}
