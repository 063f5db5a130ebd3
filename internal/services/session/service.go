package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/logfields"
	"taskflow/internal/metrics"
	"taskflow/internal/util/memzero"
)

const (
	opLogin    = "login"
	opRegister = "register"

	// Shown when a failure carries no message of its own.
	genericLoginFailure    = "Authentication failed. Please try again."
	genericRegisterFailure = "Registration failed. Please try again."
)

// Service is the session store.
//
// All mutations run on the dispatch queue; snapshots are read under mu so
// presentation code can poll without dispatching.
type Service struct {
	queue    *dispatch.Queue
	verifier domain.Verifier
	log      *slog.Logger
	rec      metrics.Recorder

	mu        sync.RWMutex
	state     domain.SessionState
	attempt   uuid.UUID // uuid.Nil when nothing is in flight
	listeners map[int]func(domain.SessionState)
	nextID    int
}

// New returns an anonymous session store dispatching onto queue.
func New(queue *dispatch.Queue, verifier domain.Verifier, logger *slog.Logger, rec metrics.Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		queue:     queue,
		verifier:  verifier,
		log:       logger.With(slog.String("component", "session")),
		rec:       metrics.OrNoop(rec),
		state:     domain.SessionState{Status: domain.StatusAnonymous},
		listeners: make(map[int]func(domain.SessionState)),
	}
}

// Login authenticates creds against the verifier.
//
// Steps:
//  1. Reject malformed input and calls made while authenticating or authenticated.
//  2. Dispatch the begin transition: authenticating, error cleared, fresh attempt token.
//  3. Call the verifier on this goroutine; the queue keeps serving other transitions.
//  4. Dispatch the resolution, which is applied only if the attempt is still current.
//
// Verifier failures never surface as errors: they become a failed session and
// an OutcomeFailed carrying a user-facing message. The returned error is only
// for caller misuse or a closed queue.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (domain.Outcome, error) {
	defer memzero.Zero(creds.Password)
	if !creds.Valid() {
		return domain.Outcome{}, domain.ErrInvalidCredentials
	}
	return s.run(ctx, opLogin, creds.Username, func(ctx context.Context) (domain.Identity, error) {
		return s.verifier.Login(ctx, creds)
	})
}

// Register creates an account. Success does not authenticate the session: it
// returns to anonymous and the caller decides where to route the user next.
func (s *Service) Register(ctx context.Context, creds domain.RegisterCredentials) (domain.Outcome, error) {
	defer memzero.Zero(creds.Password, creds.Confirmation)
	if !creds.Credentials().Valid() {
		return domain.Outcome{}, domain.ErrInvalidCredentials
	}
	if !creds.Matches() {
		return domain.Outcome{}, domain.ErrPasswordMismatch
	}
	return s.run(ctx, opRegister, creds.Username, func(ctx context.Context) (domain.Identity, error) {
		return s.verifier.Register(ctx, creds.Credentials())
	})
}

func (s *Service) run(
	ctx context.Context,
	op string,
	username domain.Username,
	call func(context.Context) (domain.Identity, error),
) (domain.Outcome, error) {
	token, err := s.begin(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	log := s.log.With(logfields.Operation(op), logfields.AttemptID(token.String()), logfields.Username(username.String()))
	log.Debug("Authentication attempt started")
	s.rec.IncAuthAttempt(op)

	start := time.Now()
	id, callErr := call(ctx)
	elapsed := time.Since(start).Milliseconds()

	var out domain.Outcome
	// Resolution must land even if the caller gave up waiting, otherwise the
	// store would sit in authenticating forever.
	err = s.queue.Do(context.WithoutCancel(ctx), func() {
		out = s.resolve(op, token, id, callErr)
	})
	if err != nil {
		return domain.Outcome{}, err
	}

	switch out.Kind {
	case domain.OutcomeSuperseded:
		s.rec.IncAuthResult(op, metrics.ResultSuperseded)
		log.Info("Discarded stale authentication result", logfields.DurationMS(elapsed))
	case domain.OutcomeFailed:
		s.rec.IncAuthResult(op, metrics.ResultFailure)
		log.Warn("Authentication attempt failed", logfields.DurationMS(elapsed), logfields.Error(callErr))
	default:
		s.rec.IncAuthResult(op, metrics.ResultSuccess)
		log.Info("Authentication attempt succeeded", logfields.Outcome(string(out.Kind)), logfields.DurationMS(elapsed))
	}
	return out, nil
}

// begin moves an anonymous or failed session to authenticating and returns
// the token identifying this attempt.
func (s *Service) begin(ctx context.Context) (uuid.UUID, error) {
	var (
		token  uuid.UUID
		reject error
	)
	err := s.queue.Do(ctx, func() {
		switch s.Snapshot().Status {
		case domain.StatusAuthenticating:
			reject = domain.ErrAttemptInFlight
			return
		case domain.StatusAuthenticated:
			reject = domain.ErrAlreadyAuthenticated
			return
		}
		token = uuid.New()
		s.commit(token, domain.SessionState{Status: domain.StatusAuthenticating})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return token, reject
}

// resolve runs on the queue.
func (s *Service) resolve(op string, token uuid.UUID, id domain.Identity, callErr error) domain.Outcome {
	s.mu.RLock()
	current, status := s.attempt, s.state.Status
	s.mu.RUnlock()
	if current != token || status != domain.StatusAuthenticating {
		return domain.Outcome{Kind: domain.OutcomeSuperseded}
	}

	if callErr != nil {
		msg := domain.UserMessage(callErr)
		if msg == "" {
			msg = genericLoginFailure
			if op == opRegister {
				msg = genericRegisterFailure
			}
		}
		s.commit(uuid.Nil, domain.SessionState{Status: domain.StatusFailed, ErrorMessage: msg})
		return domain.Outcome{Kind: domain.OutcomeFailed, Message: msg}
	}

	if op == opRegister {
		s.commit(uuid.Nil, domain.SessionState{Status: domain.StatusAnonymous})
		return domain.Outcome{Kind: domain.OutcomeRegistered, Identity: &id}
	}

	ident := id
	s.commit(uuid.Nil, domain.SessionState{Status: domain.StatusAuthenticated, Identity: &ident})
	return domain.Outcome{Kind: domain.OutcomeAuthenticated, Identity: &id}
}

// ClearError drops the current error message. A failed session becomes
// anonymous; any other status is left as is. Calling it repeatedly is harmless.
func (s *Service) ClearError(ctx context.Context) error {
	return s.queue.Do(ctx, func() {
		s.mu.RLock()
		next, attempt := s.state, s.attempt
		s.mu.RUnlock()
		if next.ErrorMessage == "" && next.Status != domain.StatusFailed {
			return
		}
		next.ErrorMessage = ""
		if next.Status == domain.StatusFailed {
			next.Status = domain.StatusAnonymous
		}
		s.commit(attempt, next)
	})
}

// Teardown resets the session to anonymous and invalidates any in-flight
// attempt. It reports whether the session was anything other than a clean
// anonymous state.
//
// Teardown must run inside a dispatch action; use reset.Coordinator.Logout
// rather than calling it directly.
func (s *Service) Teardown() bool {
	s.mu.RLock()
	prev := s.state
	s.mu.RUnlock()

	changed := prev.Status != domain.StatusAnonymous || prev.Identity != nil || prev.ErrorMessage != ""
	if !changed {
		return false
	}
	s.commit(uuid.Nil, domain.SessionState{Status: domain.StatusAnonymous})
	s.log.Info("Session torn down", logfields.Status(string(prev.Status)))
	return true
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.Identity != nil {
		id := *out.Identity
		out.Identity = &id
	}
	return out
}

// Authenticated is the signal navigation guards use to admit or redirect.
func (s *Service) Authenticated() bool { return s.Snapshot().Authenticated() }

// Current returns the authenticated identity, if any.
func (s *Service) Current() (domain.Identity, bool) {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		return domain.Identity{}, false
	}
	return *snap.Identity, true
}

// Loading reports whether an attempt is in flight.
func (s *Service) Loading() bool { return s.Snapshot().Loading() }

// Subscribe registers fn to be called on the dispatch queue after every
// applied transition. fn must not dispatch synchronously.
func (s *Service) Subscribe(fn func(domain.SessionState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// commit replaces the state and notifies listeners. Queue only.
func (s *Service) commit(attempt uuid.UUID, next domain.SessionState) {
	s.mu.Lock()
	s.state = next
	s.attempt = attempt
	fns := make([]func(domain.SessionState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}
