package tasks

import (
	"context"
	"log/slog"
	"sync"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/logfields"
)

// Scope reports whose tasks may be cached. It is consulted on the dispatch
// queue, so the answer is consistent with every other transition.
type Scope interface {
	Current() (domain.Identity, bool)
}

// Service holds the cached task list.
type Service struct {
	queue  *dispatch.Queue
	source domain.TaskSource
	scope  Scope
	log    *slog.Logger

	mu         sync.RWMutex
	items      []domain.Task
	generation uint64
}

// New returns an empty task cache for the identity scope reports.
func New(queue *dispatch.Queue, source domain.TaskSource, scope Scope, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		queue:  queue,
		source: source,
		scope:  scope,
		log:    logger.With(slog.String("component", "tasks")),
	}
}

// Refresh fetches the task list of the current identity and caches it. The
// identity and the cache generation are read in the same dispatch action, and
// the result is applied only if both are unchanged: a logout or Clear that
// lands at any point before the apply wins, the fetched list is dropped and
// ok is false. ErrNotAuthenticated is returned when there is no identity.
func (s *Service) Refresh(ctx context.Context) (items []domain.Task, ok bool, err error) {
	var (
		gen      uint64
		id       domain.Identity
		signedIn bool
	)
	err = s.queue.Do(ctx, func() {
		id, signedIn = s.scope.Current()
		gen = s.gen()
	})
	if err != nil {
		return nil, false, err
	}
	if !signedIn {
		return nil, false, domain.ErrNotAuthenticated
	}

	fetched, err := s.source.FetchTasks(ctx, id)
	if err != nil {
		s.log.Warn("Task fetch failed", logfields.Username(id.Username.String()), logfields.Error(err))
		return nil, false, err
	}

	err = s.queue.Do(context.WithoutCancel(ctx), func() {
		if s.gen() != gen {
			return
		}
		cur, still := s.scope.Current()
		if !still || cur.ID != id.ID || cur.Token != id.Token {
			return
		}
		s.mu.Lock()
		s.items = append([]domain.Task(nil), fetched...)
		s.mu.Unlock()
		ok = true
	})
	if err != nil {
		return nil, false, err
	}
	if !ok {
		s.log.Info("Discarded task list fetched for a torn-down session", logfields.Username(id.Username.String()))
		return nil, false, nil
	}
	s.log.Debug("Task list refreshed", logfields.Count(len(fetched)))
	return s.Items(), true, nil
}

// Items returns a copy of the cached tasks.
func (s *Service) Items() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Task(nil), s.items...)
}

// Clear empties the cache and invalidates in-flight refreshes. It must run
// inside a dispatch action.
func (s *Service) Clear() {
	s.mu.Lock()
	s.items = nil
	s.generation++
	s.mu.Unlock()
}

func (s *Service) gen() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
