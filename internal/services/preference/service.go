package preference

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/logfields"
	"taskflow/internal/metrics"
)

// StorageKey is the durable-storage key holding the literal "light" or "dark".
const StorageKey = "taskflow-theme"

// Where the initial mode came from, for logs.
const (
	sourceStored  = "stored"
	sourceSystem  = "system"
	sourceDefault = "default"
)

// Options wires the store's collaborators. Queue and Storage are required.
type Options struct {
	Queue   *dispatch.Queue
	Storage domain.KV
	Signal  domain.SchemeSignal // nil means "no preference"
	Marker  domain.Marker       // nil means no presentation flag to update
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// Service is the preference store.
type Service struct {
	queue   *dispatch.Queue
	storage domain.KV
	marker  domain.Marker
	log     *slog.Logger
	rec     metrics.Recorder

	mu   sync.RWMutex
	mode domain.Mode
}

// New resolves the initial mode and commits it before returning, so the first
// render already sees the right mode.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Queue == nil || opts.Storage == nil {
		return nil, errors.New("preference: queue and storage are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		queue:   opts.Queue,
		storage: opts.Storage,
		marker:  opts.Marker,
		log:     logger.With(slog.String("component", "preference")),
		rec:     metrics.OrNoop(opts.Metrics),
	}

	err := s.queue.Do(ctx, func() {
		mode, source := s.resolve(opts.Signal)
		s.commit(mode)
		s.log.Debug("Display mode initialised", logfields.Mode(mode.String()), logfields.Source(source))
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// resolve walks stored value -> system signal -> light.
func (s *Service) resolve(signal domain.SchemeSignal) (domain.Mode, string) {
	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.rec.IncPersistFailure("get")
		s.log.Warn("Reading stored display mode failed; falling back", logfields.Error(err))
	} else if ok {
		if mode, valid := domain.ParseMode(raw); valid {
			return mode, sourceStored
		}
	}
	if signal != nil && signal.PrefersDark() {
		return domain.ModeDark, sourceSystem
	}
	return domain.ModeLight, sourceDefault
}

// Toggle flips the mode and returns the new value. A failed storage write is
// logged and counted; it does not fail the toggle.
func (s *Service) Toggle(ctx context.Context) (domain.Mode, error) {
	var next domain.Mode
	err := s.queue.Do(ctx, func() {
		next = s.Mode().Toggle()
		s.commit(next)
	})
	if err != nil {
		return "", err
	}
	s.rec.IncModeChange(next.String())
	s.log.Info("Display mode changed", logfields.Mode(next.String()))
	return next, nil
}

// Mode returns the committed mode.
func (s *Service) Mode() domain.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Snapshot returns the read-only view consumed by renderers.
func (s *Service) Snapshot() domain.PreferenceState {
	return domain.PreferenceState{Mode: s.Mode()}
}

// commit sets the in-memory mode, persists it and updates the marker. Queue only.
func (s *Service) commit(mode domain.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	if err := s.storage.Set(StorageKey, mode.String()); err != nil {
		s.rec.IncPersistFailure("set")
		s.log.Warn("Persisting display mode failed", logfields.Mode(mode.String()), logfields.Error(err))
	}
	if s.marker != nil {
		s.marker.Apply(mode)
	}
}
