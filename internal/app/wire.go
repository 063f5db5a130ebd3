package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"

	"taskflow/internal/authclient"
	"taskflow/internal/dispatch"
	"taskflow/internal/domain"
	"taskflow/internal/metrics"
	"taskflow/internal/services/preference"
	"taskflow/internal/services/reset"
	"taskflow/internal/services/session"
	"taskflow/internal/services/tasks"
	"taskflow/internal/store"
	"taskflow/internal/system"
	"taskflow/internal/ui"
)

// queueBuffer is the dispatch queue depth. Posts beyond it block the caller.
const queueBuffer = 64

// Options carries the collaborators that do not come from Config.
type Options struct {
	Logger *slog.Logger
	// Plain disables ANSI styling in the palette.
	Plain bool
	// Signal overrides the environment colour-scheme signal.
	Signal domain.SchemeSignal
	// HTTP overrides the client built from Config.RequestTimeout.
	HTTP *http.Client
}

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config     Config
	Logger     *slog.Logger
	Queue      *dispatch.Queue
	Storage    domain.KV
	Palette    *ui.Palette
	Client     *authclient.HTTP
	Session    *session.Service
	Tasks      *tasks.Service
	Preference *preference.Service
	Reset      *reset.Coordinator
	Registry   *prom.Registry

	mu       sync.Mutex
	navigate func()
	closers  []io.Closer
}

// NewWire constructs the dependency graph from cfg. The preference store is
// initialised before it returns, so the palette already reflects the mode.
func NewWire(ctx context.Context, cfg Config, opts Options) (*Wire, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(cfg, os.Stderr)
	}
	w := &Wire{Config: cfg, Logger: logger}

	kv, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		w.closers = append(w.closers, closer)
	}
	w.Storage = kv

	httpClient := opts.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	w.Client = authclient.NewHTTP(cfg.ServerURL, httpClient)

	w.Registry = prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(w.Registry, "taskflow")

	if opts.Plain {
		w.Palette = ui.NewPlainPalette()
	} else {
		w.Palette = ui.NewPalette()
	}
	signal := opts.Signal
	if signal == nil {
		signal = schemeSignal(cfg.ColorScheme)
	}

	w.Queue = dispatch.New(queueBuffer)
	w.Session = session.New(w.Queue, w.Client, logger, rec)
	w.Tasks = tasks.New(w.Queue, w.Client, w.Session, logger)
	w.Reset = reset.New(w.Queue, w.Session, []reset.Dependent{w.Tasks}, w.runNavigate, logger, rec)

	w.Preference, err = preference.New(ctx, preference.Options{
		Queue:   w.Queue,
		Storage: kv,
		Signal:  signal,
		Marker:  w.Palette,
		Logger:  logger,
		Metrics: rec,
	})
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("init preference: %w", err)
	}
	return w, nil
}

// schemeSignal maps the color_scheme setting to the signal consulted when no
// mode has been stored yet.
func schemeSignal(scheme string) domain.SchemeSignal {
	switch scheme {
	case SchemeDark:
		return system.Fixed(true)
	case SchemeLight:
		return system.Fixed(false)
	default:
		return system.EnvSignal{}
	}
}

func openStorage(cfg Config) (domain.KV, io.Closer, error) {
	switch cfg.Storage {
	case StorageMemory:
		return store.NewMemoryKV(), nil, nil
	case StorageSQLite:
		if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
			return nil, nil, fmt.Errorf("create home: %w", err)
		}
		kv, err := store.NewSQLiteKV(filepath.Join(cfg.Home, "taskflow.db"))
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	default:
		return store.NewFileKV(cfg.Home), nil, nil
	}
}

var (
	_ tasks.Scope     = (*session.Service)(nil)
	_ reset.Session   = (*session.Service)(nil)
	_ reset.Dependent = (*tasks.Service)(nil)
)

// OnLogout sets the navigation hook run after a logout that ended a session.
func (w *Wire) OnLogout(fn func()) {
	w.mu.Lock()
	w.navigate = fn
	w.mu.Unlock()
}

func (w *Wire) runNavigate() {
	w.mu.Lock()
	fn := w.navigate
	w.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Close stops the queue, releases storage and writes the metrics textfile
// when one is configured.
func (w *Wire) Close() error {
	if w.Queue != nil {
		w.Queue.Close()
	}
	var errs []error
	for _, c := range w.closers {
		errs = append(errs, c.Close())
	}
	w.closers = nil
	errs = append(errs, metrics.WriteTextfile(w.Config.MetricsTextfile, w.Registry))
	return errors.Join(errs...)
}
