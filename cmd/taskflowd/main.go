package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"taskflow/internal/authserver"
)

type config struct {
	Addr      string `env:"TASKFLOWD_ADDR" envDefault:":8080"`
	DB        string `env:"TASKFLOWD_DB" envDefault:"taskflowd.db"`
	LogFormat string `env:"TASKFLOWD_LOG_FORMAT" envDefault:"text"`
	Verbose   bool   `env:"TASKFLOWD_VERBOSE"`
}

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var cfg config
	cmd := &cobra.Command{
		Use:          "taskflowd",
		Short:        "Development TaskFlow API server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags win over the environment.
			fromEnv := config{}
			if err := env.Parse(&fromEnv); err != nil {
				return fmt.Errorf("parse env: %w", err)
			}
			flags := cmd.Flags()
			if !flags.Changed("addr") {
				cfg.Addr = fromEnv.Addr
			}
			if !flags.Changed("db") {
				cfg.DB = fromEnv.DB
			}
			if !flags.Changed("log-format") {
				cfg.LogFormat = fromEnv.LogFormat
			}
			if !flags.Changed("verbose") {
				cfg.Verbose = fromEnv.Verbose
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newLogger(cfg))
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfg.DB, "db", "taskflowd.db", "SQLite accounts database")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", "text", "log format: text or json")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func newLogger(cfg config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func serve(ctx context.Context, cfg config, logger *slog.Logger) error {
	users, err := authserver.OpenUsers(cfg.DB, 0)
	if err != nil {
		return err
	}
	defer users.Close()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           authserver.New(users, logger, reg).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("taskflowd listening", slog.String("addr", cfg.Addr), slog.String("db", cfg.DB))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("taskflowd shutting down")
	return srv.Shutdown(shutdownCtx)
}
