package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends for the preference store.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Colour-scheme signal sources. Auto reads the environment; the others pin
// the answer the preference store falls back to.
const (
	SchemeAuto  = "auto"
	SchemeLight = "light"
	SchemeDark  = "dark"
)

// ConfigFile is the optional YAML file read from the home directory.
const ConfigFile = "config.yaml"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home                  string        `yaml:"-" env:"TASKFLOW_HOME"`
	ServerURL             string        `yaml:"server_url" env:"TASKFLOW_SERVER_URL"`
	Storage               string        `yaml:"storage" env:"TASKFLOW_STORAGE"`
	RegisterRedirectDelay time.Duration `yaml:"register_redirect_delay" env:"TASKFLOW_REGISTER_REDIRECT_DELAY"`
	RequestTimeout        time.Duration `yaml:"request_timeout" env:"TASKFLOW_REQUEST_TIMEOUT"`
	LogLevel              string        `yaml:"log_level" env:"TASKFLOW_LOG_LEVEL"`
	LogFormat             string        `yaml:"log_format" env:"TASKFLOW_LOG_FORMAT"`
	MetricsTextfile       string        `yaml:"metrics_textfile" env:"TASKFLOW_METRICS_TEXTFILE"`
	ColorScheme           string        `yaml:"color_scheme" env:"TASKFLOW_COLOR_SCHEME"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ServerURL:             "http://127.0.0.1:8080",
		Storage:               StorageFile,
		RegisterRedirectDelay: 2 * time.Second,
		RequestTimeout:        10 * time.Second,
		LogLevel:              "warn",
		LogFormat:             "text",
		ColorScheme:           SchemeAuto,
	}
}

// DefaultHome returns ~/.taskflow.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".taskflow"), nil
}

// LoadConfig layers defaults, <home>/config.yaml, .env files in the working
// directory and the process environment, in that order. An empty home means
// TASKFLOW_HOME or the default home.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadEnvFiles(".env", ".env.local"); err != nil {
		return cfg, err
	}

	if home == "" {
		home = os.Getenv("TASKFLOW_HOME")
	}
	if home == "" {
		h, err := DefaultHome()
		if err != nil {
			return cfg, fmt.Errorf("resolve home: %w", err)
		}
		home = h
	}
	cfg.Home = home

	if err := readYAML(filepath.Join(home, ConfigFile), &cfg); err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Home = home
	return cfg, cfg.Validate()
}

// loadEnvFiles loads each file that exists. Variables already set in the
// process environment win.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func readYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the wiring cannot honour.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("storage must be %s, %s or %s, got %q", StorageFile, StorageSQLite, StorageMemory, c.Storage)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	switch c.ColorScheme {
	case SchemeAuto, SchemeLight, SchemeDark:
	default:
		return fmt.Errorf("color_scheme must be %s, %s or %s, got %q", SchemeAuto, SchemeLight, SchemeDark, c.ColorScheme)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	if c.RegisterRedirectDelay < 0 || c.RequestTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the slog logger described by c, writing to w.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
