package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"taskflow/internal/app"
)

var (
	home      string
	serverURL string
	storage   string
	logFormat string
	verbose   bool
	username  string

	appCtx *app.App
)

// Execute runs the root command.
func Execute() error {
	root := newRoot()
	err := errors.Join(root.Execute(), closeApp())
	if err != nil && !errors.Is(err, errShown) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "TaskFlow command-line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("server") {
				cfg.ServerURL = serverURL
			}
			if flags.Changed("storage") {
				cfg.Storage = storage
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if verbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w, err := app.NewWire(cmd.Context(), cfg, app.Options{
				Logger: app.NewLogger(cfg, cmd.ErrOrStderr()),
				Plain:  plainOutput(),
			})
			if err != nil {
				return err
			}
			appCtx = app.New(w)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.taskflow)")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "API base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&storage, "storage", "", "preference storage: file, sqlite or memory")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(loginCmd(), registerCmd(), tasksCmd(), themeCmd(), shellCmd())
	return root
}

// plainOutput disables colour when stdout is not a terminal or NO_COLOR is set.
func plainOutput() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	fd := os.Stdout.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// closeApp releases the graph built by the root pre-run. Hooks after RunE are
// skipped when it fails, so this runs after Execute instead.
func closeApp() error {
	if appCtx == nil {
		return nil
	}
	err := appCtx.Close()
	appCtx = nil
	return err
}
