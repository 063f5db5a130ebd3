package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/app"
	"taskflow/internal/ui"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session that stays signed in until logout or quit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell(appCtx, cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.run(cmd.Context())
		},
	}
}

const shellHelp = `Commands:
  open login|register|dashboard   switch screens
  submit                          fill in and send the current form
  tasks                           reload and list your tasks (dashboard)
  whoami                          show the session state
  theme                           toggle light/dark mode
  logout                          sign out and return to login
  help                            show this help
  quit                            leave the shell`

// shell is a line-driven client. Its route mirrors the screen the original
// client would show, and every route change goes through ui.Guard.
type shell struct {
	app   *app.App
	p     *prompter
	out   io.Writer
	route ui.Route
	delay time.Duration
}

func newShell(a *app.App, in io.Reader, out io.Writer) *shell {
	return &shell{
		app:   a,
		p:     newPrompter(in, out),
		out:   out,
		delay: a.Config.RegisterRedirectDelay,
	}
}

func (s *shell) run(ctx context.Context) error {
	// The hook runs on this goroutine, inside Logout.
	s.app.OnLogout(func() { s.route = ui.RouteLogin })
	defer s.app.OnLogout(nil)

	fmt.Fprintln(s.out, shellHelp)
	s.open(ctx, ui.RouteLogin)
	for {
		line, err := s.p.line(s.prompt())
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if quit := s.exec(ctx, fields); quit {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *shell) exec(ctx context.Context, fields []string) (quit bool) {
	pal := s.app.Palette
	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(s.out, shellHelp)
	case "open":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, pal.Paint(ui.RoleError, "usage: open login|register|dashboard"))
			return false
		}
		s.open(ctx, ui.Route(fields[1]))
	case "submit":
		s.submit(ctx)
	case "tasks":
		if s.route != ui.RouteDashboard {
			fmt.Fprintln(s.out, pal.Paint(ui.RoleError, "Sign in to see your tasks."))
			return false
		}
		items, err := s.app.RefreshTasks(ctx)
		if err != nil {
			s.fail(err)
			return false
		}
		printTasks(s.out, pal, items)
	case "whoami":
		snap := s.app.Session.Snapshot()
		if snap.Authenticated() {
			printHeader(s.out, pal, *snap.Identity)
		} else {
			fmt.Fprintln(s.out, pal.Paint(ui.RoleMuted, snap.Status.String()))
		}
	case "theme":
		mode, err := s.app.ToggleMode(ctx)
		if err != nil {
			s.fail(err)
			return false
		}
		fmt.Fprintf(s.out, "Switched to %s mode\n", pal.Paint(ui.RoleAccent, mode.String()))
	case "logout":
		changed, err := s.app.Logout(ctx)
		if err != nil {
			s.fail(err)
			return false
		}
		if changed {
			fmt.Fprintln(s.out, pal.Paint(ui.RoleMuted, "Signed out."))
		}
		s.open(ctx, s.route)
	default:
		fmt.Fprintln(s.out, pal.Paint(ui.RoleError, fmt.Sprintf("unknown command %q (try help)", fields[0])))
	}
	return false
}

// open moves to want, or wherever the guard redirects it. Leaving a form
// clears the error it was showing.
func (s *shell) open(ctx context.Context, want ui.Route) {
	next := ui.Guard(s.app.Session.Authenticated(), want)
	if next != s.route && (s.route == ui.RouteLogin || s.route == ui.RouteRegister) {
		if err := s.app.LeaveForm(ctx); err != nil {
			s.fail(err)
		}
	}
	s.route = next
	s.render()
}

func (s *shell) render() {
	pal := s.app.Palette
	switch s.route {
	case ui.RouteDashboard:
		if snap := s.app.Session.Snapshot(); snap.Authenticated() {
			printHeader(s.out, pal, *snap.Identity)
		}
		printTasks(s.out, pal, s.app.Tasks.Items())
	case ui.RouteRegister:
		fmt.Fprintln(s.out, pal.Paint(ui.RoleAccent, "Join TaskFlow"))
	default:
		fmt.Fprintln(s.out, pal.Paint(ui.RoleAccent, "Welcome to TaskFlow"))
	}
	if msg := s.app.Session.Snapshot().ErrorMessage; msg != "" {
		fmt.Fprintln(s.out, pal.Paint(ui.RoleError, msg))
	}
}

func (s *shell) submit(ctx context.Context) {
	switch s.route {
	case ui.RouteLogin:
		if _, err := submitLogin(ctx, s.p, s.out, ""); err != nil {
			s.fail(err)
			return
		}
		s.open(ctx, ui.RouteDashboard)
	case ui.RouteRegister:
		if _, err := submitRegister(ctx, s.p, s.out, ""); err != nil {
			s.fail(err)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.delay):
		}
		s.open(ctx, ui.RouteLogin)
	default:
		fmt.Fprintln(s.out, s.app.Palette.Paint(ui.RoleMuted, "Nothing to submit here."))
	}
}

func (s *shell) fail(err error) {
	if errors.Is(err, errShown) {
		return
	}
	fmt.Fprintln(s.out, s.app.Palette.Paint(ui.RoleError, err.Error()))
}

func (s *shell) prompt() string {
	return s.app.Palette.Paint(ui.RoleAccent, "taskflow("+string(s.route)+")> ")
}
