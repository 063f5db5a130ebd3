package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskflow/internal/domain"
	"taskflow/internal/ui"
)

// errShown marks failures already printed to the user.
var errShown = errors.New("reported")

var errFormInvalid = fmt.Errorf("%w: form has errors", errShown)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to TaskFlow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			_, err := submitLogin(cmd.Context(), p, cmd.OutOrStdout(), username)
			return err
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

// submitLogin collects the login form and runs it. A verifier rejection is
// printed and returned as an error carrying the same user-facing message.
func submitLogin(ctx context.Context, p *prompter, out io.Writer, user string) (domain.Outcome, error) {
	var err error
	if user == "" {
		if user, err = p.line("Username: "); err != nil {
			return domain.Outcome{}, err
		}
	}
	password, err := p.secret("Password: ")
	if err != nil {
		return domain.Outcome{}, err
	}

	pal := appCtx.Palette
	fmt.Fprintln(out, pal.Paint(ui.RoleMuted, ui.MsgAuthenticating))
	res, err := appCtx.Login(ctx, user, password)
	if printFieldErrors(out, pal, err) {
		return res, errFormInvalid
	}
	if err != nil {
		return res, err
	}
	switch res.Kind {
	case domain.OutcomeAuthenticated:
		printHeader(out, pal, *res.Identity)
		fmt.Fprintln(out, pal.Paint(ui.RoleSuccess, fmt.Sprintf(ui.MsgWelcomeTemplate, res.Identity.Username)))
		return res, nil
	case domain.OutcomeSuperseded:
		return res, errors.New("sign-in was cancelled")
	default:
		fmt.Fprintln(out, pal.Paint(ui.RoleError, res.Message))
		return res, fmt.Errorf("%w: %s", errShown, res.Message)
	}
}

// printHeader renders the dashboard header line: brand, mode and user initial.
func printHeader(out io.Writer, pal *ui.Palette, id domain.Identity) {
	fmt.Fprintf(out, "%s  %s  [%s] %s\n",
		pal.Paint(ui.RoleAccent, "TaskFlow"),
		pal.Paint(ui.RoleMuted, pal.Class()),
		pal.Paint(ui.RoleAccent, id.Initial()),
		pal.Paint(ui.RoleText, id.Username.String()),
	)
}
