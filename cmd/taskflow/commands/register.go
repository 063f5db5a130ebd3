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

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a TaskFlow account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			res, err := submitRegister(cmd.Context(), p, cmd.OutOrStdout(), username)
			if err != nil {
				return err
			}
			if res.Kind == domain.OutcomeRegistered {
				fmt.Fprintln(cmd.OutOrStdout(), appCtx.Palette.Paint(ui.RoleMuted, "Sign in with: taskflow login -u "+res.Identity.Username.String()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

// submitRegister collects the registration form and runs it.
func submitRegister(ctx context.Context, p *prompter, out io.Writer, user string) (domain.Outcome, error) {
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
	confirmation, err := p.secret("Confirm password: ")
	if err != nil {
		return domain.Outcome{}, err
	}

	pal := appCtx.Palette
	fmt.Fprintln(out, pal.Paint(ui.RoleMuted, ui.MsgSettingUp))
	res, err := appCtx.Register(ctx, user, password, confirmation)
	if printFieldErrors(out, pal, err) {
		return res, errFormInvalid
	}
	if err != nil {
		return res, err
	}
	switch res.Kind {
	case domain.OutcomeRegistered:
		fmt.Fprintln(out, pal.Paint(ui.RoleSuccess, ui.MsgRegistered))
		return res, nil
	case domain.OutcomeSuperseded:
		return res, errors.New("registration was cancelled")
	default:
		fmt.Fprintln(out, pal.Paint(ui.RoleError, res.Message))
		return res, fmt.Errorf("%w: %s", errShown, res.Message)
	}
}
