package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"taskflow/internal/domain"
	"taskflow/internal/ui"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Sign in and list your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p := newPrompter(cmd.InOrStdin(), out)
			if _, err := submitLogin(cmd.Context(), p, out, username); err != nil {
				return err
			}
			printTasks(out, appCtx.Palette, appCtx.Tasks.Items())
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

func printTasks(out io.Writer, pal *ui.Palette, items []domain.Task) {
	if len(items) == 0 {
		fmt.Fprintln(out, pal.Paint(ui.RoleMuted, "No tasks yet."))
		return
	}
	for _, t := range items {
		box, role := "[ ]", ui.RoleText
		if t.Done {
			box, role = "[x]", ui.RoleMuted
		}
		fmt.Fprintf(out, "%s %s\n", pal.Paint(ui.RoleAccent, box), pal.Paint(role, t.Title))
	}
}
