package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskflow/internal/ui"
)

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the display mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), appCtx.Palette.Paint(ui.RoleAccent, appCtx.Preference.Mode().String()))
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := appCtx.ToggleMode(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s mode\n", appCtx.Palette.Paint(ui.RoleAccent, mode.String()))
			return nil
		},
	})
	return cmd
}
