package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or rebuild the longitudinal profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileRefreshCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	var user string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profiles.Get(context.Background(), user)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p, app.now()))
			return nil
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}

func newProfileRefreshCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute the profile from stored results and moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.NarrativeEnabled && app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Writing your summary...")
			}
			p, err := app.Profiles.Refresh(context.Background(), user)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p, app.now()))
			return nil
		},
	}
	addUserFlag(cmd, &user)
	return cmd
}
