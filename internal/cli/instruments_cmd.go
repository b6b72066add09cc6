package cli

import (
	"fmt"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newInstrumentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "instruments",
		Aliases: []string{"tests"},
		Short:   "List and inspect the available tests",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List registered instruments",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInstrumentList(app.Instruments.List()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Show an instrument's questions and tiers",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				inst, err := app.Instruments.Require(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInstrument(inst))
				return nil
			},
		},
	)
	return cmd
}
