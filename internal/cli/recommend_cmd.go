package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRecommendCmd(app *App) *cobra.Command {
	var user string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest one piece of content for the current profile state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := app.Recommendations.Recommend(context.Background(), user)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecommendation(rec))
			return nil
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the recommendation as JSON")
	return cmd
}
