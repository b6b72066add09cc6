package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/spf13/cobra"
)

func newResultsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Browse stored test results",
	}

	var user string
	var limit int
	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := app.Results.List(context.Background(), user, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			titles := map[string]string{}
			for _, inst := range app.Instruments.List() {
				titles[inst.ID] = inst.Title
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResultList(results, titles, app.now()))
			return nil
		},
	}
	addUserFlag(list, &user)
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results to show (0 for all)")
	list.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")

	var showJSON bool
	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one stored result with its interpretation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, in, err := app.Results.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			resp := &contract.SubmitResponse{Result: *r, Interpretation: *in, Stored: true}
			if showJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			inst, err := app.Instruments.Require(r.InstrumentID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubmitResponse(inst, resp))
			return nil
		},
	}
	show.Flags().BoolVar(&showJSON, "json", false, "Print the result as JSON")

	cmd.AddCommand(list, show)
	return cmd
}
