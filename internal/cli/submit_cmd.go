package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var user, answersFile string
	var asJSON bool
	answers := &answerFlag{}

	cmd := &cobra.Command{
		Use:   "submit ID",
		Short: "Score a completed answer set",
		Example: `  psyche submit gad7 --answer gad1=2 --answer gad2=1,gad3=0
  psyche submit phq9 --answers-file answers.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var fromFile domain.AnswerSet
			if answersFile != "" {
				var err error
				if fromFile, err = readAnswersFile(answersFile); err != nil {
					return err
				}
			}
			return runSubmit(cmd, app, contract.NewSubmitRequest(args[0], user, mergeAnswers(fromFile, answers.answers)), asJSON)
		},
	}

	addUserFlag(cmd, &user)
	cmd.Flags().VarP(answers, "answer", "a", "Answer as question=value (repeatable)")
	cmd.Flags().StringVar(&answersFile, "answers-file", "", "JSON or YAML file mapping question IDs to values")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	return cmd
}

func runSubmit(cmd *cobra.Command, app *App, req contract.SubmitRequest, asJSON bool) error {
	resp, err := app.Submissions.Submit(context.Background(), req)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}
	inst, err := app.Instruments.Require(req.InstrumentID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubmitResponse(inst, resp))
	return nil
}
