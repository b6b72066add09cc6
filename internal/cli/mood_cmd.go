package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/spf13/cobra"
)

func newMoodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and review daily moods",
	}
	cmd.AddCommand(newMoodLogCmd(app), newMoodListCmd(app))
	return cmd
}

func newMoodLogCmd(app *App) *cobra.Command {
	var user, mood, note, date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log today's mood (great, good, neutral, low, bad or an emoji)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.MoodLogRequest{UserID: user, Mood: mood, Note: note}
			if date != "" {
				day, err := time.Parse(domain.DayLayout, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				req.Day = &day
			}
			entry, err := app.Moods.Log(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMoodEntry(entry))
			return nil
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().StringVarP(&mood, "mood", "m", "", "Mood name or emoji")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	cmd.Flags().StringVar(&date, "date", "", "Day to log (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("mood")
	return cmd
}

func newMoodListCmd(app *App) *cobra.Command {
	var user string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Moods.ListRecent(context.Background(), user, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMoodList(entries))
			return nil
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().IntVarP(&days, "days", "d", 14, "Number of days to show (0 for all)")
	return cmd
}
