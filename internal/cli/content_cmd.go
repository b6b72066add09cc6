package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/psyche/internal/catalog"
	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/spf13/cobra"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage the content catalog",
	}

	importCmd := &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import catalog items from YAML (the built-in starter catalog when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []domain.ContentItem
			var err error
			source := "starter catalog"
			if len(args) == 1 {
				source = args[0]
				items, err = catalog.LoadFile(args[0])
			} else {
				items, err = catalog.Starter()
			}
			if err != nil {
				return err
			}
			n, err := app.Content.Import(context.Background(), items)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d items from %s\n", formatter.StyleGreen.Render("✔"), n, source)
			return nil
		},
	}

	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Content.List(context.Background(), category)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatContentList(items))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category")

	cmd.AddCommand(importCmd, listCmd)
	return cmd
}
