package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Raw clock events",
	}
	cmd.AddCommand(newLogListCmd(app))
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent clock events, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := app.TimeLogs.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimeLogs(logs, app.Location))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 30, "Maximum events to show, 0 for all")

	return cmd
}
