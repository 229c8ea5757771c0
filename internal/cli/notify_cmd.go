package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Inspect and deliver queued Discord announcements",
	}

	cmd.AddCommand(
		newNotifyFlushCmd(app),
		newNotifyListCmd(app),
	)

	return cmd
}

func newNotifyFlushCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Deliver every due announcement once",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Dispatcher.Flush(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d  %s %d  %s %d\n",
				formatter.StyleGreen.Render("sent"), res.Sent,
				formatter.StyleYellow.Render("retrying"), res.Retried,
				formatter.StyleRed.Render("failed"), res.Failed)
			return nil
		},
	}
}

func newNotifyListCmd(app *App) *cobra.Command {
	var status string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outbox entries by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.NotificationStatus(status)
			switch st {
			case domain.NotificationPending, domain.NotificationSent, domain.NotificationFailed:
			default:
				return fmt.Errorf("unknown status %q (pending, sent, failed)", status)
			}
			ns, err := app.Outbox.ListByStatus(context.Background(), st, limit)
			if err != nil {
				return err
			}
			if len(ns) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s notifications.\n", st)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotifications(ns, app.Location))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", string(domain.NotificationPending), "pending, sent or failed")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show, 0 for all")

	return cmd
}
