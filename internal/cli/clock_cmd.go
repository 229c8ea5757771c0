package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/cobra"
)

func newClockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Clock in, pause, resume and clock out",
	}

	cmd.AddCommand(
		newClockActionCmd(app, "in", "Start a shift", domain.ActionClockIn),
		newClockActionCmd(app, "pause", "Start a pause", domain.ActionPause),
		newClockActionCmd(app, "resume", "End the current pause", domain.ActionResume),
		newClockActionCmd(app, "out", "End the shift and record it", domain.ActionClockOut),
		newClockStatusCmd(app),
		newClockWatchCmd(app),
	)

	return cmd
}

func newClockActionCmd(app *App, use, short string, action domain.ClockAction) *cobra.Command {
	var userRef string
	var locale localeFlag
	var at timeFlag

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, userRef)
			if err != nil {
				return err
			}
			l, err := defaultLocale(u, locale)
			if err != nil {
				return err
			}

			res, err := app.Clock.Do(ctx, service.ClockRequest{
				UserID: u.ID,
				Locale: l,
				Action: action,
				At:     at.value,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransition(u.Username, l, res.Transition, app.Location))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userRef, "user", "u", "", "User id or username")
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")
	cmd.Flags().Var(&at, "at", "Event time (RFC 3339), defaults to now")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newClockStatusCmd(app *App) *cobra.Command {
	var userRef string
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a user's current shift, or every open shift with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if all {
				sessions, err := app.Clock.ListActive(ctx)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					fmt.Fprintln(out, "Nobody is clocked in.")
					return nil
				}
				for _, s := range sessions {
					name := s.UserID
					if u, err := app.Users.Resolve(ctx, s.UserID); err == nil {
						name = u.Username
					}
					fmt.Fprintln(out, formatter.FormatSession(name, s, app.now(), app.Location))
				}
				return nil
			}

			u, err := resolveUser(ctx, app, userRef)
			if err != nil {
				return err
			}
			s, err := app.Clock.Current(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatSession(u.Username, s, app.now(), app.Location))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userRef, "user", "u", "", "User id or username")
	cmd.Flags().BoolVar(&all, "all", false, "Show every open shift")
	cmd.MarkFlagsOneRequired("user", "all")

	return cmd
}
