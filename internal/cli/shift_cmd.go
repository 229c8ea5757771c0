package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/spf13/cobra"
)

func newShiftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Browse and manage completed shifts",
	}

	cmd.AddCommand(
		newShiftListCmd(app),
		newShiftRemoveCmd(app),
		newShiftClearCmd(app),
		newShiftExportCmd(app),
	)

	return cmd
}

// shiftFilterFlags are shared by list and export.
type shiftFilterFlags struct {
	user   string
	locale localeFlag
	limit  int
}

func (f *shiftFilterFlags) register(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "Only shifts of this user (id or username)")
	cmd.Flags().VarP(&f.locale, "locale", "l", "Only shifts at this storefront")
	cmd.Flags().IntVar(&f.limit, "limit", defaultLimit, "Maximum shifts to show, 0 for all")
}

func (f *shiftFilterFlags) filter(ctx context.Context, app *App) (domain.ShiftFilter, error) {
	out := domain.ShiftFilter{Locale: f.locale.value, Limit: f.limit}
	if f.user != "" {
		u, err := resolveUser(ctx, app, f.user)
		if err != nil {
			return out, err
		}
		out.UserID = u.ID
	}
	return out, nil
}

func newShiftListCmd(app *App) *cobra.Command {
	var flags shiftFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List completed shifts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			f, err := flags.filter(ctx, app)
			if err != nil {
				return err
			}
			shifts, err := app.Shifts.List(ctx, f)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shifts found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatShifts(shifts, app.Location))
			return nil
		},
	}
	flags.register(cmd, 20)

	return cmd
}

func newShiftRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete one shift record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Shifts.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed shift %s\n", args[0])
			return nil
		},
	}
}

func newShiftClearCmd(app *App) *cobra.Command {
	var userRef string
	var locale localeFlag
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a user's shifts at one storefront, or all shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				n   int64
				err error
			)
			if all {
				n, err = app.Shifts.ClearAll(ctx)
			} else {
				if userRef == "" || locale.value == "" {
					return fmt.Errorf("--user and --locale are required unless --all is set")
				}
				u, rerr := resolveUser(ctx, app, userRef)
				if rerr != nil {
					return rerr
				}
				n, err = app.Shifts.ClearUser(ctx, u.ID, locale.value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.Count(int(n), "shift", "shifts"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userRef, "user", "u", "", "User id or username")
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every shift")
	cmd.MarkFlagsMutuallyExclusive("all", "user")

	return cmd
}

func newShiftExportCmd(app *App) *cobra.Command {
	var flags shiftFilterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write shifts to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := context.Background()
			f, err := flags.filter(ctx, app)
			if err != nil {
				return err
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			n, err := app.Shifts.Export(ctx, f, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", formatter.Count(n, "shift", "shifts"), outPath)
			return nil
		},
	}
	flags.register(cmd, 0)
	cmd.Flags().StringVarP(&outPath, "out", "o", "turnos.xlsx", "Output file")

	return cmd
}
