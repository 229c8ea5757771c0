package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newUserListCmd(app),
		newUserAddCmd(app),
		newUserRemoveCmd(app),
		newUserLoginCmd(app),
	)

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUsers(users))
			return nil
		},
	}
}

// newUserAddCmd creates an account, or updates it when --id names an
// existing one.
func newUserAddCmd(app *App) *cobra.Command {
	var id, username, role, password string
	var locales []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			u := &domain.User{ID: id, Username: username, Role: r}
			for _, l := range locales {
				locale, err := domain.ParseLocale(l)
				if err != nil {
					return err
				}
				u.AllowedLocales = append(u.AllowedLocales, locale)
			}

			// Updates may keep the stored password.
			pw, err := passwordOrPrompt(app, password, "Contraseña para "+username, id != "")
			if err != nil {
				return err
			}
			if err := app.Users.Save(context.Background(), u, pw); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved user %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Existing user id to update")
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleWorker), "Role (admin, worker)")
	cmd.Flags().StringSliceVar(&locales, "locale", nil, "Storefronts the user may work at, repeatable or comma separated")
	cmd.Flags().StringVar(&password, "password", "", "Password, prompted for when omitted")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newUserRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove USER",
		Short: "Delete an account by id or username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			u, err := resolveUser(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Users.Delete(ctx, u.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", u.Username)
			return nil
		},
	}
}

func newUserLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a username and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(app, password, "Contraseña", false)
			if err != nil {
				return err
			}
			u, err := app.Users.Login(context.Background(), username, pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&password, "password", "", "Password, prompted for when omitted")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
