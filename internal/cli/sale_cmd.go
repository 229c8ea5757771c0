package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/cobra"
)

func newSaleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sale",
		Short: "Ring up and review sales",
	}

	cmd.AddCommand(
		newSaleRingCmd(app),
		newSaleListCmd(app),
	)

	return cmd
}

func newSaleRingCmd(app *App) *cobra.Command {
	var userRef string
	var locale localeFlag
	var items []string
	var at timeFlag

	cmd := &cobra.Command{
		Use:   "ring",
		Short: "Record a sale",
		Example: `  shiftclock sale ring --user empleado1 --item y1=2 --item y7
  shiftclock sale ring -u jefe -l uwu -i u3`,
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

			req := service.SaleRequest{UserID: u.ID, Locale: l, At: at.value}
			for _, it := range items {
				line, err := parseItem(it)
				if err != nil {
					return err
				}
				req.Lines = append(req.Lines, line)
			}

			sale, err := app.Sales.Checkout(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSale(sale, app.Location))
			return nil
		},
	}

	cmd.Flags().StringVarP(&userRef, "user", "u", "", "Cashier id or username")
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")
	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Product as ID or ID=QTY, repeatable")
	cmd.Flags().Var(&at, "at", "Sale time (RFC 3339), defaults to now")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newSaleListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sales, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sales, err := app.Sales.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(sales) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sales recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSales(sales, app.Location))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum sales to show, 0 for all")

	return cmd
}
