package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/shiftclock/internal/cli/formatter"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/importer"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/spf13/cobra"
)

func newProductCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Storefront catalogs",
	}

	cmd.AddCommand(
		newProductListCmd(app),
		newProductResetCmd(app),
		newProductImportCmd(app),
	)

	return cmd
}

func newProductListCmd(app *App) *cobra.Command {
	var locale localeFlag

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the catalog of one storefront, or both",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			locales := domain.Locales
			if locale.value != "" {
				locales = []domain.Locale{locale.value}
			}
			for _, l := range locales {
				products, err := app.Catalog.List(ctx, l)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProducts(l, products))
			}
			return nil
		},
	}
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")

	return cmd
}

func newProductResetCmd(app *App) *cobra.Command {
	var locale localeFlag

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the stock catalog of a storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			products := service.DefaultCatalog(locale.value)
			if err := app.Catalog.Replace(context.Background(), locale.value, products); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s for %s\n",
				formatter.Count(len(products), "product", "products"), locale.value.ShopName())
			return nil
		},
	}
	cmd.Flags().VarP(&locale, "locale", "l", "Storefront (yummy, uwu)")
	_ = cmd.MarkFlagRequired("locale")

	return cmd
}

// newProductImportCmd replaces a storefront's catalog from a JSON or YAML
// file. The locale comes from the file.
func newProductImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace a catalog from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadCatalogSchema(args[0])
			if err != nil {
				return err
			}
			locale, products, err := importer.ConvertCatalog(schema)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, formatter.FormatProducts(locale, products))
				fmt.Fprintln(out, formatter.Dim("dry run, nothing saved"))
				return nil
			}
			if err := app.Catalog.Replace(context.Background(), locale, products); err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %s for %s\n",
				formatter.Count(len(products), "product", "products"), locale.ShopName())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and show the catalog without saving")

	return cmd
}
