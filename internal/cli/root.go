package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/config"
	"github.com/spf13/cobra"
)

// App holds the wired services plus the process-level settings commands
// need.
type App struct {
	*app.Services

	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Prompts are only
	// shown when it returns true.
	IsInteractive func() bool
	// ReadPassword asks for a password interactively.
	ReadPassword func(title string) (string, error)

	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "shiftclock" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "shiftclock",
		Short:         "Time clock and point of sale for the Yummy and UwU storefronts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newClockCmd(app),
		newShiftCmd(app),
		newLogCmd(app),
		newSaleCmd(app),
		newProductCmd(app),
		newUserCmd(app),
		newNotifyCmd(app),
		newServeCmd(app),
	)

	return root
}
