package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/shiftclock/internal/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the announcement dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", app.Config.Addr, "Listen address")

	return cmd
}

// serve blocks until ctx ends or the listener fails, then drains in-flight
// requests and stops the dispatcher.
func serve(ctx context.Context, app *App, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	logger := app.Logger

	srv := &http.Server{
		Addr: addr,
		Handler: httpapi.NewRouter(app.Services, httpapi.Options{
			AllowOrigins: app.Config.CORSOrigins,
			Logger:       logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	dispatchCtx, cancelDispatch := context.WithCancel(ctx)
	dispatchDone := make(chan error, 1)
	go func() { dispatchDone <- app.Dispatcher.Run(dispatchCtx) }()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http_listen", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("listening on %s: %w", addr, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("shutting down: %w", err)
	}
	cancelDispatch()
	if err := <-dispatchDone; err != nil && runErr == nil {
		runErr = err
	}
	logger.Info("http_stopped")
	return runErr
}
