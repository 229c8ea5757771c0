package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/alexanderramin/shiftclock/internal/cli"
	"github.com/alexanderramin/shiftclock/internal/config"
	"github.com/alexanderramin/shiftclock/internal/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	services, err := app.New(database, cfg, logger)
	if err != nil {
		return err
	}

	// First run installs the stock accounts and catalogs.
	if _, err := services.Seed.Seed(context.Background()); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	a := &cli.App{
		Services:      services,
		Config:        cfg,
		Logger:        logger,
		IsInteractive: cli.StdinIsTerminal,
		ReadPassword:  cli.PromptPassword,
	}
	return cli.NewRootCmd(a).Execute()
}
