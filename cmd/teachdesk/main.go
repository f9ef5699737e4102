package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alexanderramin/teachdesk/internal/cli"
	"github.com/alexanderramin/teachdesk/internal/config"
	"github.com/alexanderramin/teachdesk/internal/drive"
	"github.com/alexanderramin/teachdesk/internal/logging"
	"github.com/alexanderramin/teachdesk/internal/store"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
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
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
		_ = closeLog()
	}()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	// Detect interactive terminal for confirmations and the default shell.
	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	st := newStore(logger, now)

	driveClient := drive.New(cfg.Drive,
		drive.WithLogger(logger),
		drive.WithAuthorizer(cli.NewAuthorizer(interactive, os.Stdin, os.Stderr)),
	)
	if !cfg.Drive.Live() {
		logger.Debug("drive credentials not set, using demo data")
	}

	app := &cli.App{
		Store:         st,
		Drive:         driveClient,
		Logger:        logger,
		Loc:           loc,
		Now:           now,
		IsInteractive: interactive,
		HistoryPath:   cfg.HistoryPath,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Debug("starting", zap.String("timezone", loc.String()))
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// newStore builds the session store. The observer names its own logger.
func newStore(logger *zap.Logger, now func() time.Time) *store.Store {
	return store.New(
		store.WithClock(now),
		store.WithObserver(store.NewLogObserver(logger)),
	)
}
