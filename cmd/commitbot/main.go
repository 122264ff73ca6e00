package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"

	"github.com/bashhack/commitbot/internal/config"
	"github.com/bashhack/commitbot/internal/errors"
)

var revision = "unknown"

func main() {
	var opts config.Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}

	app := NewApp(AppOptions{Options: &opts, Revision: revision})

	if opts.Version {
		app.ShowVersion()
		os.Exit(0)
	}

	if err := app.Initialize(); err != nil {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		app.exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		sig := <-sigChan
		app.Logger.Info("received signal %v, stopping", sig)
		cancel()
	}()

	err := app.Run(ctx)
	cancel()
	closeErr := app.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(app.Stderr, "❌ Error: %v\n", err)
		app.exit(1)
	}
	if closeErr != nil {
		app.exit(1)
	}
}
