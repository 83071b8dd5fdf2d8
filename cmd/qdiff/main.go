// Package main is the entry point for the qdiff CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/yaklabco/qdiff/internal/apperr"
	"github.com/yaklabco/qdiff/internal/cli"
	"github.com/yaklabco/qdiff/internal/logging"
)

// Build-time variables set via ldflags (see stavefile.go).
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// An interrupt is reported by the shell; no need to log it.
		if !errors.Is(err, context.Canceled) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return apperr.ExitCode(err)
	}

	return apperr.ExitSuccess
}
