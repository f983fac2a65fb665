package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/tilestat/internal/app"
	"github.com/arloliu/tilestat/internal/cli"
)

// main is the entrypoint for the tilestat command.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		exitErr := cli.Classify(err)
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
}

// run parses args, runs one analysis, and writes console output to outW and
// logs to logW.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	return app.NewApp(outW, logW, appConfig).Run(context.Background())
}
