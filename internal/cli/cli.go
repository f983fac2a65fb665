package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/arloliu/tilestat/errs"
	"github.com/arloliu/tilestat/format"
	"github.com/arloliu/tilestat/internal/app"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

func usageError(msg string) *ExitError {
	return &ExitError{Code: ExitUsage, Message: msg}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("tilestat", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tilestat - per-tile brightness and variance anomaly detection.

Usage:
  tilestat [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Optional configuration file (key = value lines, # comments).

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the configuration file.")
	outFlag := flagSet.String("out", app.DefaultOutPath, "Path of the JSON result dump.")
	reportFlag := flagSet.String("report", "", "Path of the binary result report. Empty disables it.")
	compressionFlag := flagSet.String("compression", "zstd", "Binary report compression. Options: 'none', 'zstd', 's2', 'lz4'.")
	heatmapFlag := flagSet.String("heatmap", "", "Path of the variance heatmap PNG. Empty disables it.")
	frameFlag := flagSet.String("frame", "", "Path of the frame PNG. Empty disables it.")
	fixedFlag := flagSet.Bool("fixed", false, "Use the unseeded fixed pattern.")
	seedFlag := flagSet.Uint64("seed", 0, "Frame seed; overrides the configuration file.")
	noBrightnessFlag := flagSet.Bool("no-brightness", false, "Disable the brightness threshold.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, usageError(err.Error())
	}

	seedSet := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedSet = true
		}
	})
	if *seedFlag > math.MaxUint32 {
		return nil, false, usageError(fmt.Sprintf("invalid seed %d: must fit in 32 bits", *seedFlag))
	}

	path := *configFlag
	if flagSet.NArg() > 1 {
		return nil, false, usageError("at most one configuration path may be given")
	}
	if path == "" && flagSet.NArg() == 1 {
		path = flagSet.Arg(0)
	}

	compression, err := format.ParseCompression(*compressionFlag)
	if err != nil {
		return nil, false, usageError(err.Error())
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:   path,
		OutPath:      *outFlag,
		ReportPath:   *reportFlag,
		HeatmapPath:  *heatmapFlag,
		FramePath:    *frameFlag,
		Compression:  compression,
		FixedPattern: *fixedFlag,
		Seed:         uint32(*seedFlag),
		SeedSet:      seedSet,
		NoBrightness: *noBrightnessFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, usageError(err.Error())
	}

	return cfg, false, nil
}

// Classify maps an application error to an ExitError: configuration
// problems exit with ExitUsage, everything else with ExitFailure.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if errors.Is(err, errs.ErrInvalidConfig) || errors.Is(err, errs.ErrConfigFile) {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	return &ExitError{Code: ExitFailure, Message: err.Error()}
}
