package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/procmon/internal/config"
	"codeberg.org/mutker/procmon/internal/errors"
	"codeberg.org/mutker/procmon/internal/logger"
	"github.com/spf13/pflag"
)

const usage = `Usage: procmon [flags] [command] [args]

Commands:
  serve                   Run the HTTP API (default)
  sampling                Print the sampling grid for --window
  series                  Print a synthesized series for --window and --seed
  evaluate <id> <value>   Evaluate a reading against a parameter's bands
  dashboard               Print the dashboard view
  parameters              Print the parameter catalog

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(stdout, usage+config.Usage())
			return 0
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse log level: %v\n", err)
		return 1
	}
	logger.Init(level, logger.IsService())
	logger.Debug().Str("config_file", cfg.ConfigFile).Msg("Config loaded")

	a, err := newApp(cfg)
	if err != nil {
		logError(err, "Failed to initialize application")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := a.run(ctx, cfg.Args, stdout); err != nil {
		logError(err, "Command failed")
		return 1
	}

	return 0
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func logError(err error, msg string) {
	var coded errors.Error
	if errors.As(err, &coded) {
		logger.ErrorWithCode(coded).Msg(msg)
		return
	}
	logger.Error().Err(err).Msg(msg)
}
