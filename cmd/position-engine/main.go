// position-engine scores chess positions, plays moves on them and serves
// both over HTTP.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/position-engine-go/internal/config"
	"github.com/lgbarn/position-engine-go/internal/errors"
	"github.com/lgbarn/position-engine-go/internal/service"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("position-engine version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("position-engine failed")
		stop()
		os.Exit(1)
	}
}

// run dispatches to the selected mode.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	o, err := cfg.NewOracle()
	if err != nil {
		return err
	}
	svc := service.New(o, cfg.Rules.EngineRules(), log, serviceOptions(cfg)...)

	switch {
	case *serveMode:
		return serve(ctx, cfg, log, svc)
	case *batchMode && *sequencesMode:
		return runSequenceBatch(ctx, cfg, svc, *positionText, os.Stdin, cfg.OutputFile)
	case *batchMode:
		return runBatch(ctx, cfg, svc, os.Stdin, cfg.OutputFile)
	case *movesText != "":
		return runSequence(ctx, svc, *positionText, *movesText, cfg.OutputFile)
	default:
		return runSingle(ctx, svc, *positionText, *moveText, cfg.OutputFile)
	}
}

func serviceOptions(cfg *config.Config) []service.Option {
	var opts []service.Option
	if capacity, enabled := cfg.Batch.CacheCapacity(); enabled {
		opts = append(opts, service.WithCache(capacity))
	}
	return opts
}

// runSingle evaluates one position, or plays one move on it when move is set.
func runSingle(ctx context.Context, svc *service.Service, position, move string, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if move == "" {
		ev, err := svc.Evaluate(ctx, position)
		if err != nil {
			return err
		}
		return enc.Encode(ev)
	}

	if len(move) != 4 {
		return errors.Wrapf(errors.ErrInvalidSquare, "move %q must be two squares", move)
	}
	res, err := svc.Play(ctx, position, move[:2], move[2:])
	if err != nil {
		return err
	}
	return enc.Encode(res)
}

// runSequence replays space-separated moves from position.
func runSequence(ctx context.Context, svc *service.Service, position, moves string, w io.Writer) error {
	res, err := svc.PlaySequence(ctx, position, strings.Fields(moves))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// newLogger builds the process logger from the log configuration.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := cfg.Log.ZerologLevel()
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := cfg.LogFile
	if !cfg.Log.JSON {
		out = zerolog.ConsoleWriter{
			Out:        cfg.LogFile,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.LogFile != os.Stderr,
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLogOutput(file)
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: position-engine [options]\n\n")
	fmt.Fprintf(os.Stderr, "Scores chess positions and plays moves on them.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes:\n")
	fmt.Fprintf(os.Stderr, "  (default)  Evaluate -position, or play -move or -moves on it\n")
	fmt.Fprintf(os.Stderr, "  -batch     Read positions from stdin, write JSON lines\n")
	fmt.Fprintf(os.Stderr, "  -batch -sequences\n")
	fmt.Fprintf(os.Stderr, "             Read move lists from stdin, replay each from -position\n")
	fmt.Fprintf(os.Stderr, "  -serve     Serve the HTTP API on -addr\n")
}
