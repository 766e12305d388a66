package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"connectrl/experiments"
	"connectrl/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("experiment failed")
		os.Exit(1)
	}
}

// run parses args, loads the config and runs the selected experiment.
func run(ctx context.Context, args []string, output io.Writer) error {
	flags := flag.NewFlagSet("connectrl", flag.ContinueOnError)
	flags.SetOutput(output)
	configPath := flags.String("config", "", "Path to a YAML experiment config")
	experiment := flags.String("experiment", meta.Learning, "Experiment to run: learning or comparison")
	runs := flags.Int("runs", meta.RUNS, "Number of independent runs to average")
	steps := flags.Int("steps", meta.MAX_STEPS, "Learner moves per training run")
	interval := flags.Int("interval", meta.INTERVAL, "Learner moves between evaluation batches")
	episodes := flags.Int("episodes", meta.EVAL_EPISODES, "Episodes per evaluation batch")
	workers := flags.Int("workers", meta.WORKERS, "Number of runs executed concurrently")
	seed := flags.Uint64("seed", 1, "Seed of the first run")
	out := flags.String("out", meta.OUT_DIR, "Directory results are written to")
	symmetric := flags.Bool("symmetric", false, "Fold mirrored transitions into each Q-learning update")
	logLevel := flags.String("log-level", "info", "Log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	cfg, err := meta.Load(*configPath)
	if err != nil {
		return err
	}

	// Explicit flags take precedence over the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "experiment":
			cfg.Experiment = *experiment
		case "runs":
			cfg.Runs = *runs
		case "steps":
			cfg.MaxSteps = *steps
		case "interval":
			cfg.Interval = *interval
		case "episodes":
			cfg.EvalEpisodes = *episodes
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.OutDir = *out
		case "symmetric":
			cfg.Agent.Symmetric = *symmetric
		}
	})

	result, err := experiments.Run(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().Str("dir", result.Dir).Msg("done")
	return nil
}
