package experiments

import (
	"context"
	"fmt"
	"time"

	"connectrl/agent"
	"connectrl/engine"
	"connectrl/experiments/metrics"
	"connectrl/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Curve names, in the order they are written
const (
	QAgent         = "q"
	MinimaxAgent   = "minimax"
	ExpectiAgent   = "expectiminimax"
	RandomBaseline = "random"
)

type Result struct {
	Dir    string
	Curves []metrics.Curve
}

// runFunc performs one independent run and returns a reward history per curve.
type runFunc func(ctx context.Context, rng *rand.Rand) ([][]float64, error)

// Run dispatches to the experiment named in cfg.
func Run(ctx context.Context, cfg meta.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	switch cfg.Experiment {
	case meta.Comparison:
		return RunComparisonExperiment(ctx, cfg)
	default:
		return RunLearningExperiment(ctx, cfg)
	}
}

func runExperiment(ctx context.Context, cfg meta.Config, names []string, run runFunc) (Result, error) {
	log.Info().Msgf("starting %s experiment with %d runs...", cfg.Experiment, cfg.Runs)
	start := time.Now()

	curves, err := runAll(ctx, cfg, names, run)
	if err != nil {
		return Result{}, fmt.Errorf("%s experiment failed: %w", cfg.Experiment, err)
	}
	end := time.Now()
	log.Info().Msgf("completed %s experiment in %s", cfg.Experiment, end.Sub(start))

	// Store experiment metadata and results
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Experiment)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(cfg, start, end); err != nil {
		return Result{}, fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteCurves(cfg.Interval, curves); err != nil {
		return Result{}, fmt.Errorf("failed to store curves: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored results")

	for _, c := range curves {
		s := c.Summarize()
		log.Info().
			Str("agent", s.Name).
			Float64("final", s.Final).
			Float64("max", s.Max).
			Float64("mean", s.Mean).
			Msg("curve summary")
	}

	return Result{Dir: writer.Dir(), Curves: curves}, nil
}

// runAll executes cfg.Runs independent runs on at most cfg.Workers goroutines. Run i is
// seeded with cfg.Seed+i and shares no state with the others.
func runAll(ctx context.Context, cfg meta.Config, names []string, run runFunc) ([]metrics.Curve, error) {
	results := make([][][]float64, cfg.Runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Runs; i++ {
		i := i
		g.Go(func() error {
			log.Info().Msgf("starting run %d of %d...", i+1, cfg.Runs)
			rng := rand.New(rand.NewSource(cfg.Seed + uint64(i)))
			histories, err := run(ctx, rng)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			if len(histories) != len(names) {
				return fmt.Errorf("run %d returned %d histories, expected %d", i+1, len(histories), len(names))
			}
			results[i] = histories
			log.Info().Msgf("completed run %d of %d", i+1, cfg.Runs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	curves := make([]metrics.Curve, 0, len(names))
	for c, name := range names {
		runs := make([][]float64, cfg.Runs)
		for i := range results {
			runs[i] = results[i][c]
		}
		curves = append(curves, metrics.Average(name, runs))
	}
	return curves, nil
}

func trainConfig(cfg meta.Config, rng *rand.Rand) engine.TrainConfig {
	opts := []agent.Option{
		agent.WithAlpha(cfg.Agent.Alpha),
		agent.WithEpsilon(cfg.Agent.Epsilon),
		agent.WithGamma(cfg.Agent.Gamma),
	}
	if cfg.Agent.Symmetric {
		opts = append(opts, agent.WithSymmetry())
	}
	return engine.TrainConfig{
		Rules:        cfg.Rules,
		MaxSteps:     cfg.MaxSteps,
		Interval:     cfg.Interval,
		EvalEpisodes: cfg.EvalEpisodes,
		Rand:         rng,
		Options:      opts,
	}
}
