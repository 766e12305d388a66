package experiments

import (
	"context"
	"fmt"

	"connectrl/agent"
	"connectrl/engine"
	"connectrl/game"
	"connectrl/meta"
	"connectrl/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RunComparisonExperiment compares the Q-learning curve and its baseline against the
// minimax and expectiminimax agents evaluated on the same schedule.
func RunComparisonExperiment(ctx context.Context, cfg meta.Config) (Result, error) {
	cfg.Experiment = meta.Comparison
	names := []string{QAgent, MinimaxAgent, ExpectiAgent, RandomBaseline}
	return runExperiment(ctx, cfg, names, func(ctx context.Context, rng *rand.Rand) ([][]float64, error) {
		learner, baseline, err := engine.Train(ctx, trainConfig(cfg, rng))
		if err != nil {
			return nil, err
		}

		m := agent.NewMinimax(game.NewConnect(cfg.Rules), agent.WithRand(rng), agent.WithSearchOptions(searcher.WithMetrics()))
		e := agent.NewExpectiminimax(game.NewConnect(cfg.Rules), agent.WithRand(rng), agent.WithSearchOptions(searcher.WithMetrics()))
		for i := 0; i < engine.Batches(cfg.MaxSteps, cfg.Interval); i++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("search evaluation stopped after %d batches: %w", i, err)
			}
			engine.Evaluate(m, cfg.EvalEpisodes, cfg.Rules, rng)
			engine.Evaluate(e, cfg.EvalEpisodes, cfg.Rules, rng)
		}

		searchers := []searcher.Searcher{m.Searcher(), e.Searcher()}
		for i, name := range []string{MinimaxAgent, ExpectiAgent} {
			metric := searchers[i].Metrics()
			log.Debug().
				Str("agent", name).
				Int("expansions", metric.Expansions).
				Int("cacheHits", metric.CacheHits).
				Int("prunes", metric.Prunes).
				Int("cacheSize", metric.CacheSize).
				Msg("search metrics")
		}

		return [][]float64{learner.Rewards(), m.Rewards(), e.Rewards(), baseline.Rewards()}, nil
	})
}
