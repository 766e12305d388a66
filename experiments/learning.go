package experiments

import (
	"context"

	"connectrl/engine"
	"connectrl/meta"

	"golang.org/x/exp/rand"
)

// RunLearningExperiment averages the learning curve of the Q-learning agent and its
// random baseline over independent training runs.
func RunLearningExperiment(ctx context.Context, cfg meta.Config) (Result, error) {
	cfg.Experiment = meta.Learning
	return runExperiment(ctx, cfg, []string{QAgent, RandomBaseline}, func(ctx context.Context, rng *rand.Rand) ([][]float64, error) {
		learner, baseline, err := engine.Train(ctx, trainConfig(cfg, rng))
		if err != nil {
			return nil, err
		}
		return [][]float64{learner.Rewards(), baseline.Rewards()}, nil
	})
}
