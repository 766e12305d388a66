package engine

import (
	"context"
	"errors"
	"fmt"

	"connectrl/agent"
	"connectrl/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrInvalidTraining = errors.New("invalid training config")

type TrainConfig struct {
	Rules        game.Rules
	MaxSteps     int // Learner moves across all episodes
	Interval     int // Learner moves between evaluation batches
	EvalEpisodes int
	Rand         *rand.Rand
	Options      []agent.Option // Applied to the learner
}

func (c TrainConfig) validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTraining, err)
	}
	if c.MaxSteps <= 0 || c.Interval <= 0 || c.EvalEpisodes <= 0 {
		return fmt.Errorf("%w: steps=%d interval=%d episodes=%d must be positive",
			ErrInvalidTraining, c.MaxSteps, c.Interval, c.EvalEpisodes)
	}
	return nil
}

// Train runs Q-learning against a random opponent for cfg.MaxSteps learner moves. Every
// cfg.Interval moves, starting with the first, both the learner and the opponent are
// evaluated so their reward histories form a learning curve and its baseline.
func Train(ctx context.Context, cfg TrainConfig) (*agent.QLearning, *agent.Random, error) {
	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	env := game.NewConnect(cfg.Rules)
	opponent := agent.NewRandom(env, agent.WithRand(rng))
	learner := agent.NewQLearning(env, append([]agent.Option{agent.WithRand(rng)}, cfg.Options...)...)

	steps := 0
	onStep := func(t Transition) bool {
		learner.Learn(t.Prior, t.Action, t.Reward, t.Next)
		if steps%cfg.Interval == 0 {
			reward := Evaluate(learner, cfg.EvalEpisodes, cfg.Rules, rng)
			baseline := Evaluate(opponent, cfg.EvalEpisodes, cfg.Rules, rng)
			log.Debug().
				Int("step", steps).
				Float64("reward", reward).
				Float64("baseline", baseline).
				Int("entries", learner.Table().Len()).
				Msg("evaluation batch")
		}
		steps++
		return steps < cfg.MaxSteps && ctx.Err() == nil
	}

	for steps < cfg.MaxSteps {
		if err := ctx.Err(); err != nil {
			return learner, opponent, fmt.Errorf("training stopped after %d steps: %w", steps, err)
		}
		RunEpisode(env, learner, opponent, onStep)
	}
	return learner, opponent, nil
}

// Batches is the number of evaluation batches a training run of maxSteps produces.
func Batches(maxSteps, interval int) int {
	return (maxSteps + interval - 1) / interval
}
