package engine

import (
	"connectrl/agent"
	"connectrl/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Evaluate plays episodes greedy games of a against a random opponent on a fresh board,
// appends the summed reward to a's history and returns it. Exploration rate and
// environment are restored afterwards; learned values are left untouched.
func Evaluate(a agent.Evaluable, episodes int, rules game.Rules, rng *rand.Rand) float64 {
	if episodes <= 0 {
		panic("cannot evaluate over no episodes")
	}

	oldEpsilon, oldEnv := a.Epsilon(), a.Environment()
	defer func() {
		a.SetEpsilon(oldEpsilon)
		a.SetEnvironment(oldEnv)
	}()

	env := game.NewConnect(rules)
	a.SetEnvironment(env)
	a.SetEpsilon(0)
	opponent := agent.NewRandom(env, agent.WithRand(rng))

	total := 0.0
	for i := 0; i < episodes; i++ {
		total += RunEpisode(env, a, opponent, nil)
	}
	a.AppendReward(total)

	log.Debug().Int("episodes", episodes).Float64("reward", total).Msg("evaluated agent")
	return total
}
