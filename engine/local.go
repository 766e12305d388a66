package engine

import (
	"fmt"

	"connectrl/agent"
	"connectrl/game"
)

// RunEpisode resets env and plays one episode in which opponent moves first and learner
// replies. Both agents must choose their moves from env. It returns the reward of the
// last learner step.
func RunEpisode(env game.Environment, learner, opponent agent.Agent, onStep StepFunc) float64 {
	env.Reset(game.Nought)
	act(env, opponent.ChooseMove())

	reward := DrawReward
	for !game.IsTerminal(env) {
		env.ChangeTurn()
		prior := env.Copy()
		action := learner.ChooseMove()
		act(env, action)

		switch {
		case env.WasWinningMove():
			reward = WinReward
		case env.IsFull():
			reward = DrawReward
		default:
			env.ChangeTurn()
			act(env, opponent.ChooseMove())
			if env.WasWinningMove() {
				reward = LossReward
			} else {
				reward = DrawReward
			}
		}

		if onStep != nil && !onStep(Transition{Prior: prior, Action: action, Reward: reward, Next: env.Copy()}) {
			break
		}
	}
	return reward
}

func act(env game.Environment, action game.Action) {
	if err := env.Act(action); err != nil {
		panic(fmt.Sprintf("agent chose an illegal action: %v", err))
	}
}
