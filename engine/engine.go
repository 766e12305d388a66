package engine

import "connectrl/game"

// Rewards observed by the learner after each of its moves
const (
	WinReward  = 1.0
	LossReward = -1.0
	DrawReward = 0.0
)

// Transition is one learner step: the state it moved from, its action, the reward
// observed after the opponent's reply and the state that reply produced.
type Transition struct {
	Prior  game.Environment
	Action game.Action
	Reward float64
	Next   game.Environment
}

// StepFunc receives every transition of an episode. Returning false stops the episode.
type StepFunc func(t Transition) bool
