package agent

import "connectrl/game"

// Random picks uniformly among legal actions. It is the fixed opponent and the baseline.
type Random struct {
	*Base
}

func NewRandom(env game.Environment, opts ...Option) *Random {
	return &Random{Base: newBase(env, newSettings(opts))}
}

func (r *Random) ChooseMove() game.Action {
	return r.randomMove()
}
