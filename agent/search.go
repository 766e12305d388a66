package agent

import (
	"connectrl/game"
	"connectrl/searcher"
)

// Minimax plays the move that is best against an optimal opponent.
type Minimax struct {
	*Base
	search *searcher.Minimax
}

func NewMinimax(env game.Environment, opts ...Option) *Minimax {
	s := newSettings(opts)
	return &Minimax{
		Base:   newBase(env, s),
		search: searcher.NewMinimax(s.mark, s.searchOpts...),
	}
}

func (m *Minimax) ChooseMove() game.Action {
	return m.search.FindMove(m.env)
}

func (m *Minimax) Searcher() searcher.Searcher {
	return m.search
}

// Expectiminimax plays the move that is best against a uniformly random opponent.
type Expectiminimax struct {
	*Base
	search *searcher.Expectiminimax
}

func NewExpectiminimax(env game.Environment, opts ...Option) *Expectiminimax {
	s := newSettings(opts)
	return &Expectiminimax{
		Base:   newBase(env, s),
		search: searcher.NewExpectiminimax(s.mark, s.searchOpts...),
	}
}

func (e *Expectiminimax) ChooseMove() game.Action {
	return e.search.FindMove(e.env)
}

func (e *Expectiminimax) Searcher() searcher.Searcher {
	return e.search
}
