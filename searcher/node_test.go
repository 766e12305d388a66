package searcher

import (
	"testing"

	"connectrl/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

// smallGravityRules keeps the gravity variant exhaustively searchable in tests
var smallGravityRules = game.Rules{Rows: 3, Cols: 4, Connect: 3, Gravity: true}

// play returns a board after the given actions, handing the turn over after each one
// like the episode loop does. Nought moves first.
func play(t *testing.T, rules game.Rules, actions ...game.Action) *game.Connect {
	t.Helper()
	env := game.NewConnect(rules)
	for _, a := range actions {
		require.NoError(t, env.Act(a))
		env.ChangeTurn()
	}
	return env
}

// next plays action and hands the turn over.
func next(s game.Environment, action game.Action) game.Environment {
	c := s.Copy()
	if err := c.Act(action); err != nil {
		panic(err)
	}
	c.ChangeTurn()
	return c
}

// reachable lists every distinct state reachable from root, terminal states included.
func reachable(root game.Environment) []game.Environment {
	seen := make(map[game.Key]bool)
	var states []game.Environment
	var walk func(s game.Environment)
	walk = func(s game.Environment) {
		if seen[s.Key()] {
			return
		}
		seen[s.Key()] = true
		states = append(states, s)
		if game.IsTerminal(s) {
			return
		}
		for _, a := range s.LegalActions() {
			walk(next(s, a))
		}
	}
	walk(root.Copy())
	return states
}

// reference is unpruned minimax (or expectiminimax) used as ground truth. It values
// states whose player at turn moves next.
type reference struct {
	learner game.Mark
	expect  bool
	memo    map[game.Key]float64
}

func newReference(learner game.Mark, expect bool) *reference {
	return &reference{learner: learner, expect: expect, memo: make(map[game.Key]float64)}
}

func (r *reference) value(s game.Environment) float64 {
	if v, ok := r.memo[s.Key()]; ok {
		return v
	}
	var v float64
	switch {
	case s.WasWinningMove():
		v = Loss
		if s.Player().Opponent() == r.learner {
			v = Win
		}
	case s.IsFull():
		v = Draw
	default:
		values := []float64{}
		for _, a := range s.LegalActions() {
			values = append(values, r.value(next(s, a)))
		}
		switch {
		case s.Player() == r.learner:
			v = slices.Max(values)
		case r.expect:
			v = stat.Mean(values, nil)
		default:
			v = slices.Min(values)
		}
	}
	r.memo[s.Key()] = v
	return v
}
