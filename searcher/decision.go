package searcher

import (
	"fmt"
	"math"

	"connectrl/experiments/metrics"
	"connectrl/game"
)

type engine interface {
	Value(state game.Environment) float64
	exact(node game.Environment) float64
	collector() metrics.Collector
}

func (m *Minimax) collector() metrics.Collector        { return m.metrics }
func (e *Expectiminimax) collector() metrics.Collector { return e.metrics }

// selectMove scans the learner's actions in enumeration order and keeps the first one
// reaching the strictly highest child value, stopping at the first guaranteed win.
// Calling it on a finished game is a precondition violation.
func selectMove(state game.Environment, learner game.Mark, e engine) game.Action {
	root := state.Copy()
	if root.Player() != learner {
		root.ChangeTurn()
	}
	if root.WasWinningMove() {
		panic(fmt.Sprintf("cannot select a move: game already won\n%v", root))
	}
	actions := root.LegalActions()
	if len(actions) == 0 {
		panic("cannot select a move: no legal actions")
	}

	e.Value(root)

	best := actions[0]
	bestValue := math.Inf(-1)
	for _, action := range actions {
		e.collector().AddScan()
		value := e.exact(child(root, action))
		if value > bestValue {
			best, bestValue = action, value
			if value >= Win {
				break
			}
		}
	}
	return best
}
