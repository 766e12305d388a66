package searcher

import (
	"connectrl/experiments/metrics"
	"connectrl/game"
)

// Expectiminimax searches to terminal states assuming the learner plays optimally
// and the opponent picks uniformly at random among its legal actions.
type Expectiminimax struct {
	learner game.Mark
	table   *Table
	metrics metrics.Collector
}

func NewExpectiminimax(learner game.Mark, opts ...Option) *Expectiminimax {
	o := newOptions(opts)
	return &Expectiminimax{
		learner: learner,
		table:   o.table,
		metrics: o.metrics,
	}
}

func (e *Expectiminimax) Table() *Table {
	return e.table
}

func (e *Expectiminimax) Metrics() metrics.SearchMetric {
	return e.metrics.Complete(e.table.Len())
}

func (e *Expectiminimax) Value(state game.Environment) float64 {
	root := state.Copy()
	root.ChangeTurn()
	return e.Search(root, root.Player() != e.learner)
}

func (e *Expectiminimax) FindMove(state game.Environment) game.Action {
	return selectMove(state, e.learner, e)
}

// Search returns the expected value of node, whose player at turn has just moved.
// Chance nodes average their children uniformly and are never pruned.
func (e *Expectiminimax) Search(node game.Environment, maximizing bool) float64 {
	key := node.Key()
	if entry, reserved := e.table.Reserve(key); !reserved {
		e.metrics.AddCacheHit()
		return entry.Value
	}
	e.metrics.AddExpansion()

	if value, ok := terminal(node, maximizing); ok {
		e.table.Put(key, Entry{Value: value, Bound: Exact})
		return value
	}

	node.ChangeTurn()
	actions := node.LegalActions()
	var value float64
	if maximizing {
		value = Loss
		for _, action := range actions {
			value = max(value, e.Search(child(node, action), false))
		}
	} else {
		sum, lo, hi := 0.0, Win, Loss
		for _, action := range actions {
			v := e.Search(child(node, action), true)
			sum += v
			lo, hi = min(lo, v), max(hi, v)
		}
		// Rounding must not push the mean outside its children
		value = min(max(sum/float64(len(actions)), lo), hi)
	}

	e.table.Put(key, Entry{Value: value, Bound: Exact})
	return value
}

func (e *Expectiminimax) exact(node game.Environment) float64 {
	if value, ok := e.table.Exact(node.Key()); ok {
		e.metrics.AddCacheHit()
		return value
	}
	return e.Search(node, false)
}
