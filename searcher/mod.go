package searcher

import (
	"fmt"

	"connectrl/experiments/metrics"
	"connectrl/game"
)

// Values are always from the learner's perspective
const (
	Win  = 1.0
	Loss = -Win
	Draw = 0.0
)

type Searcher interface {
	// Value returns the game value of state, whose player at turn moves next
	Value(state game.Environment) float64
	// FindMove returns the learner's best action from state
	FindMove(state game.Environment) game.Action
	Metrics() metrics.SearchMetric
}

type Option func(o *options)

type options struct {
	table   *Table
	metrics metrics.Collector
}

// WithTable shares an existing cache instead of allocating a new one.
func WithTable(table *Table) Option {
	return func(o *options) {
		if table != nil {
			o.table = table
		}
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

func newOptions(opts []Option) options {
	o := options{ // Default values
		table:   NewTable(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// terminal scores a node whose player at turn has just moved.
// maximizing reports whether the learner moves next, so a win on the board belongs to the minimizer.
func terminal(node game.Environment, maximizing bool) (float64, bool) {
	if node.WasWinningMove() {
		if maximizing {
			return Loss, true
		}
		return Win, true
	}
	if node.IsFull() {
		return Draw, true
	}
	return 0, false
}

// child copies node and plays action for the player at turn.
func child(node game.Environment, action game.Action) game.Environment {
	c := node.Copy()
	if err := c.Act(action); err != nil {
		panic(fmt.Sprintf("legal action %d rejected: %v", action, err))
	}
	return c
}
