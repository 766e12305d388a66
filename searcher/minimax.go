package searcher

import (
	"connectrl/experiments/metrics"
	"connectrl/game"
)

// Minimax searches to terminal states assuming both sides play optimally,
// with alpha-beta pruning over a transposition cache.
type Minimax struct {
	learner game.Mark
	table   *Table
	metrics metrics.Collector
}

func NewMinimax(learner game.Mark, opts ...Option) *Minimax {
	o := newOptions(opts)
	return &Minimax{
		learner: learner,
		table:   o.table,
		metrics: o.metrics,
	}
}

func (m *Minimax) Table() *Table {
	return m.table
}

func (m *Minimax) Metrics() metrics.SearchMetric {
	return m.metrics.Complete(m.table.Len())
}

func (m *Minimax) Value(state game.Environment) float64 {
	root := state.Copy()
	root.ChangeTurn() // Player at turn becomes the side that just moved
	return m.Search(root, Loss, Win, root.Player() != m.learner)
}

func (m *Minimax) FindMove(state game.Environment) game.Action {
	return selectMove(state, m.learner, m)
}

// Search returns the value of node, whose player at turn has just moved. maximizing
// reports whether the learner moves next. Search takes ownership of node.
func (m *Minimax) Search(node game.Environment, alpha, beta float64, maximizing bool) float64 {
	key := node.Key()
	if entry, reserved := m.table.Reserve(key); !reserved {
		if value, ok := entry.Cutoff(alpha, beta); ok {
			m.metrics.AddCacheHit()
			return value
		}
		// Stored bound does not settle this window, search again
		m.table.Put(key, placeholder)
	}
	m.metrics.AddExpansion()

	if value, ok := terminal(node, maximizing); ok {
		m.table.Put(key, Entry{Value: value, Bound: Exact})
		return value
	}

	node.ChangeTurn()
	window := [2]float64{alpha, beta}
	var best float64
	if maximizing {
		best = Loss
		for _, action := range node.LegalActions() {
			best = max(best, m.Search(child(node, action), alpha, beta, false))
			alpha = max(alpha, best)
			if beta <= alpha {
				m.metrics.AddPrune()
				break
			}
		}
	} else {
		best = Win
		for _, action := range node.LegalActions() {
			best = min(best, m.Search(child(node, action), alpha, beta, true))
			beta = min(beta, best)
			if beta <= alpha {
				m.metrics.AddPrune()
				break
			}
		}
	}

	m.table.Put(key, bounded(best, window[0], window[1]))
	return best
}

// exact returns the finished value of a node the learner has just moved into.
func (m *Minimax) exact(node game.Environment) float64 {
	if value, ok := m.table.Exact(node.Key()); ok {
		m.metrics.AddCacheHit()
		return value
	}
	return m.Search(node, Loss, Win, false)
}
