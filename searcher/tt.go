package searcher

import "connectrl/game"

type Bound uint8

const (
	// Pending marks a placeholder written before recursing into a node
	Pending Bound = iota
	Exact
	Lower // Search failed high; the true value is at least Value
	Upper // Search failed low; the true value is at most Value
)

type Entry struct {
	Value float64
	Bound Bound
}

var placeholder = Entry{Value: Draw, Bound: Pending}

// Cutoff returns the stored value if it settles a search with window [alpha, beta].
// A pending placeholder settles any window with its placeholder value.
func (e Entry) Cutoff(alpha, beta float64) (float64, bool) {
	switch e.Bound {
	case Exact, Pending:
		return e.Value, true
	case Lower:
		return e.Value, e.Value >= beta
	case Upper:
		return e.Value, e.Value <= alpha
	}
	return e.Value, false
}

// bounded classifies a fail-soft search result against the window it was searched with.
// The extremes are exact whatever the window.
func bounded(value, alpha, beta float64) Entry {
	switch {
	case value <= Loss || value >= Win:
		return Entry{Value: value, Bound: Exact}
	case value <= alpha:
		return Entry{Value: value, Bound: Upper}
	case value >= beta:
		return Entry{Value: value, Bound: Lower}
	}
	return Entry{Value: value, Bound: Exact}
}

// Table is a transposition cache keyed by grid content only.
// It is not safe for concurrent use.
type Table struct {
	entries map[game.Key]Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[game.Key]Entry)}
}

func (t *Table) Get(key game.Key) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Exact returns the value of a finished entry.
func (t *Table) Exact(key game.Key) (float64, bool) {
	e, ok := t.entries[key]
	if !ok || e.Bound != Exact {
		return 0, false
	}
	return e.Value, true
}

func (t *Table) Put(key game.Key, e Entry) {
	t.entries[key] = e
}

// Reserve writes a placeholder for key unless an entry exists, in which case the existing
// entry is returned with reserved == false.
func (t *Table) Reserve(key game.Key) (e Entry, reserved bool) {
	if e, ok := t.entries[key]; ok {
		return e, false
	}
	t.entries[key] = placeholder
	return placeholder, true
}

func (t *Table) Len() int {
	return len(t.entries)
}
