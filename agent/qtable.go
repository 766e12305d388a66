package agent

import "connectrl/game"

type StateAction struct {
	State  game.Key
	Action game.Action
}

// QTable maps state-action pairs to value estimates. Entries are created with value 0
// the first time they are mentioned and never deleted.
type QTable struct {
	values map[StateAction]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[StateAction]float64)}
}

// GetOrInit returns the estimate for (state, action), inserting 0 if absent.
func (t *QTable) GetOrInit(state game.Key, action game.Action) float64 {
	sa := StateAction{State: state, Action: action}
	v, ok := t.values[sa]
	if !ok {
		t.values[sa] = 0
	}
	return v
}

// Add shifts the estimate for (state, action) by delta.
func (t *QTable) Add(state game.Key, action game.Action, delta float64) {
	t.GetOrInit(state, action)
	t.values[StateAction{State: state, Action: action}] += delta
}

// Max initializes every listed action of state and returns the highest estimate.
func (t *QTable) Max(state game.Key, actions []game.Action) float64 {
	if len(actions) == 0 {
		panic("cannot take the max over no actions")
	}
	best := t.GetOrInit(state, actions[0])
	for _, a := range actions[1:] {
		best = max(best, t.GetOrInit(state, a))
	}
	return best
}

// Lookup reads an estimate without inserting it.
func (t *QTable) Lookup(state game.Key, action game.Action) (float64, bool) {
	v, ok := t.values[StateAction{State: state, Action: action}]
	return v, ok
}

func (t *QTable) Len() int {
	return len(t.values)
}
