package agent

import (
	"connectrl/game"
)

// QLearning is a tabular epsilon-greedy learner. With symmetry enabled every update is
// also applied to the mirrored transition.
type QLearning struct {
	*Base
	gamma     float64
	symmetric bool
	table     *QTable
}

func NewQLearning(env game.Environment, opts ...Option) *QLearning {
	s := newSettings(opts)
	return &QLearning{
		Base:      newBase(env, s),
		gamma:     s.gamma,
		symmetric: s.symmetric,
		table:     NewQTable(),
	}
}

func (q *QLearning) Table() *QTable {
	return q.table
}

func (q *QLearning) Gamma() float64 {
	return q.gamma
}

func (q *QLearning) Symmetric() bool {
	return q.symmetric
}

// ChooseMove explores with probability epsilon, otherwise takes an action of maximal
// estimate, breaking ties uniformly at random.
func (q *QLearning) ChooseMove() game.Action {
	key := q.env.Key()
	actions := q.env.LegalActions()
	if len(actions) == 0 {
		panic("cannot choose a move: no legal actions")
	}

	if q.rng.Float64() < q.epsilon {
		a := actions[q.rng.Intn(len(actions))]
		q.table.GetOrInit(key, a)
		if q.symmetric {
			q.table.GetOrInit(q.env.Mirror().Key(), q.env.MirrorAction(a))
		}
		return a
	}

	best := q.table.Max(key, actions)
	candidates := make([]game.Action, 0, len(actions))
	for _, a := range actions {
		if q.table.GetOrInit(key, a) == best {
			candidates = append(candidates, a)
		}
	}
	return candidates[q.rng.Intn(len(candidates))]
}

// Learn applies Q(s,a) += alpha * (reward + gamma * max Q(s',·) - Q(s,a)), where the
// bootstrap term is 0 when next is terminal.
func (q *QLearning) Learn(prior game.Environment, action game.Action, reward float64, next game.Environment) {
	key := prior.Key()
	q.update(key, action, reward, q.factor(next))
	if !q.symmetric {
		return
	}

	mirrored, mirroredAction := prior.Mirror().Key(), prior.MirrorAction(action)
	if mirrored == key && mirroredAction == action {
		return
	}
	q.update(mirrored, mirroredAction, reward, q.factor(next.Mirror()))
}

func (q *QLearning) update(key game.Key, action game.Action, reward, factor float64) {
	current := q.table.GetOrInit(key, action)
	q.table.Add(key, action, q.alpha*(reward+factor-current))
}

// factor initializes the entries of next and returns its discounted best estimate.
func (q *QLearning) factor(next game.Environment) float64 {
	key := next.Key()
	actions := next.LegalActions()
	for _, a := range actions {
		q.table.GetOrInit(key, a)
	}
	if game.IsTerminal(next) || len(actions) == 0 {
		return 0
	}
	return q.gamma * q.table.Max(key, actions)
}
