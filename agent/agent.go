package agent

import (
	"time"

	"connectrl/game"
	"connectrl/searcher"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Default hyperparameters
const (
	DefaultAlpha   = 0.1
	DefaultEpsilon = 0.2
	DefaultGamma   = 1.0
)

type Agent interface {
	// ChooseMove returns an action for the player at turn in the agent's environment
	ChooseMove() game.Action
}

type Learner interface {
	Agent
	// Learn performs one temporal-difference update for a transition
	Learn(prior game.Environment, action game.Action, reward float64, next game.Environment)
}

// Evaluable exposes the transient fields an evaluation pass overrides, and the reward
// history it appends to.
type Evaluable interface {
	Agent
	Environment() game.Environment
	SetEnvironment(env game.Environment)
	Epsilon() float64
	SetEpsilon(epsilon float64)
	Rewards() []float64
	AppendReward(total float64)
}

type Option func(s *settings)

type settings struct {
	alpha      float64
	epsilon    float64
	gamma      float64
	symmetric  bool
	mark       game.Mark
	rng        *rand.Rand
	searchOpts []searcher.Option
}

func WithAlpha(alpha float64) Option {
	return func(s *settings) {
		s.alpha = alpha
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(s *settings) {
		s.epsilon = epsilon
	}
}

func WithGamma(gamma float64) Option {
	return func(s *settings) {
		s.gamma = gamma
	}
}

// WithSymmetry folds the left-right mirror of every transition into the same update.
func WithSymmetry() Option {
	return func(s *settings) {
		s.symmetric = true
	}
}

// WithMark sets the mark a search agent plays and values positions for.
func WithMark(mark game.Mark) Option {
	return func(s *settings) {
		s.mark = mark
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithSearchOptions(opts ...searcher.Option) Option {
	return func(s *settings) {
		s.searchOpts = append(s.searchOpts, opts...)
	}
}

func newSettings(opts []Option) settings {
	s := settings{ // Default values
		alpha:   DefaultAlpha,
		epsilon: DefaultEpsilon,
		gamma:   DefaultGamma,
		mark:    game.Cross,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return s
}

// Base holds the state every agent variant shares.
type Base struct {
	env     game.Environment
	alpha   float64
	epsilon float64
	rewards []float64
	rng     *rand.Rand
}

func newBase(env game.Environment, s settings) *Base {
	return &Base{
		env:     env,
		alpha:   s.alpha,
		epsilon: s.epsilon,
		rng:     s.rng,
	}
}

func (b *Base) Environment() game.Environment {
	return b.env
}

func (b *Base) SetEnvironment(env game.Environment) {
	b.env = env
}

func (b *Base) Epsilon() float64 {
	return b.epsilon
}

func (b *Base) SetEpsilon(epsilon float64) {
	b.epsilon = epsilon
}

func (b *Base) Alpha() float64 {
	return b.alpha
}

// Rewards returns the total reward of each evaluation batch, oldest first.
func (b *Base) Rewards() []float64 {
	return slices.Clone(b.rewards)
}

func (b *Base) AppendReward(total float64) {
	b.rewards = append(b.rewards, total)
}

func (b *Base) randomMove() game.Action {
	actions := b.env.LegalActions()
	if len(actions) == 0 {
		panic("cannot choose a move: no legal actions")
	}
	return actions[b.rng.Intn(len(actions))]
}
