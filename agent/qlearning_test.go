package agent

import (
	"testing"

	"connectrl/game"

	"github.com/stretchr/testify/require"
)

func gravityBoard(t *testing.T, actions ...game.Action) *game.Connect {
	t.Helper()
	env := game.NewConnect(game.StandardRules())
	for _, a := range actions {
		require.NoError(t, env.Act(a))
		env.ChangeTurn()
	}
	return env
}

func after(t *testing.T, env game.Environment, a game.Action) game.Environment {
	t.Helper()
	next := env.Copy()
	require.NoError(t, next.Act(a))
	return next
}

func TestQLearningUpdate(t *testing.T) {
	t.Run("terminal transition ignores future values", func(t *testing.T) {
		// Nought holds columns 3 and 4 of the bottom row and is at turn
		prior := gravityBoard(t, 3, 0, 4, 1)
		next := after(t, prior, 2)
		require.True(t, next.WasWinningMove())

		q := NewQLearning(prior, WithSeed(1), WithAlpha(0.5))
		q.Table().Add(next.Key(), 0, 10)
		q.Learn(prior, 2, 1, next)

		v, ok := q.Table().Lookup(prior.Key(), 2)
		require.True(t, ok)
		require.Equal(t, 0.5, v, "Terminal update should only move toward the reward")
	})

	t.Run("non-terminal transition bootstraps from the best next action", func(t *testing.T) {
		prior := gravityBoard(t, 0)
		next := after(t, prior, 1)
		next.ChangeTurn()
		require.NoError(t, next.Act(2))

		q := NewQLearning(prior, WithSeed(1), WithAlpha(0.5), WithGamma(0.9))
		q.Table().Add(next.Key(), 3, 0.4)
		q.Learn(prior, 1, 0, next)

		v, _ := q.Table().Lookup(prior.Key(), 1)
		require.InDelta(t, 0.5*0.9*0.4, v, 1e-12)
	})

	t.Run("next state actions are initialized", func(t *testing.T) {
		prior := gravityBoard(t)
		next := after(t, prior, 0)

		q := NewQLearning(prior, WithSeed(1))
		q.Learn(prior, 0, 0, next)

		for _, a := range next.LegalActions() {
			_, ok := q.Table().Lookup(next.Key(), a)
			require.True(t, ok, "Action %d of the next state should be initialized", a)
		}
	})

	t.Run("repeated updates converge to the reward", func(t *testing.T) {
		prior := gravityBoard(t, 3, 0, 4, 1)
		next := after(t, prior, 2)

		q := NewQLearning(prior, WithSeed(1))
		for i := 0; i < 500; i++ {
			q.Learn(prior, 2, 1, next)
		}

		v, _ := q.Table().Lookup(prior.Key(), 2)
		require.InDelta(t, 1, v, 1e-6)
	})
}

func TestQLearningSymmetry(t *testing.T) {
	prior := gravityBoard(t, 0, 1)
	next := after(t, prior, 2)
	next.ChangeTurn()
	require.NoError(t, next.Act(4))

	q := NewQLearning(prior, WithSeed(1), WithSymmetry())
	q.Table().Add(next.Key(), 0, 0.3)
	q.Table().Add(next.Mirror().Key(), next.MirrorAction(0), 0.3)
	q.Learn(prior, 2, -1, next)

	v, ok := q.Table().Lookup(prior.Key(), 2)
	require.True(t, ok)
	mv, ok := q.Table().Lookup(prior.Mirror().Key(), prior.MirrorAction(2))
	require.True(t, ok, "Mirrored entry should be updated")
	require.Equal(t, v, mv)
	require.NotEqual(t, 0.0, v)

	t.Run("self-symmetric pair is updated once", func(t *testing.T) {
		empty := gravityBoard(t)
		center := game.Action(2)
		next := after(t, empty, center)
		require.Equal(t, empty.Key(), empty.Mirror().Key())
		require.Equal(t, center, empty.MirrorAction(center))

		q := NewQLearning(empty, WithSeed(1), WithSymmetry(), WithAlpha(0.5))
		q.Learn(empty, center, 1, next)

		v, _ := q.Table().Lookup(empty.Key(), center)
		require.Equal(t, 0.5, v, "A pair that is its own mirror should not be updated twice")
	})

	t.Run("table stays symmetric over training", func(t *testing.T) {
		env := game.NewConnect(game.StandardRules())
		q := NewQLearning(env, WithSeed(7), WithSymmetry(), WithEpsilon(0.5))
		opponent := NewRandom(env, WithSeed(8))

		for episode := 0; episode < 200; episode++ {
			env.Reset(game.Nought)
			require.NoError(t, env.Act(opponent.ChooseMove()))
			for !game.IsTerminal(env) {
				env.ChangeTurn()
				prior := env.Copy()
				a := q.ChooseMove()
				require.NoError(t, env.Act(a))
				reward := 0.0
				if env.WasWinningMove() {
					reward = 1
				} else if !env.IsFull() {
					env.ChangeTurn()
					require.NoError(t, env.Act(opponent.ChooseMove()))
					if env.WasWinningMove() {
						reward = -1
					}
				}
				q.Learn(prior, a, reward, env.Copy())

				v, _ := q.Table().Lookup(prior.Key(), a)
				mv, _ := q.Table().Lookup(prior.Mirror().Key(), prior.MirrorAction(a))
				require.Equal(t, v, mv, "Entries should match their mirror after every update")
			}
		}
	})
}

func TestQLearningChooseMove(t *testing.T) {
	t.Run("greedy never picks a worse action", func(t *testing.T) {
		env := gravityBoard(t, 0, 1)
		q := NewQLearning(env, WithSeed(3), WithEpsilon(0))
		q.Table().Add(env.Key(), 1, 0.2)
		q.Table().Add(env.Key(), 3, 0.7)
		q.Table().Add(env.Key(), 4, 0.7)
		q.Table().Add(env.Key(), 2, -0.5)

		seen := map[game.Action]int{}
		for i := 0; i < 200; i++ {
			seen[q.ChooseMove()]++
		}

		require.Len(t, seen, 2, "Only the tied best actions should be chosen")
		require.Positive(t, seen[3])
		require.Positive(t, seen[4])
	})

	t.Run("greedy initializes every legal action", func(t *testing.T) {
		env := gravityBoard(t)
		q := NewQLearning(env, WithSeed(3), WithEpsilon(0))
		q.ChooseMove()

		require.Equal(t, len(env.LegalActions()), q.Table().Len())
	})

	t.Run("exploration is uniform", func(t *testing.T) {
		env := game.NewConnect(game.TicTacToeRules())
		q := NewQLearning(env, WithSeed(11), WithEpsilon(1))
		q.Table().Add(env.Key(), 4, 1)

		const trials = 9000
		counts := map[game.Action]int{}
		for i := 0; i < trials; i++ {
			counts[q.ChooseMove()]++
		}

		require.Len(t, counts, 9)
		for a, n := range counts {
			require.InDelta(t, trials/9, n, 150, "Action %d drawn %d times", a, n)
		}
	})

	t.Run("exploration initializes the mirrored entry", func(t *testing.T) {
		env := gravityBoard(t, 0)
		q := NewQLearning(env, WithSeed(5), WithEpsilon(1), WithSymmetry())
		a := q.ChooseMove()

		_, ok := q.Table().Lookup(env.Key(), a)
		require.True(t, ok)
		_, ok = q.Table().Lookup(env.Mirror().Key(), env.MirrorAction(a))
		require.True(t, ok)
	})

	t.Run("panics without legal actions", func(t *testing.T) {
		env := game.NewConnect(game.TicTacToeRules())
		for _, a := range []game.Action{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			require.NoError(t, env.Act(a))
			env.ChangeTurn()
		}
		q := NewQLearning(env, WithSeed(5))
		require.Panics(t, func() { q.ChooseMove() })
	})
}
