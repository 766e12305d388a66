package searcher

import (
	"testing"

	"connectrl/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestExpectiminimaxTerminalValues(t *testing.T) {
	won := play(t, game.TicTacToeRules(), 0, 3, 1, 4, 8, 5)
	drawn := play(t, game.TicTacToeRules(), 0, 1, 2, 4, 3, 5, 7, 6, 8)

	require.Equal(t, Win, NewExpectiminimax(game.Cross).Value(won))
	require.Equal(t, Loss, NewExpectiminimax(game.Nought).Value(won))
	require.Equal(t, Draw, NewExpectiminimax(game.Cross).Value(drawn))
}

func TestExpectiminimaxMatchesReference(t *testing.T) {
	for _, rules := range []game.Rules{game.TicTacToeRules(), smallGravityRules} {
		e := NewExpectiminimax(game.Cross)
		ref := newReference(game.Cross, true)

		for _, state := range reachable(game.NewConnect(rules)) {
			require.InDelta(t, ref.value(state), e.Value(state), 1e-9,
				"Expected value should match the reference on\n%v", state)
		}
	}
}

func TestExpectiminimaxChanceNodesAreBounded(t *testing.T) {
	e := NewExpectiminimax(game.Cross)

	for _, state := range reachable(game.NewConnect(game.TicTacToeRules())) {
		if game.IsTerminal(state) || state.Player() == game.Cross {
			continue
		}
		// Opponent to move: value is the average over its replies
		children := []float64{}
		for _, a := range state.LegalActions() {
			children = append(children, e.Value(next(state, a)))
		}

		value := e.Value(state)

		require.GreaterOrEqual(t, value, slices.Min(children), "Average should not fall below the worst reply")
		require.LessOrEqual(t, value, slices.Max(children), "Average should not exceed the best reply")
	}
}

func TestExpectiminimaxDominatesMinimax(t *testing.T) {
	e := NewExpectiminimax(game.Cross)
	m := NewMinimax(game.Cross)

	for _, state := range reachable(game.NewConnect(game.TicTacToeRules())) {
		require.GreaterOrEqual(t, e.Value(state)+1e-12, m.Value(state),
			"Playing a random opponent should be worth at least as much as an optimal one on\n%v", state)
	}
}

func TestExpectiminimaxValueIsCached(t *testing.T) {
	state := play(t, game.TicTacToeRules(), 4)
	e := NewExpectiminimax(game.Cross, WithMetrics())

	first := e.Value(state)
	expansions := e.Metrics().Expansions
	second := e.Value(state)

	require.Equal(t, first, second)
	require.Equal(t, expansions, e.Metrics().Expansions, "Repeated search should expand no nodes")
	require.Equal(t, e.Metrics().CacheSize, e.Table().Len())
}

func TestExpectiminimaxSharedTable(t *testing.T) {
	table := NewTable()
	state := play(t, game.TicTacToeRules(), 4)

	NewExpectiminimax(game.Cross, WithTable(table)).Value(state)

	_, ok := table.Exact(state.Key())
	require.True(t, ok, "Search should fill the table it was given")
}
