package game

// Key is the canonical encoding of grid content. It never encodes whose turn it is, so
// callers that need a perspective must track the side to move separately.
type Key string

// Environment is the mutable game state the agents and searchers operate on.
// Act and ChangeTurn mutate the receiver; speculative exploration must go through Copy.
type Environment interface {
	Key() Key
	Rules() Rules
	// Player returns the player at turn, i.e. the mark the next Act places
	Player() Mark
	LegalActions() []Action
	ChangeTurn()
	Act(action Action) error
	WasWinningMove() bool
	IsFull() bool
	Reset(first Mark)
	Copy() Environment
	// Mirror returns a copy reflected left to right
	Mirror() Environment
	MirrorAction(action Action) Action
}

// IsTerminal reports whether the last move ended the game.
func IsTerminal(env Environment) bool {
	return env.WasWinningMove() || env.IsFull()
}
