package game

// Mark is the content of a single grid cell.
type Mark byte

const (
	Empty  Mark = ' '
	Nought Mark = 'o'
	Cross  Mark = 'x'
)

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case Nought:
		return Cross
	case Cross:
		return Nought
	}
	return m
}

func (m Mark) String() string {
	return string(m)
}

// Action is a column index under gravity rules and a row-major cell index otherwise.
type Action int
