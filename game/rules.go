package game

import "fmt"

// Rules fix the grid geometry and win condition of a game.
type Rules struct {
	Rows    int  `yaml:"rows" json:"rows"`
	Cols    int  `yaml:"cols" json:"cols"`
	Connect int  `yaml:"connect" json:"connect"`
	Gravity bool `yaml:"gravity" json:"gravity"`
}

// StandardRules returns the default board: 4 rows, 5 columns, three in a row, pieces drop.
func StandardRules() Rules {
	return Rules{
		Rows:    4,
		Cols:    5,
		Connect: 3,
		Gravity: true,
	}
}

// TicTacToeRules returns a 3x3 free-placement board with three in a row.
func TicTacToeRules() Rules {
	return Rules{
		Rows:    3,
		Cols:    3,
		Connect: 3,
		Gravity: false,
	}
}

// Cells is the grid capacity.
func (r Rules) Cells() int {
	return r.Rows * r.Cols
}

// NumActions is the size of the action space.
func (r Rules) NumActions() int {
	if r.Gravity {
		return r.Cols
	}
	return r.Cells()
}

func (r Rules) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("invalid grid %dx%d: dimensions must be positive", r.Rows, r.Cols)
	}
	if r.Connect <= 0 {
		return fmt.Errorf("invalid connect length %d: must be positive", r.Connect)
	}
	if r.Connect > r.Rows && r.Connect > r.Cols {
		return fmt.Errorf("connect length %d does not fit a %dx%d grid", r.Connect, r.Rows, r.Cols)
	}
	return nil
}
