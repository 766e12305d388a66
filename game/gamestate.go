package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoTurn      = errors.New("no player at turn")
	ErrOutOfBounds = errors.New("action out of bounds")
	ErrOccupied    = errors.New("cell already occupied")
	ErrColumnFull  = errors.New("column is full")
)

// Connect is a connect-N grid. Under gravity a mark drops to the lowest empty row of the
// chosen column; otherwise it is placed on the chosen cell. Row 0 is the top row.
type Connect struct {
	rules  Rules
	grid   []Mark
	player Mark
	last   int // Cell index of the last placed mark, -1 before the first move
	filled int
}

// NewConnect returns an empty board with Nought at turn.
func NewConnect(rules Rules) *Connect {
	if err := rules.Validate(); err != nil {
		panic(fmt.Sprintf("cannot create board: %v", err))
	}
	c := &Connect{
		rules: rules,
		grid:  make([]Mark, rules.Cells()),
	}
	c.Reset(Nought)
	return c
}

func (c *Connect) Rules() Rules {
	return c.rules
}

func (c *Connect) Key() Key {
	b := make([]byte, len(c.grid))
	for i, m := range c.grid {
		b[i] = byte(m)
	}
	return Key(b)
}

func (c *Connect) Player() Mark {
	return c.player
}

func (c *Connect) ChangeTurn() {
	c.player = c.player.Opponent()
}

// At returns the mark on a cell.
func (c *Connect) At(row, col int) Mark {
	return c.grid[row*c.rules.Cols+col]
}

func (c *Connect) LegalActions() []Action {
	actions := make([]Action, 0, c.rules.NumActions())
	if c.rules.Gravity {
		for col := 0; col < c.rules.Cols; col++ {
			if c.grid[col] == Empty { // Top cell free
				actions = append(actions, Action(col))
			}
		}
		return actions
	}
	for i, m := range c.grid {
		if m == Empty {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

// Act places the mark of the player at turn. The turn is not changed.
func (c *Connect) Act(action Action) error {
	if c.player == Empty {
		return ErrNoTurn
	}
	index, err := c.target(action)
	if err != nil {
		return err
	}
	c.grid[index] = c.player
	c.last = index
	c.filled++
	return nil
}

func (c *Connect) target(action Action) (int, error) {
	a := int(action)
	if c.rules.Gravity {
		if a < 0 || a >= c.rules.Cols {
			return 0, fmt.Errorf("column %d: %w", a, ErrOutOfBounds)
		}
		for row := c.rules.Rows - 1; row >= 0; row-- {
			if index := row*c.rules.Cols + a; c.grid[index] == Empty {
				return index, nil
			}
		}
		return 0, fmt.Errorf("column %d: %w", a, ErrColumnFull)
	}

	if a < 0 || a >= len(c.grid) {
		return 0, fmt.Errorf("cell %d: %w", a, ErrOutOfBounds)
	}
	if c.grid[a] != Empty {
		return 0, fmt.Errorf("cell %d: %w", a, ErrOccupied)
	}
	return a, nil
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// WasWinningMove reports whether the last placed mark completed a line.
func (c *Connect) WasWinningMove() bool {
	if c.last < 0 {
		return false
	}
	mark := c.grid[c.last]
	row, col := c.last/c.rules.Cols, c.last%c.rules.Cols
	for _, d := range directions {
		count := 1 + c.run(mark, row, col, d[0], d[1]) + c.run(mark, row, col, -d[0], -d[1])
		if count >= c.rules.Connect {
			return true
		}
	}
	return false
}

func (c *Connect) run(mark Mark, row, col, dr, dc int) int {
	n := 0
	for {
		row += dr
		col += dc
		if row < 0 || row >= c.rules.Rows || col < 0 || col >= c.rules.Cols {
			return n
		}
		if c.grid[row*c.rules.Cols+col] != mark {
			return n
		}
		n++
	}
}

func (c *Connect) IsFull() bool {
	return c.filled == len(c.grid)
}

func (c *Connect) Reset(first Mark) {
	for i := range c.grid {
		c.grid[i] = Empty
	}
	c.player = first
	c.last = -1
	c.filled = 0
}

func (c *Connect) Copy() Environment {
	return c.clone()
}

func (c *Connect) clone() *Connect {
	grid := make([]Mark, len(c.grid))
	copy(grid, c.grid)
	return &Connect{
		rules:  c.rules,
		grid:   grid,
		player: c.player,
		last:   c.last,
		filled: c.filled,
	}
}

func (c *Connect) Mirror() Environment {
	m := c.clone()
	cols := c.rules.Cols
	for row := 0; row < c.rules.Rows; row++ {
		for col := 0; col < cols; col++ {
			m.grid[row*cols+col] = c.grid[row*cols+cols-1-col]
		}
	}
	if c.last >= 0 {
		row, col := c.last/cols, c.last%cols
		m.last = row*cols + cols - 1 - col
	}
	return m
}

func (c *Connect) MirrorAction(action Action) Action {
	cols := c.rules.Cols
	if c.rules.Gravity {
		return Action(cols - 1 - int(action))
	}
	row, col := int(action)/cols, int(action)%cols
	return Action(row*cols + cols - 1 - col)
}

func (c *Connect) String() string {
	var sb strings.Builder
	for row := 0; row < c.rules.Rows; row++ {
		sb.WriteByte('|')
		for col := 0; col < c.rules.Cols; col++ {
			sb.WriteByte(byte(c.At(row, col)))
		}
		sb.WriteByte('|')
		if row < c.rules.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
