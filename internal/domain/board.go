package domain

// Board is a value type so copies handed to strategies cannot touch the
// session's board. Row 0 is the bottom row.
type Board struct {
	cells  [Rows][Columns]PlayerID
	height [Columns]int
}

func NewBoard() Board {
	return Board{}
}

// ValidateMove checks a 1-based column against the board.
func ValidateMove(b *Board, column int) error {
	if column < 1 || column > Columns {
		return ErrColumnOutOfRange
	}
	if b.height[column-1] >= Rows {
		return ErrColumnFull
	}
	return nil
}

// TryDrop drops token into the 1-based column and returns the 1-based row it
// landed in. The board is untouched when an error is returned.
func (b *Board) TryDrop(column int, token PlayerID) (int, error) {
	if err := ValidateMove(b, column); err != nil {
		return 0, err
	}
	c := column - 1
	row := b.height[c]
	b.cells[row][c] = token
	b.height[c]++
	return row + 1, nil
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b.height[c] < Rows {
			return false
		}
	}
	return true
}

// Cell reads a 0-indexed cell, row 0 at the bottom. Out of range reads as Empty.
func (b *Board) Cell(row, col int) PlayerID {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return Empty
	}
	return b.cells[row][col]
}

// Height returns how many tokens the 1-based column holds.
func (b *Board) Height(column int) int {
	if column < 1 || column > Columns {
		return 0
	}
	return b.height[column-1]
}

// ValidColumns lists the 1-based columns that still accept a token.
func (b *Board) ValidColumns() []int {
	valid := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b.height[c] < Rows {
			valid = append(valid, c+1)
		}
	}
	return valid
}

// Snapshot copies the grid for the wire, top row first.
func (b *Board) Snapshot() [][]PlayerID {
	grid := make([][]PlayerID, Rows)
	for i := range grid {
		grid[i] = make([]PlayerID, Columns)
		copy(grid[i], b.cells[Rows-1-i][:])
	}
	return grid
}

// Clone returns an independent copy; Board holds only arrays.
func (b *Board) Clone() Board {
	return *b
}

// MoveCount is the number of tokens on the board.
func (b *Board) MoveCount() int {
	n := 0
	for _, h := range b.height {
		n += h
	}
	return n
}

// CountDiskInDirection counts matching tokens walking away from (row, col),
// not counting the start cell.
func CountDiskInDirection(b *Board, row, col, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && b.cells[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
