package domain

// the four axes through a cell: horizontal, vertical, diagonal / and diagonal \
var axes = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Evaluate judges the board after token landed at the 1-based (row, column).
// Only the four lines through that cell are scanned.
func Evaluate(b *Board, row, column int, token PlayerID) Outcome {
	r, c := row-1, column-1
	for _, axis := range axes {
		total := 1 +
			CountDiskInDirection(b, r, c, axis[0], axis[1], token) +
			CountDiskInDirection(b, r, c, -axis[0], -axis[1], token)
		if total >= ToWin {
			return WinFor(token)
		}
	}

	if b.IsFull() {
		return Tie
	}
	return Ongoing
}

// CheckWin reports whether the token at the 1-based (row, column) completes a line.
func CheckWin(b *Board, row, column int, token PlayerID) bool {
	return Evaluate(b, row, column, token).Winner() == token
}
