package bot

import (
	"github.com/iamasit07/connect4-arena/internal/domain"
)

const (
	POSITION_WEIGHT     = 3
	TWO_IN_ROW_WEIGHT   = 2
	THREE_IN_ROW_WEIGHT = 5
	OPPONENT_THREE      = 4
)

// evaluateBoard scores every window of four cells from botPlayer's side.
func evaluateBoard(board *domain.Board, botPlayer, opponent domain.PlayerID) int {
	score := 0

	center := domain.Columns / 2
	for row := 0; row < domain.Rows; row++ {
		if board.Cell(row, center) == botPlayer {
			score += POSITION_WEIGHT
		}
	}

	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			for _, dir := range [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}} {
				endRow := row + dir[0]*(domain.ToWin-1)
				endCol := col + dir[1]*(domain.ToWin-1)
				if !isInBounds(endRow, endCol) {
					continue
				}
				score += scoreWindow(board, row, col, dir[0], dir[1], botPlayer, opponent)
			}
		}
	}
	return score
}

func scoreWindow(board *domain.Board, row, col, dRow, dCol int, botPlayer, opponent domain.PlayerID) int {
	mine, theirs, empty := 0, 0, 0
	for i := 0; i < domain.ToWin; i++ {
		switch board.Cell(row+dRow*i, col+dCol*i) {
		case botPlayer:
			mine++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	switch {
	case mine == 3 && empty == 1:
		return THREE_IN_ROW_WEIGHT
	case mine == 2 && empty == 2:
		return TWO_IN_ROW_WEIGHT
	case theirs == 3 && empty == 1:
		return -OPPONENT_THREE
	}
	return 0
}

func isInBounds(row, col int) bool {
	return row >= 0 && row < domain.Rows && col >= 0 && col < domain.Columns
}
