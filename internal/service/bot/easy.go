package bot

import (
	"math/rand"

	"github.com/iamasit07/connect4-arena/internal/domain"
)

// CalculateBestMoveEasy wins when it can, blocks an immediate loss, and
// otherwise plays a random open column.
func CalculateBestMoveEasy(board domain.Board, botPlayer domain.PlayerID) int {
	validColumns := board.ValidColumns()
	if len(validColumns) == 0 {
		return 1
	}

	for _, col := range validColumns {
		testBoard, row, _ := simulate(board, col, botPlayer)
		if domain.CheckWin(&testBoard, row, col, botPlayer) {
			return col
		}
	}

	opponent := botPlayer.Other()
	for _, col := range validColumns {
		testBoard, row, _ := simulate(board, col, opponent)
		if domain.CheckWin(&testBoard, row, col, opponent) {
			return col
		}
	}

	return validColumns[rand.Intn(len(validColumns))]
}
