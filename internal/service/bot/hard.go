package bot

import (
	"math"

	"github.com/iamasit07/connect4-arena/internal/domain"
)

const (
	MINIMAX_DEPTH = 5
	MINIMAX_WIN   = 1000000
	MINIMAX_LOSS  = -1000000
)

// explore center columns first so alpha-beta cuts earlier
var searchOrder = [domain.Columns]int{4, 3, 5, 2, 6, 1, 7}

// CalculateBestMoveMinimax searches MINIMAX_DEPTH plies with alpha-beta and
// scores the leaves with evaluateBoard.
func CalculateBestMoveMinimax(board domain.Board, botPlayer domain.PlayerID) int {
	validColumns := orderedMoves(&board)
	if len(validColumns) == 0 {
		return 1
	}

	bestCol := validColumns[0]
	bestScore := math.MinInt32
	alpha := math.MinInt32
	beta := math.MaxInt32
	opponent := botPlayer.Other()

	for _, col := range validColumns {
		testBoard, row, _ := simulate(board, col, botPlayer)

		if domain.CheckWin(&testBoard, row, col, botPlayer) {
			return col
		}

		score := minimax(testBoard, MINIMAX_DEPTH-1, alpha, beta, false, botPlayer, opponent)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		alpha = max(alpha, bestScore)
	}

	return bestCol
}

func minimax(board domain.Board, depth int, alpha, beta int, isMaximizing bool, botPlayer, opponent domain.PlayerID) int {
	validColumns := orderedMoves(&board)
	if depth == 0 || len(validColumns) == 0 {
		return evaluateBoard(&board, botPlayer, opponent)
	}

	if isMaximizing {
		maxEval := math.MinInt32
		for _, col := range validColumns {
			testBoard, row, _ := simulate(board, col, botPlayer)
			if domain.CheckWin(&testBoard, row, col, botPlayer) {
				return MINIMAX_WIN - (MINIMAX_DEPTH - depth) // shallower wins score higher
			}

			eval := minimax(testBoard, depth-1, alpha, beta, false, botPlayer, opponent)
			maxEval = max(maxEval, eval)
			alpha = max(alpha, eval)
			if beta <= alpha {
				break
			}
		}
		return maxEval
	}

	minEval := math.MaxInt32
	for _, col := range validColumns {
		testBoard, row, _ := simulate(board, col, opponent)
		if domain.CheckWin(&testBoard, row, col, opponent) {
			return MINIMAX_LOSS + (MINIMAX_DEPTH - depth) // deeper losses score higher
		}

		eval := minimax(testBoard, depth-1, alpha, beta, true, botPlayer, opponent)
		minEval = min(minEval, eval)
		beta = min(beta, eval)
		if beta <= alpha {
			break
		}
	}
	return minEval
}

func orderedMoves(board *domain.Board) []int {
	moves := make([]int, 0, domain.Columns)
	for _, col := range searchOrder {
		if domain.ValidateMove(board, col) == nil {
			moves = append(moves, col)
		}
	}
	return moves
}
