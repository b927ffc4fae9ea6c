package bot

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect4-arena/internal/domain"
)

// Strategy picks a 1-based column for player. The board is a copy; strategies
// may drop tokens into it freely.
type Strategy interface {
	ChooseColumn(board domain.Board, player domain.PlayerID) int
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(board domain.Board, player domain.PlayerID) int

func (f StrategyFunc) ChooseColumn(board domain.Board, player domain.PlayerID) int {
	return f(board, player)
}

const (
	StrategyRandom = "random"
	StrategyEasy   = "easy"
	StrategyHard   = "hard"
)

// New returns the strategy registered under name.
func New(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyRandom:
		return StrategyFunc(CalculateMoveRandom), nil
	case StrategyEasy:
		return StrategyFunc(CalculateBestMoveEasy), nil
	case StrategyHard:
		return StrategyFunc(CalculateBestMoveMinimax), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q", name)
	}
}

// simulate drops player into column on a copy of board.
func simulate(board domain.Board, column int, player domain.PlayerID) (domain.Board, int, bool) {
	row, err := board.TryDrop(column, player)
	if err != nil {
		return board, 0, false
	}
	return board, row, true
}
