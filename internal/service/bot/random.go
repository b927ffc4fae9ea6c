package bot

import (
	"math/rand"

	"github.com/iamasit07/connect4-arena/internal/domain"
)

// CalculateMoveRandom picks uniformly over every column, full or not. The
// session re-prompts when it lands on a full one.
func CalculateMoveRandom(_ domain.Board, _ domain.PlayerID) int {
	return rand.Intn(domain.Columns) + 1
}
