package domain

// Game tracks whose turn it is on top of a Board.
type Game struct {
	Board Board
	// CurrentPlayer only changes after a valid move that does not end the game.
	CurrentPlayer PlayerID
	// LastValid is false when CurrentPlayer's previous attempt was rejected.
	LastValid bool
	Outcome   Outcome
	MoveCount int
	Invalid   int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		LastValid:     true,
		Outcome:       Ongoing,
	}
}

// MakeMove plays a 1-based column for the current player and returns the
// 1-based row it landed in. A rejected move keeps the turn and clears LastValid.
func (g *Game) MakeMove(column int) (int, error) {
	if g.IsFinished() {
		return 0, ErrGameFinished
	}

	token := g.CurrentPlayer
	row, err := g.Board.TryDrop(column, token)
	if err != nil {
		g.LastValid = false
		g.Invalid++
		return 0, err
	}

	g.LastValid = true
	g.MoveCount++
	g.Outcome = Evaluate(&g.Board, row, column, token)
	if !g.IsFinished() {
		g.CurrentPlayer = token.Other()
	}
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Outcome.IsTerminal()
}
