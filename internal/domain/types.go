package domain

// PlayerID doubles as the cell value on the board.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// Other returns the opponent of p. Empty has no opponent.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

// Glyph is the token drawn for the player by text renderers.
func (p PlayerID) Glyph() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	}
	return " "
}

// Color is the label presentation layers use for the player.
func (p PlayerID) Color() string {
	switch p {
	case Player1:
		return "Red"
	case Player2:
		return "Blue"
	}
	return ""
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// to represent the outcome after a move
type Outcome string

const (
	Ongoing Outcome = "ongoing"
	P1Wins  Outcome = "p1_wins"
	P2Wins  Outcome = "p2_wins"
	Tie     Outcome = "tie"
)

// WinFor maps a player to their winning outcome.
func WinFor(p PlayerID) Outcome {
	if p == Player2 {
		return P2Wins
	}
	return P1Wins
}

func (o Outcome) IsTerminal() bool {
	return o == P1Wins || o == P2Wins || o == Tie
}

// Winner returns the winning player, or Empty for a tie or an ongoing game.
func (o Outcome) Winner() PlayerID {
	switch o {
	case P1Wins:
		return Player1
	case P2Wins:
		return Player2
	}
	return Empty
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

// Is lets the specific move errors match ErrInvalidMove.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t == ErrInvalidMove && (e == ErrColumnFull || e == ErrColumnOutOfRange)
}

const (
	ErrInvalidMove      Error = "invalid move"
	ErrColumnFull       Error = "column is full"
	ErrColumnOutOfRange Error = "column out of range"
	ErrGameFinished     Error = "game already finished"
)
