package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameAlternatesTurns(t *testing.T) {
	g := NewGame()
	require.Equal(t, Player1, g.CurrentPlayer)

	_, err := g.MakeMove(4)
	require.NoError(t, err)
	assert.Equal(t, Player2, g.CurrentPlayer)
	assert.True(t, g.LastValid)

	_, err = g.MakeMove(4)
	require.NoError(t, err)
	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, 2, g.MoveCount)
}

func TestGameInvalidMoveKeepsTurn(t *testing.T) {
	g := NewGame()
	_, err := g.MakeMove(1)
	require.NoError(t, err)
	require.Equal(t, Player2, g.CurrentPlayer)

	for _, col := range []int{0, 8} {
		_, err := g.MakeMove(col)
		assert.ErrorIs(t, err, ErrInvalidMove)
		assert.Equal(t, Player2, g.CurrentPlayer)
		assert.False(t, g.LastValid)
		assert.Equal(t, Ongoing, g.Outcome)
	}

	for i := 0; i < Rows-1; i++ {
		_, err := g.MakeMove(1)
		require.NoError(t, err)
	}
	turn := g.CurrentPlayer
	_, err = g.MakeMove(1)
	assert.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, turn, g.CurrentPlayer)
	assert.Equal(t, 3, g.Invalid)

	_, err = g.MakeMove(2)
	require.NoError(t, err)
	assert.True(t, g.LastValid)
	assert.Equal(t, turn.Other(), g.CurrentPlayer)
}

func TestGameStopsAfterWin(t *testing.T) {
	g := NewGame()
	for _, col := range []int{1, 2, 1, 3, 1, 2, 1} {
		_, err := g.MakeMove(col)
		require.NoError(t, err)
	}
	assert.Equal(t, P1Wins, g.Outcome)
	assert.True(t, g.IsFinished())
	assert.Equal(t, Player1, g.CurrentPlayer)

	_, err := g.MakeMove(5)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestPlayerIDPresentation(t *testing.T) {
	assert.Equal(t, "X", Player1.Glyph())
	assert.Equal(t, "O", Player2.Glyph())
	assert.Equal(t, "Red", Player1.Color())
	assert.Equal(t, "Blue", Player2.Color())
	assert.Equal(t, Player2, Player1.Other())
	assert.Equal(t, Empty, Empty.Other())
	assert.Equal(t, Player2, P2Wins.Winner())
	assert.Equal(t, Empty, Tie.Winner())
}
