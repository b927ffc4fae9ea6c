package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// place builds a board by dropping tokens in order and returns the landing
// row of the final drop.
func place(t *testing.T, b *Board, drops ...[2]int) int {
	t.Helper()
	row := 0
	for _, d := range drops {
		var err error
		row, err = b.TryDrop(d[0], PlayerID(d[1]))
		require.NoError(t, err)
	}
	return row
}

func TestEvaluateDetectsEachAxis(t *testing.T) {
	tests := []struct {
		name     string
		drops    [][2]int
		lastCol  int
		expected Outcome
	}{
		{
			name:     "horizontal on bottom row",
			drops:    [][2]int{{1, 1}, {2, 1}, {3, 1}, {4, 1}},
			lastCol:  4,
			expected: P1Wins,
		},
		{
			name:     "horizontal completed in the middle",
			drops:    [][2]int{{3, 2}, {4, 2}, {6, 2}, {5, 2}},
			lastCol:  5,
			expected: P2Wins,
		},
		{
			name:     "vertical",
			drops:    [][2]int{{7, 2}, {7, 2}, {7, 2}, {7, 2}},
			lastCol:  7,
			expected: P2Wins,
		},
		{
			name: "diagonal rising to the right",
			drops: [][2]int{
				{1, 1},
				{2, 2}, {2, 1},
				{3, 2}, {3, 2}, {3, 1},
				{4, 2}, {4, 2}, {4, 2}, {4, 1},
			},
			lastCol:  4,
			expected: P1Wins,
		},
		{
			name: "anti-diagonal rising to the left",
			drops: [][2]int{
				{7, 2},
				{6, 1}, {6, 2},
				{5, 1}, {5, 1}, {5, 2},
				{4, 1}, {4, 1}, {4, 1}, {4, 2},
			},
			lastCol:  4,
			expected: P2Wins,
		},
		{
			name: "diagonal completed from its lowest cell",
			drops: [][2]int{
				{2, 2}, {2, 1},
				{3, 2}, {3, 2}, {3, 1},
				{4, 2}, {4, 2}, {4, 2}, {4, 1},
				{1, 1},
			},
			lastCol:  1,
			expected: P1Wins,
		},
		{
			name:     "three in a row is not a win",
			drops:    [][2]int{{1, 1}, {2, 1}, {3, 1}},
			lastCol:  3,
			expected: Ongoing,
		},
		{
			name:     "broken line is not a win",
			drops:    [][2]int{{1, 1}, {2, 1}, {3, 2}, {4, 1}, {5, 1}},
			lastCol:  5,
			expected: Ongoing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			row := place(t, &b, tt.drops...)
			token := PlayerID(tt.drops[len(tt.drops)-1][1])
			assert.Equal(t, tt.expected, Evaluate(&b, row, tt.lastCol, token))
		})
	}
}

func TestEvaluateFullBoardWithoutLineIsTie(t *testing.T) {
	// bottom to top per column; no four-in-a-row anywhere on the finished grid
	columns := []string{
		"XXOOXX",
		"XXOOXX",
		"OOXXOO",
		"XXOOXX",
		"OOXXOO",
		"XOXOXO",
		"OOXXOO",
	}

	b := NewBoard()
	var outcome Outcome
	for c, pattern := range columns {
		for _, glyph := range pattern {
			token := Player1
			if glyph == 'O' {
				token = Player2
			}
			row, err := b.TryDrop(c+1, token)
			require.NoError(t, err)
			outcome = Evaluate(&b, row, c+1, token)
			if !b.IsFull() {
				require.Equal(t, Ongoing, outcome)
			}
		}
	}

	require.True(t, b.IsFull())
	assert.Equal(t, Tie, outcome)
}

func TestEvaluateWinOnLastCellBeatsTie(t *testing.T) {
	// column 3 is left one short; its final X completes a line and fills the board
	columns := map[int]string{
		1: "XXOOXX",
		2: "XXOOXX",
		4: "XXOOXX",
		5: "OOXXOO",
		6: "XOXOXO",
		7: "OOXXOO",
		3: "OOXXO",
	}
	b := NewBoard()
	for _, c := range []int{1, 2, 4, 5, 6, 7, 3} {
		for _, glyph := range columns[c] {
			token := Player1
			if glyph == 'O' {
				token = Player2
			}
			_, err := b.TryDrop(c, token)
			require.NoError(t, err)
		}
	}

	row, err := b.TryDrop(3, Player1)
	require.NoError(t, err)
	require.Equal(t, Rows, row)
	require.True(t, b.IsFull())
	assert.Equal(t, P1Wins, Evaluate(&b, row, 3, Player1))
	assert.True(t, CheckWin(&b, row, 3, Player1))
}

func TestCheckWin(t *testing.T) {
	b := NewBoard()
	row := place(t, &b, [2]int{2, 1}, [2]int{3, 1}, [2]int{4, 1}, [2]int{5, 1})
	assert.True(t, CheckWin(&b, row, 5, Player1))
	assert.False(t, CheckWin(&b, row, 5, Player2))
}
