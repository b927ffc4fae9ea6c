package protocol

import (
	"encoding/json"
	"testing"

	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Command
	}{
		{"computer mode", `{"type":"mode","mode":"computer"}`, SelectMode(ModeComputer)},
		{"player mode", `{"type":"mode","mode":"player"}`, SelectMode(ModePlayer)},
		{"short mode letter", `{"type":"mode","mode":"C"}`, SelectMode(ModeComputer)},
		{"move", `{"type":"move","column":5}`, ChooseColumn(5)},
		{"move without column", `{"type":"move"}`, ChooseColumn(0)},
		{"quit", `{"type":"quit"}`, Quit()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeCommandRejects(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{`not json`, ErrMalformed},
		{`{"type":"dance"}`, ErrUnknownType},
		{`{"column":3}`, ErrUnknownType},
		{`{"type":"mode","mode":"spectator"}`, ErrUnknownMode},
		{`{"type":"move","column":"three"}`, ErrMalformed},
	}
	for _, tt := range tests {
		_, err := DecodeCommand([]byte(tt.raw))
		assert.ErrorIs(t, err, tt.want, tt.raw)
	}
}

func TestCommandEncodeDecodes(t *testing.T) {
	for _, cmd := range []Command{SelectMode(ModePlayer), ChooseColumn(7), Quit()} {
		data, err := cmd.Encode()
		require.NoError(t, err)
		got, err := DecodeCommand(data)
		require.NoError(t, err)
		assert.Equal(t, cmd, got)
	}

	_, err := Command{}.Encode()
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestServerMessageJSON(t *testing.T) {
	data, err := json.Marshal(TurnNotice(domain.Player2, false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"turn","player":2,"valid":false}`, string(data))

	data, err = json.Marshal(ModeAck(domain.Player1, 8001))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"mode_ack","yourPlayer":1,"auxPort":8001}`, string(data))

	data, err = json.Marshal(Result(domain.Tie))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"result","outcome":"tie"}`, string(data))

	data, err = json.Marshal(QuitNotice(domain.Player1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"quit_notice","whoQuit":1}`, string(data))
}

func TestTurnNoticeValidFlag(t *testing.T) {
	assert.True(t, TurnNotice(domain.Player1, true).IsValid())
	assert.False(t, TurnNotice(domain.Player1, false).IsValid())
	assert.True(t, ServerMessage{Type: TypeTurn}.IsValid())
}
