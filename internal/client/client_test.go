package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:8000/ws", ServerURL("localhost:8000"))
	assert.Equal(t, "wss://play.example/ws", ServerURL("wss://play.example/ws"))
}

func TestRender(t *testing.T) {
	b := domain.NewBoard()
	_, err := b.TryDrop(1, domain.Player1)
	require.NoError(t, err)
	_, err = b.TryDrop(2, domain.Player2)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(Render(b.Snapshot()), "\n"), "\n")
	require.Len(t, lines, domain.Rows+1)
	assert.Equal(t, "| | | | | | | |", lines[0])
	assert.Equal(t, "|X|O| | | | | |", lines[domain.Rows-1])
	assert.Equal(t, " 1 2 3 4 5 6 7", lines[domain.Rows])
}

// scriptedServer runs one server-side conversation per connection.
func scriptedServer(t *testing.T, script func(ws *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		script(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readCommand(t *testing.T, ws *websocket.Conn) protocol.Command {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	cmd, err := protocol.DecodeCommand(data)
	require.NoError(t, err)
	return cmd
}

func TestPlayAgainstScriptedServer(t *testing.T) {
	received := make(chan protocol.Command, 4)
	url := scriptedServer(t, func(ws *websocket.Conn) {
		received <- readCommand(t, ws)
		ws.WriteJSON(protocol.ModeAck(domain.Player1, 8001))
		ws.WriteJSON(protocol.TurnNotice(domain.Player1, true))
		received <- readCommand(t, ws)
		ws.WriteJSON(protocol.TurnNotice(domain.Player1, false))
		received <- readCommand(t, ws)
		b := domain.NewBoard()
		b.TryDrop(4, domain.Player1)
		ws.WriteJSON(protocol.BoardSnapshot(b.Snapshot()))
		ws.WriteJSON(protocol.TurnNotice(domain.Player2, true))
		ws.WriteJSON(protocol.Result(domain.P1Wins))
	})

	ws, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer ws.Close()

	var out bytes.Buffer
	c := New(ws, strings.NewReader("9\nfour\n4\n"), &out, false)
	ending, err := c.Play(protocol.ModeComputer)
	require.NoError(t, err)
	assert.Equal(t, domain.P1Wins, ending.Outcome)

	assert.Equal(t, protocol.SelectMode(protocol.ModeComputer), <-received)
	assert.Equal(t, protocol.ChooseColumn(9), <-received)
	assert.Equal(t, protocol.ChooseColumn(4), <-received)

	text := out.String()
	assert.Contains(t, text, "You are player 1 (X, Red)")
	assert.Contains(t, text, "not playable")
	assert.Contains(t, text, `"four" is not a column number`)
	assert.Contains(t, text, "|X|")
	assert.Contains(t, text, "Waiting for player 2")
	assert.Contains(t, text, "You win!")
	assert.NotContains(t, text, "Column (1-7", "no prompts when not interactive")
}

func TestPlayQuitsOnEndOfInput(t *testing.T) {
	received := make(chan protocol.Command, 2)
	url := scriptedServer(t, func(ws *websocket.Conn) {
		received <- readCommand(t, ws)
		ws.WriteJSON(protocol.ModeAck(domain.Player2, 8002))
		ws.WriteJSON(protocol.TurnNotice(domain.Player2, true))
		received <- readCommand(t, ws)
	})

	ws, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer ws.Close()

	var out bytes.Buffer
	ending, err := New(ws, strings.NewReader(""), &out, true).Play(protocol.ModePlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.Player2, ending.QuitBy)

	<-received
	assert.Equal(t, protocol.Quit(), <-received)
	assert.Contains(t, out.String(), "Column (1-7, q to quit)")
}

func TestPlayReportsOpponentQuit(t *testing.T) {
	url := scriptedServer(t, func(ws *websocket.Conn) {
		readCommand(t, ws)
		ws.WriteJSON(protocol.ModeAck(domain.Player1, 8001))
		ws.WriteJSON(protocol.QuitNotice(domain.Player2))
	})

	ws, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer ws.Close()

	var out bytes.Buffer
	ending, err := New(ws, strings.NewReader(""), &out, false).Play(protocol.ModePlayer)
	require.NoError(t, err)
	assert.Equal(t, domain.Player2, ending.QuitBy)
	assert.Contains(t, out.String(), "Player 2 left the game.")
}

func TestPlayReturnsServerError(t *testing.T) {
	url := scriptedServer(t, func(ws *websocket.Conn) {
		readCommand(t, ws)
		ws.WriteJSON(protocol.Error("expected mode selection"))
	})

	ws, err := Dial(context.Background(), url)
	require.NoError(t, err)
	defer ws.Close()

	_, err = New(ws, strings.NewReader(""), &bytes.Buffer{}, false).Play(protocol.ModePlayer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected mode selection")
}
