// Package client is a text console participant for the match server.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/protocol"
)

// Ending is how a game looked from this side when it stopped.
type Ending struct {
	Outcome domain.Outcome
	QuitBy  domain.PlayerID
}

// ServerURL turns "host:port" into the websocket endpoint; full ws:// or
// wss:// URLs pass through unchanged.
func ServerURL(addr string) string {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		return addr
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	return u.String()
}

func Dial(ctx context.Context, addr string) (*websocket.Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, ServerURL(addr), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return ws, nil
}

type Client struct {
	ws          *websocket.Conn
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	me          domain.PlayerID
}

// New wraps an open connection. Prompts are only printed when interactive.
func New(ws *websocket.Conn, in io.Reader, out io.Writer, interactive bool) *Client {
	return &Client{
		ws:          ws,
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
	}
}

// Play asks for mode and plays until the server reports an end.
func (c *Client) Play(mode protocol.Mode) (Ending, error) {
	if err := c.send(protocol.SelectMode(mode)); err != nil {
		return Ending{}, err
	}

	for {
		var msg protocol.ServerMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			return Ending{}, fmt.Errorf("read: %w", err)
		}

		switch msg.Type {
		case protocol.TypeModeAck:
			c.me = msg.YourPlayer
			fmt.Fprintf(c.out, "You are player %d (%s, %s)\n", c.me, c.me.Glyph(), c.me.Color())

		case protocol.TypeTurn:
			if msg.Player != c.me {
				fmt.Fprintf(c.out, "Waiting for player %d...\n", msg.Player)
				continue
			}
			if !msg.IsValid() {
				fmt.Fprintln(c.out, "That column is not playable, try again.")
			}
			cmd, ok := c.askColumn()
			if err := c.send(cmd); err != nil {
				return Ending{}, err
			}
			if !ok {
				return Ending{QuitBy: c.me, Outcome: domain.Ongoing}, nil
			}

		case protocol.TypeBoard:
			fmt.Fprint(c.out, Render(msg.Board))

		case protocol.TypeResult:
			fmt.Fprintln(c.out, describe(msg.Outcome, c.me))
			return Ending{Outcome: msg.Outcome}, nil

		case protocol.TypeQuitNotice:
			fmt.Fprintf(c.out, "Player %d left the game.\n", msg.WhoQuit)
			return Ending{Outcome: domain.Ongoing, QuitBy: msg.WhoQuit}, nil

		case protocol.TypeError:
			return Ending{}, fmt.Errorf("server: %s", msg.Message)
		}
	}
}

// askColumn reads lines until one is a number or q. ok is false when the
// player quits, including on end of input.
func (c *Client) askColumn() (protocol.Command, bool) {
	for {
		if c.interactive {
			fmt.Fprintf(c.out, "Column (1-%d, q to quit): ", domain.Columns)
		}
		if !c.in.Scan() {
			return protocol.Quit(), false
		}
		line := strings.TrimSpace(c.in.Text())
		if strings.EqualFold(line, "q") {
			return protocol.Quit(), false
		}
		column, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(c.out, "%q is not a column number.\n", line)
			continue
		}
		return protocol.ChooseColumn(column), true
	}
}

func (c *Client) send(cmd protocol.Command) error {
	data, err := cmd.Encode()
	if err != nil {
		return err
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func describe(outcome domain.Outcome, me domain.PlayerID) string {
	switch outcome.Winner() {
	case domain.Empty:
		return "The board is full: tie game."
	case me:
		return "You win!"
	default:
		return fmt.Sprintf("Player %d wins.", outcome.Winner())
	}
}

// Render draws a top-row-first grid with column numbers underneath.
func Render(grid [][]domain.PlayerID) string {
	var b strings.Builder
	for _, row := range grid {
		b.WriteByte('|')
		for _, cell := range row {
			if cell == domain.Empty {
				b.WriteByte(' ')
			} else {
				b.WriteString(cell.Glyph())
			}
			b.WriteByte('|')
		}
		b.WriteByte('\n')
	}
	for col := 1; col <= domain.Columns; col++ {
		fmt.Fprintf(&b, " %d", col)
	}
	b.WriteString("\n")
	return b.String()
}
