package game

import (
	"errors"
	"sync"

	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/protocol"
)

var errDisconnected = errors.New("peer went away")

// step is one scripted reply: a command, or a read failure when err is set.
type step struct {
	cmd protocol.Command
	err error
}

func move(column int) step { return step{cmd: protocol.ChooseColumn(column)} }
func quit() step           { return step{cmd: protocol.Quit()} }
func drop() step           { return step{err: errDisconnected} }

// scriptedConn answers each turn notice addressed to its own player with
// the next scripted step. With the script exhausted it stays silent.
type scriptedConn struct {
	player domain.PlayerID

	mu      sync.Mutex
	sent    []protocol.ServerMessage
	script  []step
	failOn  func(protocol.ServerMessage) bool
	onSend  func(protocol.ServerMessage) // runs after a successful send
	replies chan step

	closeOnce sync.Once
	closed    chan struct{}
}

func newScriptedConn(player domain.PlayerID, script ...step) *scriptedConn {
	return &scriptedConn{
		player:  player,
		script:  script,
		replies: make(chan step, len(script)+1),
		closed:  make(chan struct{}),
	}
}

func (c *scriptedConn) Send(msg protocol.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failOn != nil && c.failOn(msg) {
		return errors.New("write: broken pipe")
	}
	c.sent = append(c.sent, msg)
	if msg.Type == protocol.TypeTurn && msg.Player == c.player && len(c.script) > 0 {
		c.replies <- c.script[0]
		c.script = c.script[1:]
	}
	if c.onSend != nil {
		c.onSend(msg)
	}
	return nil
}

func (c *scriptedConn) Receive() (protocol.Command, error) {
	select {
	case s := <-c.replies:
		return s.cmd, s.err
	case <-c.closed:
		return protocol.Command{}, errDisconnected
	}
}

func (c *scriptedConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *scriptedConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

func (c *scriptedConn) messages() []protocol.ServerMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]protocol.ServerMessage(nil), c.sent...)
}

func (c *scriptedConn) types() []protocol.MessageType {
	var out []protocol.MessageType
	for _, m := range c.messages() {
		out = append(out, m.Type)
	}
	return out
}

func (c *scriptedConn) last() protocol.ServerMessage {
	msgs := c.messages()
	return msgs[len(msgs)-1]
}

func (c *scriptedConn) turns() []protocol.ServerMessage {
	var out []protocol.ServerMessage
	for _, m := range c.messages() {
		if m.Type == protocol.TypeTurn {
			out = append(out, m)
		}
	}
	return out
}
