package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// every participant message fits well within this
	maxMessageSize = 512
)

// TransportError wraps a failed read or write on a participant connection.
type TransportError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("websocket %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Conn adapts a gorilla connection to the session's message stream.
type Conn struct {
	ws *websocket.Conn

	// writeMu ensures only one goroutine writes to the socket at a time;
	// WriteJSON is not safe for concurrent use.
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
	metrics   *metrics.Collector
}

// NewConn takes ownership of ws and starts its keep-alive pinger.
func NewConn(ws *websocket.Conn, collector *metrics.Collector) *Conn {
	c := &Conn{
		ws:      ws,
		done:    make(chan struct{}),
		metrics: collector,
	}
	ws.SetReadLimit(maxMessageSize)
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	collector.ConnectionOpened()
	go c.pinger()
	return c
}

func (c *Conn) pinger() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) Send(msg protocol.ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(msg); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// Receive blocks for the next frame and decodes it. The read deadline is
// armed here rather than at accept time, so a player parked in the lobby
// is not timed out while nobody is reading from it.
func (c *Conn) Receive() (protocol.Command, error) {
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		return protocol.Command{}, &TransportError{Op: "read", Err: err}
	}
	return protocol.DecodeCommand(data)
}

// Close sends a close frame (best effort) and releases the socket. Safe to
// call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		err = c.ws.Close()
		c.metrics.ConnectionClosed()
	})
	return err
}
