// Package metrics keeps lock-free counters for the match server.
//
// All methods are safe for concurrent use. A nil *Collector is a valid
// no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks connection, session and outcome counters.
type Collector struct {
	connectionsActive atomic.Int64
	connectionsTotal  atomic.Int64
	handshakeFailures atomic.Int64

	sessionsActive   atomic.Int64
	sessionsTotal    atomic.Int64
	computerSessions atomic.Int64
	playerSessions   atomic.Int64

	p1Wins    atomic.Int64
	p2Wins    atomic.Int64
	ties      atomic.Int64
	abandoned atomic.Int64

	movesTotal   atomic.Int64
	invalidMoves atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connections ──────────────────────────────────────────────────────

// ConnectionOpened increments both the active and total counters.
func (c *Collector) ConnectionOpened() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(1)
	c.connectionsTotal.Add(1)
}

// ConnectionClosed decrements the active connection counter.
func (c *Collector) ConnectionClosed() {
	if c == nil {
		return
	}
	c.connectionsActive.Add(-1)
}

// HandshakeFailed counts a connection dropped before mode negotiation finished.
func (c *Collector) HandshakeFailed(msg string) {
	if c == nil {
		return
	}
	c.handshakeFailures.Add(1)
	c.RecordError(msg)
}

func (c *Collector) ActiveConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsActive.Load()
}

// ── Sessions ─────────────────────────────────────────────────────────

// SessionStarted records a new session; mode is "computer" or "player".
func (c *Collector) SessionStarted(mode string) {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
	if mode == "computer" {
		c.computerSessions.Add(1)
	} else {
		c.playerSessions.Add(1)
	}
}

// SessionEnded records how a session finished.
func (c *Collector) SessionEnded(outcome string, abandoned bool, moves, invalid int) {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
	c.movesTotal.Add(int64(moves))
	c.invalidMoves.Add(int64(invalid))
	if abandoned {
		c.abandoned.Add(1)
		return
	}
	switch outcome {
	case "p1_wins":
		c.p1Wins.Add(1)
	case "p2_wins":
		c.p2Wins.Add(1)
	case "tie":
		c.ties.Add(1)
	}
}

func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// ── Errors ───────────────────────────────────────────────────────────

// RecordError stores the most recent error message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime            string `json:"uptime"`
	ConnectionsActive int64  `json:"connections_active"`
	ConnectionsTotal  int64  `json:"connections_total"`
	HandshakeFailures int64  `json:"handshake_failures"`
	SessionsActive    int64  `json:"sessions_active"`
	SessionsTotal     int64  `json:"sessions_total"`
	ComputerSessions  int64  `json:"computer_sessions"`
	PlayerSessions    int64  `json:"player_sessions"`
	P1Wins            int64  `json:"p1_wins"`
	P2Wins            int64  `json:"p2_wins"`
	Ties              int64  `json:"ties"`
	Abandoned         int64  `json:"abandoned"`
	MovesTotal        int64  `json:"moves_total"`
	InvalidMoves      int64  `json:"invalid_moves"`
	LastError         string `json:"last_error,omitempty"`
	LastErrorMessage  string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:            time.Since(c.startTime).Truncate(time.Second).String(),
		ConnectionsActive: c.connectionsActive.Load(),
		ConnectionsTotal:  c.connectionsTotal.Load(),
		HandshakeFailures: c.handshakeFailures.Load(),
		SessionsActive:    c.sessionsActive.Load(),
		SessionsTotal:     c.sessionsTotal.Load(),
		ComputerSessions:  c.computerSessions.Load(),
		PlayerSessions:    c.playerSessions.Load(),
		P1Wins:            c.p1Wins.Load(),
		P2Wins:            c.p2Wins.Load(),
		Ties:              c.ties.Load(),
		Abandoned:         c.abandoned.Load(),
		MovesTotal:        c.movesTotal.Load(),
		InvalidMoves:      c.invalidMoves.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
