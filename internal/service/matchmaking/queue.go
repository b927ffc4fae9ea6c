package matchmaking

import (
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/service/game"
)

const ErrQueueClosed domain.Error = "matchmaking queue closed"

// Match pairs two participants. Player2 is nil when the computer plays.
type Match struct {
	Player1 game.Conn
	Player2 game.Conn
}

func (m Match) IsBot() bool {
	return m.Player2 == nil
}

// AckFunc tells a participant which identity it was given. It runs while
// the queue lock is held, so the acknowledgement always reaches the wire
// before the match is handed to the listener.
type AckFunc func(identity domain.PlayerID) error

// MatchmakingQueue holds at most one half-open pairing.
type MatchmakingQueue struct {
	MatchChannel chan Match

	mu      sync.Mutex
	waiting game.Conn
	timer   *time.Timer
	seq     uint64 // bumped whenever the waiting slot changes hands
	timeout time.Duration
	closed  bool
}

// NewMatchmakingQueue creates a queue. A positive timeout hands a player
// who waited that long to the computer instead.
func NewMatchmakingQueue(timeout time.Duration) *MatchmakingQueue {
	return &MatchmakingQueue{
		MatchChannel: make(chan Match, 100),
		timeout:      timeout,
	}
}

// RequestComputer acknowledges conn as P1 and queues a computer match.
func (m *MatchmakingQueue) RequestComputer(conn game.Conn, ack AckFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrQueueClosed
	}
	if err := ack(domain.Player1); err != nil {
		return err
	}
	m.MatchChannel <- Match{Player1: conn}
	return nil
}

// RequestPlayer either parks conn as the pending P1 or completes the
// pending pairing with conn as P2. Arrival order decides who is P1.
func (m *MatchmakingQueue) RequestPlayer(conn game.Conn, ack AckFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrQueueClosed
	}

	if m.waiting == nil {
		if err := ack(domain.Player1); err != nil {
			return err
		}
		m.waiting = conn
		m.seq++
		if m.timeout > 0 {
			seq := m.seq
			m.timer = time.AfterFunc(m.timeout, func() {
				m.HandleTimeout(seq)
			})
		}
		log.Printf("[LOBBY] Player waiting for an opponent")
		return nil
	}

	if err := ack(domain.Player2); err != nil {
		return err
	}
	opponent := m.clearWaiting()
	m.MatchChannel <- Match{Player1: opponent, Player2: conn}
	return nil
}

// HandleTimeout gives the pending player a computer opponent, provided
// the slot has not changed hands since the timer for seq was armed.
func (m *MatchmakingQueue) HandleTimeout(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.waiting == nil || m.seq != seq {
		return
	}

	log.Printf("[LOBBY] No opponent after %s, falling back to computer", m.timeout)
	conn := m.clearWaiting()
	m.MatchChannel <- Match{Player1: conn}
}

// Waiting reports whether a player is parked in the pending slot.
func (m *MatchmakingQueue) Waiting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting != nil
}

// Close stops pairing: the pending player, if any, is disconnected and
// the match channel is closed so the listener can drain and return.
func (m *MatchmakingQueue) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	if conn := m.clearWaiting(); conn != nil {
		conn.Close()
	}
	close(m.MatchChannel)
}

func (m *MatchmakingQueue) clearWaiting() game.Conn {
	conn := m.waiting
	m.waiting = nil
	m.seq++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	return conn
}
