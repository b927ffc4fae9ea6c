package game

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/protocol"
	"github.com/iamasit07/connect4-arena/internal/service/bot"
	"github.com/iamasit07/connect4-arena/pkg/uid"
)

// SessionInfo describes a live session. It never changes after creation.
type SessionInfo struct {
	GameID    string        `json:"gameId"`
	Mode      protocol.Mode `json:"mode"`
	StartedAt time.Time     `json:"startedAt"`
}

// Summary is what a finished session reports. QuitBy is Empty unless the
// session was abandoned, in which case Outcome stays Ongoing.
type Summary struct {
	SessionInfo
	Outcome      domain.Outcome
	QuitBy       domain.PlayerID
	Moves        int
	InvalidMoves int
	FinishedAt   time.Time
}

func (s Summary) Abandoned() bool {
	return s.QuitBy != domain.Empty
}

// PresenceStore mirrors live sessions somewhere outside the process.
type PresenceStore interface {
	Track(ctx context.Context, info SessionInfo) error
	Untrack(ctx context.Context, gameID string) error
}

// SessionManager spawns sessions and keeps track of the ones still running.
type SessionManager struct {
	Session  map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	wg       sync.WaitGroup
	strategy bot.Strategy
	presence PresenceStore
	metrics  *metrics.Collector
}

// NewSessionManager wires a manager; presence and collector may be nil.
func NewSessionManager(strategy bot.Strategy, presence PresenceStore, collector *metrics.Collector) *SessionManager {
	return &SessionManager{
		Session:  make(map[string]*GameSession),
		strategy: strategy,
		presence: presence,
		metrics:  collector,
	}
}

// CreateSession starts a session in its own goroutine. A nil player2 means
// the computer takes the second slot.
func (sm *SessionManager) CreateSession(player1, player2 Conn) *GameSession {
	session := NewGameSession(uid.GenerateGameID(), player1, player2, sm.strategy)

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	sm.metrics.SessionStarted(string(session.Mode))
	sm.track(session.Info())
	log.Printf("[SESSION] Created session %s (%s)", session.GameID, session.Mode)

	sm.wg.Add(1)
	go func() {
		defer sm.wg.Done()
		summary := session.Run()
		sm.RemoveSession(session.GameID)
		sm.metrics.SessionEnded(string(summary.Outcome), summary.Abandoned(), summary.Moves, summary.InvalidMoves)
	}()

	return session
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) {
	sm.mu.Lock()
	delete(sm.Session, gameID)
	sm.mu.Unlock()

	if sm.presence != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := sm.presence.Untrack(ctx, gameID); err != nil {
			log.Printf("[SESSION] Failed to untrack session %s: %v", gameID, err)
		}
	}
}

// ActiveSessions lists live sessions, oldest first.
func (sm *SessionManager) ActiveSessions() []SessionInfo {
	sm.mu.RLock()
	infos := make([]SessionInfo, 0, len(sm.Session))
	for _, s := range sm.Session {
		infos = append(infos, s.Info())
	}
	sm.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].StartedAt.Before(infos[j].StartedAt)
	})
	return infos
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// Wait blocks until every spawned session has finished.
func (sm *SessionManager) Wait() {
	sm.wg.Wait()
}

func (sm *SessionManager) track(info SessionInfo) {
	if sm.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sm.presence.Track(ctx, info); err != nil {
		log.Printf("[SESSION] Failed to track session %s: %v", info.GameID, err)
	}
}
