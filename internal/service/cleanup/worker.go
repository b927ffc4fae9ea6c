package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/service/game"
)

type SessionSource interface {
	ActiveSessions() []game.SessionInfo
}

// PresenceRefresher keeps externally mirrored sessions from expiring.
type PresenceRefresher interface {
	Refresh(ctx context.Context, infos []game.SessionInfo) error
}

type Worker struct {
	Sessions SessionSource
	Presence PresenceRefresher // nil when presence is disabled
	Metrics  *metrics.Collector
	Interval time.Duration
}

func NewWorker(sessions SessionSource, presence PresenceRefresher, collector *metrics.Collector, interval time.Duration) *Worker {
	return &Worker{Sessions: sessions, Presence: presence, Metrics: collector, Interval: interval}
}

// Start runs the worker in the background until ctx is cancelled. The
// returned channel closes once it has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	log.Println("[STATS] Background worker started")
	return done
}

// Run ticks every Interval until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)
		case <-ctx.Done():
			log.Println("[STATS] Background worker stopped")
			return
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	active := w.Sessions.ActiveSessions()

	if w.Presence != nil && len(active) > 0 {
		if err := w.Presence.Refresh(ctx, active); err != nil {
			log.Printf("[STATS] Error refreshing presence: %v", err)
			w.Metrics.RecordError(err.Error())
		}
	}

	s := w.Metrics.Snapshot()
	log.Printf("[STATS] live=%d total=%d p1=%d p2=%d tie=%d abandoned=%d conns=%d",
		len(active), s.SessionsTotal, s.P1Wins, s.P2Wins, s.Ties, s.Abandoned, s.ConnectionsActive)
}
