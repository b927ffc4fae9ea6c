package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/service/game"
)

// SessionLister is the read side of the session manager.
type SessionLister interface {
	ActiveSessions() []game.SessionInfo
	Count() int
}

type StatusHandler struct {
	Sessions SessionLister
	Metrics  *metrics.Collector
	Version  string
}

func NewStatusHandler(sessions SessionLister, collector *metrics.Collector, version string) *StatusHandler {
	return &StatusHandler{Sessions: sessions, Metrics: collector, Version: version}
}

type liveSessionResponse struct {
	GameID          string `json:"gameId"`
	Mode            string `json:"mode"`
	StartedAt       string `json:"startedAt"`
	DurationSeconds int64  `json:"durationSeconds"`
}

// GetLiveSessions returns every session still being played, oldest first
func (h *StatusHandler) GetLiveSessions(c *gin.Context) {
	active := h.Sessions.ActiveSessions()

	now := time.Now()
	response := make([]liveSessionResponse, 0, len(active))
	for _, s := range active {
		response = append(response, liveSessionResponse{
			GameID:          s.GameID,
			Mode:            string(s.Mode),
			StartedAt:       s.StartedAt.UTC().Format(time.RFC3339),
			DurationSeconds: int64(now.Sub(s.StartedAt).Seconds()),
		})
	}

	c.JSON(http.StatusOK, response)
}

func (h *StatusHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Metrics.Snapshot())
}

func (h *StatusHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  h.Version,
		"sessions": h.Sessions.Count(),
	})
}
