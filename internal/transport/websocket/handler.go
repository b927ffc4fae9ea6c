package websocket

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/metrics"
	"github.com/iamasit07/connect4-arena/internal/protocol"
	"github.com/iamasit07/connect4-arena/internal/service/matchmaking"
	"github.com/iamasit07/connect4-arena/pkg/useragent"
)

// Handler accepts participant connections and negotiates their mode.
type Handler struct {
	Matchmaking *matchmaking.MatchmakingQueue
	Upgrader    websocket.Upgrader

	metrics     *metrics.Collector
	nextAuxPort atomic.Int64
	wg          sync.WaitGroup
}

// NewHandler creates a handler. Aux ports are handed out starting at
// auxPortBase; an empty origin list accepts any origin.
func NewHandler(mq *matchmaking.MatchmakingQueue, auxPortBase int, allowedOrigins []string, collector *metrics.Collector) *Handler {
	h := &Handler{
		Matchmaking: mq,
		metrics:     collector,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.nextAuxPort.Store(int64(auxPortBase))
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	h.wg.Add(1)
	defer h.wg.Done()

	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	log.Printf("[WS] Participant connected from %s", useragent.Describe(r))

	h.negotiate(NewConn(ws, h.metrics))
}

// negotiate reads exactly one mode selection and hands the connection to
// the lobby. The connection belongs to a session from then on.
func (h *Handler) negotiate(conn *Conn) {
	cmd, err := conn.Receive()
	if err != nil {
		h.reject(conn, err)
		return
	}
	if cmd.Kind != protocol.CommandModeSelect {
		h.reject(conn, errors.New("expected mode selection, got "+cmd.Kind.String()))
		return
	}

	ack := func(identity domain.PlayerID) error {
		port := int(h.nextAuxPort.Add(1) - 1)
		log.Printf("[WS] %s mode acknowledged as player %d (aux port %d)", cmd.Mode, identity, port)
		return conn.Send(protocol.ModeAck(identity, port))
	}

	switch cmd.Mode {
	case protocol.ModeComputer:
		err = h.Matchmaking.RequestComputer(conn, ack)
	default:
		err = h.Matchmaking.RequestPlayer(conn, ack)
	}
	if err != nil {
		h.reject(conn, err)
	}
}

func (h *Handler) reject(conn *Conn, err error) {
	log.Printf("[WS] Negotiation failed: %v", err)
	h.metrics.HandshakeFailed(err.Error())

	var terr *TransportError
	if !errors.As(err, &terr) {
		msg := err.Error()
		if errors.Is(err, matchmaking.ErrQueueClosed) {
			msg = "server shutting down"
		}
		conn.Send(protocol.Error(msg))
	}
	conn.Close()
}

// Wait blocks until every in-flight negotiation has returned.
func (h *Handler) Wait() {
	h.wg.Wait()
}
