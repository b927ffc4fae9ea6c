package game

import (
	"log"
	"time"

	"github.com/iamasit07/connect4-arena/internal/domain"
	"github.com/iamasit07/connect4-arena/internal/protocol"
	"github.com/iamasit07/connect4-arena/internal/service/bot"
)

// Conn is a human participant's message stream.
type Conn interface {
	Send(msg protocol.ServerMessage) error
	Receive() (protocol.Command, error)
	Close() error
}

// inbound is one command (or read failure) from a human slot.
type inbound struct {
	player domain.PlayerID
	cmd    protocol.Command
	err    error
}

// GameSession drives one match from the first turn notice to the final
// result. It owns its board and the connections handed to it.
type GameSession struct {
	GameID    string
	Mode      protocol.Mode
	CreatedAt time.Time

	game     *domain.Game
	conns    [2]Conn // indexed by PlayerID-1; nil marks the computer slot
	alive    [2]bool
	strategy bot.Strategy
	inbox    chan inbound
	done     chan struct{}
}

// NewGameSession pairs two humans, or one human with strategy when p2 is nil.
func NewGameSession(gameID string, p1, p2 Conn, strategy bot.Strategy) *GameSession {
	mode := protocol.ModePlayer
	if p2 == nil {
		mode = protocol.ModeComputer
	}
	return &GameSession{
		GameID:    gameID,
		Mode:      mode,
		CreatedAt: time.Now(),
		game:      domain.NewGame(),
		conns:     [2]Conn{p1, p2},
		alive:     [2]bool{true, p2 != nil},
		strategy:  strategy,
		inbox:     make(chan inbound, 4),
		done:      make(chan struct{}),
	}
}

func (gs *GameSession) Info() SessionInfo {
	return SessionInfo{GameID: gs.GameID, Mode: gs.Mode, StartedAt: gs.CreatedAt}
}

func (gs *GameSession) IsBot() bool {
	return gs.conns[1] == nil
}

func (gs *GameSession) conn(p domain.PlayerID) Conn {
	return gs.conns[p-1]
}

// Run plays the match to completion and closes every connection.
func (gs *GameSession) Run() Summary {
	defer gs.closeConnections()
	gs.startReaders()

	g := gs.game
	for {
		if quitter, ok := gs.pendingQuit(); !ok {
			return gs.abandon(quitter)
		}

		turn := g.CurrentPlayer
		if quitter, ok := gs.broadcast(protocol.TurnNotice(turn, g.LastValid)); !ok {
			return gs.abandon(quitter)
		}

		column, quitter, ok := gs.nextMove(turn)
		if !ok {
			return gs.abandon(quitter)
		}

		if _, err := g.MakeMove(column); err != nil {
			log.Printf("[SESSION] %s: player %d rejected column %d: %v", gs.GameID, turn, column, err)
			continue
		}

		if quitter, ok := gs.broadcast(protocol.BoardSnapshot(g.Board.Snapshot())); !ok {
			return gs.abandon(quitter)
		}

		if g.IsFinished() {
			return gs.finish()
		}
	}
}

// nextMove blocks until the acting player picks a column. ok is false when
// some human quit or dropped; quitter names them.
func (gs *GameSession) nextMove(turn domain.PlayerID) (column int, quitter domain.PlayerID, ok bool) {
	if gs.conn(turn) == nil {
		if quitter, ok := gs.pendingQuit(); !ok {
			return 0, quitter, false
		}
		return gs.strategy.ChooseColumn(gs.game.Board.Clone(), turn), domain.Empty, true
	}

	for in := range gs.inbox {
		column, accepted, quit := gs.handle(in, turn)
		if quit {
			return 0, in.player, false
		}
		if accepted {
			return column, domain.Empty, true
		}
	}
	return 0, turn, false
}

// pendingQuit drains what the humans sent while nobody was waiting on them,
// without blocking. Column choices sent ahead of a turn notice are dropped.
func (gs *GameSession) pendingQuit() (domain.PlayerID, bool) {
	for {
		select {
		case in := <-gs.inbox:
			if _, _, quit := gs.handle(in, domain.Empty); quit {
				return in.player, false
			}
		default:
			return domain.Empty, true
		}
	}
}

// handle interprets one inbound item. quit means its sender has left the
// match; accepted marks a column choice from the player on turn.
func (gs *GameSession) handle(in inbound, turn domain.PlayerID) (column int, accepted, quit bool) {
	if in.err != nil {
		log.Printf("[SESSION] %s: player %d transport failure: %v", gs.GameID, in.player, in.err)
		gs.alive[in.player-1] = false
		return 0, false, true
	}

	switch in.cmd.Kind {
	case protocol.CommandQuit:
		log.Printf("[SESSION] %s: player %d quit", gs.GameID, in.player)
		return 0, false, true
	case protocol.CommandColumnChoice:
		if in.player != turn {
			log.Printf("[SESSION] %s: dropping out-of-turn move from player %d", gs.GameID, in.player)
			return 0, false, false
		}
		return in.cmd.Column, true, false
	case protocol.CommandModeSelect:
		log.Printf("[SESSION] %s: unexpected %s from player %d", gs.GameID, in.cmd.Kind, in.player)
	default:
		log.Printf("[SESSION] %s: unknown command from player %d", gs.GameID, in.player)
	}
	return 0, false, true
}

// broadcast sends msg to every live human. A failed write marks that human
// gone but the others are still written to; the first failure is returned.
func (gs *GameSession) broadcast(msg protocol.ServerMessage) (domain.PlayerID, bool) {
	quitter := domain.Empty
	for _, p := range []domain.PlayerID{domain.Player1, domain.Player2} {
		conn := gs.conn(p)
		if conn == nil || !gs.alive[p-1] {
			continue
		}
		if err := conn.Send(msg); err != nil {
			log.Printf("[SESSION] %s: write %s to player %d failed: %v", gs.GameID, msg.Type, p, err)
			gs.alive[p-1] = false
			if quitter == domain.Empty {
				quitter = p
			}
		}
	}
	return quitter, quitter == domain.Empty
}

func (gs *GameSession) finish() Summary {
	outcome := gs.game.Outcome
	log.Printf("[SESSION] %s finished: %s after %d moves", gs.GameID, outcome, gs.game.MoveCount)
	gs.broadcast(protocol.Result(outcome))
	return gs.summary(domain.Empty)
}

// abandon ends the match because quitter left. Only the other human, if
// there is one and it is still reachable, hears about it.
func (gs *GameSession) abandon(quitter domain.PlayerID) Summary {
	log.Printf("[SESSION] %s abandoned by player %d", gs.GameID, quitter)
	gs.alive[quitter-1] = false
	other := quitter.Other()
	if c := gs.conn(other); c != nil && gs.alive[other-1] {
		if err := c.Send(protocol.QuitNotice(quitter)); err != nil {
			log.Printf("[SESSION] %s: quit notice to player %d failed: %v", gs.GameID, other, err)
		}
	}
	return gs.summary(quitter)
}

func (gs *GameSession) summary(quitter domain.PlayerID) Summary {
	return Summary{
		SessionInfo:  gs.Info(),
		Outcome:      gs.game.Outcome,
		QuitBy:       quitter,
		Moves:        gs.game.MoveCount,
		InvalidMoves: gs.game.Invalid,
		FinishedAt:   time.Now(),
	}
}

// startReaders pumps each human connection into the shared inbox so a quit
// from the player who is not on turn is seen straight away.
func (gs *GameSession) startReaders() {
	for _, p := range []domain.PlayerID{domain.Player1, domain.Player2} {
		if c := gs.conn(p); c != nil {
			go gs.readLoop(p, c)
		}
	}
}

func (gs *GameSession) readLoop(player domain.PlayerID, conn Conn) {
	for {
		cmd, err := conn.Receive()
		select {
		case gs.inbox <- inbound{player: player, cmd: cmd, err: err}:
		case <-gs.done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (gs *GameSession) closeConnections() {
	close(gs.done)
	for _, c := range gs.conns {
		if c != nil {
			c.Close()
		}
	}
}
