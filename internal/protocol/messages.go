// Package protocol defines the JSON messages exchanged with participants and
// decodes inbound frames into a closed set of commands.
package protocol

import (
	"encoding/json"
	"strings"

	"github.com/iamasit07/connect4-arena/internal/domain"
)

type MessageType string

const (
	// Server -> participant
	TypeModeAck    MessageType = "mode_ack"
	TypeTurn       MessageType = "turn"
	TypeBoard      MessageType = "board"
	TypeResult     MessageType = "result"
	TypeQuitNotice MessageType = "quit_notice"
	TypeError      MessageType = "error"

	// Participant -> server
	TypeMode MessageType = "mode"
	TypeMove MessageType = "move"
	TypeQuit MessageType = "quit"
)

// Mode is the opponent a participant asks for.
type Mode string

const (
	ModeComputer Mode = "computer"
	ModePlayer   Mode = "player"
)

// ParseMode accepts the mode names and their one-letter forms (C, P).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "computer", "c":
		return ModeComputer, true
	case "player", "p":
		return ModePlayer, true
	}
	return "", false
}

type ServerMessage struct {
	Type       MessageType         `json:"type"`
	YourPlayer domain.PlayerID     `json:"yourPlayer,omitempty"`
	AuxPort    int                 `json:"auxPort,omitempty"`
	Player     domain.PlayerID     `json:"player,omitempty"`
	Valid      *bool               `json:"valid,omitempty"`
	Board      [][]domain.PlayerID `json:"board,omitempty"`
	Outcome    domain.Outcome      `json:"outcome,omitempty"`
	WhoQuit    domain.PlayerID     `json:"whoQuit,omitempty"`
	Message    string              `json:"message,omitempty"`
}

type ClientMessage struct {
	Type   MessageType `json:"type"`
	Mode   string      `json:"mode,omitempty"`
	Column int         `json:"column"`
}

func ModeAck(identity domain.PlayerID, auxPort int) ServerMessage {
	return ServerMessage{Type: TypeModeAck, YourPlayer: identity, AuxPort: auxPort}
}

func TurnNotice(player domain.PlayerID, valid bool) ServerMessage {
	return ServerMessage{Type: TypeTurn, Player: player, Valid: &valid}
}

func BoardSnapshot(grid [][]domain.PlayerID) ServerMessage {
	return ServerMessage{Type: TypeBoard, Board: grid}
}

func Result(outcome domain.Outcome) ServerMessage {
	return ServerMessage{Type: TypeResult, Outcome: outcome}
}

func QuitNotice(whoQuit domain.PlayerID) ServerMessage {
	return ServerMessage{Type: TypeQuitNotice, WhoQuit: whoQuit}
}

func Error(message string) ServerMessage {
	return ServerMessage{Type: TypeError, Message: message}
}

// IsValid reads the turn notice flag; a missing flag counts as valid.
func (m ServerMessage) IsValid() bool {
	return m.Valid == nil || *m.Valid
}

// CommandKind tags the commands a participant may send.
type CommandKind int

const (
	CommandModeSelect CommandKind = iota + 1
	CommandColumnChoice
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandModeSelect:
		return "mode_select"
	case CommandColumnChoice:
		return "column_choice"
	case CommandQuit:
		return "quit"
	}
	return "unknown"
}

// Command is a decoded participant message. Mode is set only for
// CommandModeSelect and Column only for CommandColumnChoice.
type Command struct {
	Kind   CommandKind
	Mode   Mode
	Column int
}

func SelectMode(mode Mode) Command {
	return Command{Kind: CommandModeSelect, Mode: mode}
}

func ChooseColumn(column int) Command {
	return Command{Kind: CommandColumnChoice, Column: column}
}

func Quit() Command {
	return Command{Kind: CommandQuit}
}

// DecodeCommand turns one inbound frame into a Command.
func DecodeCommand(data []byte) (Command, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Command{}, ErrMalformed
	}

	switch msg.Type {
	case TypeMode:
		mode, ok := ParseMode(msg.Mode)
		if !ok {
			return Command{}, ErrUnknownMode
		}
		return SelectMode(mode), nil
	case TypeMove:
		return ChooseColumn(msg.Column), nil
	case TypeQuit:
		return Quit(), nil
	}
	return Command{}, ErrUnknownType
}

// Encode is the inverse of DecodeCommand, used by clients.
func (c Command) Encode() ([]byte, error) {
	var msg ClientMessage
	switch c.Kind {
	case CommandModeSelect:
		msg = ClientMessage{Type: TypeMode, Mode: string(c.Mode)}
	case CommandColumnChoice:
		msg = ClientMessage{Type: TypeMove, Column: c.Column}
	case CommandQuit:
		msg = ClientMessage{Type: TypeQuit}
	default:
		return nil, ErrUnknownType
	}
	return json.Marshal(msg)
}

const (
	ErrMalformed   domain.Error = "malformed message"
	ErrUnknownType domain.Error = "unknown message type"
	ErrUnknownMode domain.Error = "unknown mode"
)
