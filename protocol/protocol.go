// Package protocol defines the wire vocabulary between clients and the game
// server: a closed set of named events carried in JSON envelopes. Inbound
// payloads are decoded into typed variants here so malformed or unknown
// shapes never reach the game logic.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound event names (client -> server).
const (
	EventCreateRoom   = "create-room"
	EventJoinRoom     = "join-room"
	EventStartGame    = "start-game"
	EventWordSelected = "word-selected"
	EventSendMessage  = "send-message"
	EventLeaveRoom    = "leave-room"
	EventDraw         = "draw"
	EventClear        = "clear"
	EventUndo         = "undo"
	EventRedo         = "redo"
)

// Outbound event names (server -> client).
const (
	EventRoomCreated    = "room-created"
	EventPlayerJoined   = "player-joined"
	EventGameStarted    = "game-started"
	EventWordChoices    = "word-choices"
	EventDrawerChoosing = "drawer-choosing"
	EventTurnStarted    = "turn-started"
	EventTimeUpdate     = "time-update"
	EventHintRevealed   = "hint-revealed"
	EventNewMessage     = "new-message"
	EventPlayerGuessed  = "player-guessed"
	EventTurnEnded      = "turn-ended"
	EventGameEnded      = "game-ended"
	EventError          = "error"

	// Canvas relay targets for the draw/clear/undo/redo passthrough.
	EventDrawingData = "drawing-data"
	EventClearCanvas = "clear-canvas"
	EventUndoCanvas  = "undo-canvas"
	EventRedoCanvas  = "redo-canvas"
)

var (
	ErrUnknownEvent     = errors.New("unknown-event")
	ErrMalformedPayload = errors.New("malformed-payload")
)

// Envelope is the raw frame shape on the wire.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PlayerInfo is the client-supplied identity. The id must be stable across
// reconnects; the avatar is opaque to the server.
type PlayerInfo struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Avatar json.RawMessage `json:"avatar,omitempty"`
}

// Settings configures a room at creation time.
type Settings struct {
	TotalPlayers    int      `json:"totalPlayers"`
	DrawTime        int      `json:"drawTime"`
	TotalRounds     int      `json:"totalRounds"`
	WordCount       int      `json:"wordCount"`
	HintsCount      int      `json:"hintsCount"`
	CustomWords     []string `json:"customWords,omitempty"`
	CustomWordsOnly bool     `json:"customWordsOnly,omitempty"`
}

// Inbound is implemented by every decoded client->server payload.
type Inbound interface{ inbound() }

type CreateRoom struct {
	Player   PlayerInfo `json:"player"`
	Settings Settings   `json:"settings"`
}

type JoinRoom struct {
	Player PlayerInfo `json:"player"`
	RoomID string     `json:"roomId"`
}

type StartGame struct {
	RoomID string `json:"roomId"`
}

type WordSelected struct {
	RoomID       string `json:"roomId"`
	SelectedWord string `json:"selectedWord"`
}

type SendMessage struct {
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
}

type LeaveRoom struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// Relay carries an opaque canvas event. Only the room id is interpreted; the
// payload is forwarded verbatim to the other room members.
type Relay struct {
	Event  string
	RoomID string
	Data   json.RawMessage
}

func (CreateRoom) inbound()   {}
func (JoinRoom) inbound()     {}
func (StartGame) inbound()    {}
func (WordSelected) inbound() {}
func (SendMessage) inbound()  {}
func (LeaveRoom) inbound()    {}
func (Relay) inbound()        {}

// DecodeInbound parses a raw frame into its typed variant. Unknown event
// names and payloads that fail validation are rejected here.
func DecodeInbound(raw []byte) (Inbound, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	switch env.Event {
	case EventCreateRoom:
		var p CreateRoom
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.Player.ID == "" || p.Player.Name == "" {
			return nil, fmt.Errorf("%w: missing player identity", ErrMalformedPayload)
		}
		return p, nil
	case EventJoinRoom:
		var p JoinRoom
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.Player.ID == "" || p.Player.Name == "" || p.RoomID == "" {
			return nil, fmt.Errorf("%w: missing player identity or room id", ErrMalformedPayload)
		}
		return p, nil
	case EventStartGame:
		var p StartGame
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.RoomID == "" {
			return nil, fmt.Errorf("%w: missing room id", ErrMalformedPayload)
		}
		return p, nil
	case EventWordSelected:
		var p WordSelected
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.RoomID == "" || p.SelectedWord == "" {
			return nil, fmt.Errorf("%w: missing room id or word", ErrMalformedPayload)
		}
		return p, nil
	case EventSendMessage:
		var p SendMessage
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.RoomID == "" || p.PlayerID == "" {
			return nil, fmt.Errorf("%w: missing room or player id", ErrMalformedPayload)
		}
		return p, nil
	case EventLeaveRoom:
		var p LeaveRoom
		if err := unmarshalData(env.Data, &p); err != nil {
			return nil, err
		}
		if p.RoomID == "" || p.PlayerID == "" {
			return nil, fmt.Errorf("%w: missing room or player id", ErrMalformedPayload)
		}
		return p, nil
	case EventDraw, EventClear, EventUndo, EventRedo:
		var peek struct {
			RoomID string `json:"roomId"`
		}
		if err := unmarshalData(env.Data, &peek); err != nil {
			return nil, err
		}
		if peek.RoomID == "" {
			return nil, fmt.Errorf("%w: missing room id", ErrMalformedPayload)
		}
		return Relay{Event: env.Event, RoomID: peek.RoomID, Data: env.Data}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
}

func unmarshalData(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty data", ErrMalformedPayload)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return nil
}

// Encode frames an outbound event for the wire.
func Encode(event string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}

// RelayTarget maps an inbound canvas event to the outbound name the other
// room members receive.
func RelayTarget(event string) (string, bool) {
	switch event {
	case EventDraw:
		return EventDrawingData, true
	case EventClear:
		return EventClearCanvas, true
	case EventUndo:
		return EventUndoCanvas, true
	case EventRedo:
		return EventRedoCanvas, true
	}
	return "", false
}
