package game

import (
	"encoding/json"

	"sketchparty/protocol"
)

// Player is one roster entry of a room. The id is the stable identity that
// survives reconnects; the avatar is opaque to the server. Exactly one player
// per room has IsDrawing set while a turn is active.
type Player struct {
	ID        string
	Name      string
	Avatar    json.RawMessage
	Score     int
	IsDrawing bool
}

// NewPlayer builds a roster entry from the client-supplied identity with a
// zeroed game state.
func NewPlayer(info protocol.PlayerInfo) *Player {
	return &Player{
		ID:     info.ID,
		Name:   info.Name,
		Avatar: info.Avatar,
	}
}

func (p *Player) state() protocol.PlayerState {
	return protocol.PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Score:     p.Score,
		IsDrawing: p.IsDrawing,
	}
}
