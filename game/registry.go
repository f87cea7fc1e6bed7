package game

import (
	"math/rand"
	"strings"

	"sketchparty/protocol"
	"sketchparty/words"
)

const (
	roomIDLength   = 6
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RoomRegistry owns the live rooms of one process. It is created by the
// entry point and touched only from the engine loop.
type RoomRegistry struct {
	rooms map[string]*Room
	rng   *rand.Rand
}

func NewRoomRegistry(rng *rand.Rand) *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room), rng: rng}
}

// Create builds a room with a fresh code and seats the host at index 0.
func (reg *RoomRegistry) Create(settings protocol.Settings, host *Player) *Room {
	list := words.Build(settings.CustomWords, settings.CustomWordsOnly)
	if len(list) == 0 {
		list = words.Default()
	}
	room := &Room{
		ID:       reg.generateID(),
		Players:  []*Player{host},
		Settings: normalizeSettings(settings),
		Game:     newGameState(),
		wordList: list,
		log:      NewMessageLog(),
	}
	reg.rooms[room.ID] = room
	return room
}

// Join seats a player in a room. A player whose id already sits in the
// roster is treated as a reconnect and bypasses the capacity and playing
// checks; reconnect reports true in that case.
func (reg *RoomRegistry) Join(roomID string, info protocol.PlayerInfo) (room *Room, reconnect bool, err error) {
	room, ok := reg.Get(roomID)
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	if room.player(info.ID) != nil {
		return room, true, nil
	}
	if room.Game.IsPlaying {
		return nil, false, ErrGameAlreadyInProgress
	}
	if len(room.Players) >= room.Settings.TotalPlayers {
		return nil, false, ErrRoomFull
	}
	room.Players = append(room.Players, NewPlayer(info))
	return room, false, nil
}

// Leave removes a player from a room and reports the removed entry, its
// former roster index and whether the room is now empty. The caller is
// responsible for timer cleanup and the Remove call on an empty room.
func (reg *RoomRegistry) Leave(roomID, playerID string) (room *Room, removed *Player, index int, empty bool) {
	room, ok := reg.Get(roomID)
	if !ok {
		return nil, nil, -1, false
	}
	index = room.indexOf(playerID)
	if index == -1 {
		return room, nil, -1, false
	}
	removed = room.Players[index]
	room.Players = append(room.Players[:index], room.Players[index+1:]...)
	return room, removed, index, len(room.Players) == 0
}

func (reg *RoomRegistry) Get(id string) (*Room, bool) {
	room, ok := reg.rooms[strings.ToUpper(id)]
	return room, ok
}

func (reg *RoomRegistry) Remove(id string) {
	delete(reg.rooms, strings.ToUpper(id))
}

// RoomOf finds the room whose roster contains playerID; connection loss only
// knows the player identity.
func (reg *RoomRegistry) RoomOf(playerID string) (*Room, bool) {
	for _, room := range reg.rooms {
		if room.player(playerID) != nil {
			return room, true
		}
	}
	return nil, false
}

func (reg *RoomRegistry) Len() int {
	return len(reg.rooms)
}

// generateID produces a short shareable code, regenerating on collision
// against the live rooms.
func (reg *RoomRegistry) generateID() string {
	for {
		code := make([]byte, roomIDLength)
		for i := range code {
			code[i] = roomIDAlphabet[reg.rng.Intn(len(roomIDAlphabet))]
		}
		id := string(code)
		if _, taken := reg.rooms[id]; !taken {
			return id
		}
	}
}
