package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchparty/protocol"
)

func newTestRegistry() *RoomRegistry {
	return NewRoomRegistry(rand.New(rand.NewSource(11)))
}

func player(id string) protocol.PlayerInfo {
	return protocol.PlayerInfo{ID: id, Name: id}
}

func TestCreateRoomSeatsHost(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()

	room := reg.Create(protocol.Settings{}, NewPlayer(player("alice")))

	assert.Len(t, room.ID, roomIDLength)
	assert.Equal(t, strings.ToUpper(room.ID), room.ID)
	require.Len(t, room.Players, 1)
	assert.Equal(t, room.Players[0], room.host())
	assert.Equal(t, 1, reg.Len())

	// Zeroed settings fall back to the defaults.
	assert.Equal(t, 8, room.Settings.TotalPlayers)
	assert.Equal(t, 80, room.Settings.DrawTime)
	assert.Equal(t, 3, room.Settings.TotalRounds)
	assert.Equal(t, 3, room.Settings.WordCount)
}

func TestCreateRoomCustomWords(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()

	custom := []string{"gopher", "goroutine"}
	room := reg.Create(protocol.Settings{CustomWords: custom, CustomWordsOnly: true}, NewPlayer(player("alice")))
	assert.Equal(t, custom, room.wordList)

	// Custom-only with no custom words falls back to the built-in corpus.
	room = reg.Create(protocol.Settings{CustomWordsOnly: true}, NewPlayer(player("bob")))
	assert.NotEmpty(t, room.wordList)
}

func TestRoomCodesAreUnique(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		room := reg.Create(protocol.Settings{}, NewPlayer(player("p")))
		require.False(t, seen[room.ID], "duplicate code %s", room.ID)
		seen[room.ID] = true
	}
}

func TestJoinOrder(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	room := reg.Create(protocol.Settings{TotalPlayers: 2}, NewPlayer(player("alice")))

	_, _, err := reg.Join("NOSUCH", player("bob"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	joined, reconnect, err := reg.Join(room.ID, player("bob"))
	require.NoError(t, err)
	assert.False(t, reconnect)
	assert.Same(t, room, joined)

	_, _, err = reg.Join(room.ID, player("carol"))
	assert.ErrorIs(t, err, ErrRoomFull)

	// A member rejoining is a reconnect and bypasses the capacity check.
	joined, reconnect, err = reg.Join(room.ID, player("bob"))
	require.NoError(t, err)
	assert.True(t, reconnect)
	assert.Len(t, joined.Players, 2)

	room.Game.IsPlaying = true
	_, _, err = reg.Join(room.ID, player("dave"))
	assert.ErrorIs(t, err, ErrGameAlreadyInProgress)

	// The playing check does not block a reconnect either.
	_, reconnect, err = reg.Join(room.ID, player("alice"))
	require.NoError(t, err)
	assert.True(t, reconnect)
}

func TestJoinLowercaseCode(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	room := reg.Create(protocol.Settings{}, NewPlayer(player("alice")))

	joined, _, err := reg.Join(strings.ToLower(room.ID), player("bob"))
	require.NoError(t, err)
	assert.Same(t, room, joined)
}

func TestLeave(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	room := reg.Create(protocol.Settings{}, NewPlayer(player("alice")))
	_, _, err := reg.Join(room.ID, player("bob"))
	require.NoError(t, err)

	got, removed, index, empty := reg.Leave(room.ID, "alice")
	assert.Same(t, room, got)
	assert.Equal(t, "alice", removed.ID)
	assert.Equal(t, 0, index)
	assert.False(t, empty)
	// The next player inherits the host seat.
	assert.Equal(t, "bob", room.host().ID)

	_, removed, index, _ = reg.Leave(room.ID, "nobody")
	assert.Nil(t, removed)
	assert.Equal(t, -1, index)

	_, removed, _, empty = reg.Leave(room.ID, "bob")
	assert.Equal(t, "bob", removed.ID)
	assert.True(t, empty)
}

func TestRoomOf(t *testing.T) {
	t.Parallel()
	reg := newTestRegistry()
	room := reg.Create(protocol.Settings{}, NewPlayer(player("alice")))

	got, ok := reg.RoomOf("alice")
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = reg.RoomOf("nobody")
	assert.False(t, ok)

	reg.Remove(room.ID)
	_, ok = reg.RoomOf("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}
