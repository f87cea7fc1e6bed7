package game

import "errors"

// Game errors are reported only to the originating connection via the error
// event; none of them are fatal to a room. The texts are the human-readable
// messages clients display.
var (
	ErrRoomNotFound          = errors.New("Room not found")
	ErrRoomFull              = errors.New("Room is full")
	ErrGameAlreadyInProgress = errors.New("Game already in progress")
	ErrNotHost               = errors.New("Only the host can start the game")
	ErrInsufficientPlayers   = errors.New("Need at least 2 players to start")
	ErrInvalidWordSelection  = errors.New("Invalid word selection")
)

// ErrSendBufferFull marks a connection whose outbound buffer is saturated;
// the send is skipped, never retried.
var ErrSendBufferFull = errors.New("send-buffer-full")

// ErrConnectionClosed marks a write against a connection that has already
// been torn down.
var ErrConnectionClosed = errors.New("connection-closed")
