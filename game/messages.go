package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sketchparty/protocol"
)

// MessageLog is the append-only chat/system/guess-result feed of one room,
// replayed in full to a reconnecting player.
type MessageLog struct {
	entries []protocol.Message
}

func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

func (l *MessageLog) Append(msg protocol.Message) {
	l.entries = append(l.entries, msg)
}

// All returns the feed in append order. The slice is shared; callers only
// read it.
func (l *MessageLog) All() []protocol.Message {
	return l.entries
}

func (l *MessageLog) Len() int {
	return len(l.entries)
}

func newSystemMessage(text string) protocol.Message {
	return protocol.Message{
		ID:         uuid.NewString(),
		PlayerID:   protocol.SystemPlayerID,
		PlayerName: "System",
		Text:       text,
		Type:       protocol.MessageSystem,
		Timestamp:  time.Now().UnixMilli(),
	}
}

func newChatMessage(playerID, playerName, text string) protocol.Message {
	return protocol.Message{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Text:       text,
		Type:       protocol.MessageChat,
		Timestamp:  time.Now().UnixMilli(),
	}
}

func newCorrectGuessMessage(playerID, playerName string, points int) protocol.Message {
	return protocol.Message{
		ID:         uuid.NewString(),
		PlayerID:   playerID,
		PlayerName: playerName,
		Text:       fmt.Sprintf("%s guessed the word correctly! (+%d points)", playerName, points),
		Type:       protocol.MessageCorrectGuess,
		Timestamp:  time.Now().UnixMilli(),
	}
}
