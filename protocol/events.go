package protocol

import "encoding/json"

// Message kinds appearing in the room feed.
const (
	MessageChat         = "chat"
	MessageSystem       = "system"
	MessageCorrectGuess = "correct-guess"
)

// SystemPlayerID authors system messages.
const SystemPlayerID = "system"

// Message is one entry of a room's feed. The full feed is replayed to a
// reconnecting player.
type Message struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	Timestamp  int64  `json:"timestamp"`
}

// PlayerState is the roster entry broadcast on any membership or drawing
// flag change.
type PlayerState struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Avatar    json.RawMessage `json:"avatar,omitempty"`
	Score     int             `json:"score"`
	IsDrawing bool            `json:"isDrawing"`
}

type RoomCreated struct {
	RoomID string `json:"roomId"`
}

type PlayerJoined struct {
	Players []PlayerState `json:"players"`
}

type GameStarted struct {
	IsPlaying    bool `json:"isPlaying"`
	TotalRounds  int  `json:"totalRounds"`
	CurrentRound int  `json:"currentRound"`
}

// WordChoices goes to the drawer only.
type WordChoices struct {
	Choices   []string `json:"choices"`
	TimeLimit int      `json:"timeLimit"`
}

// DrawerChoosing goes to everyone except the drawer.
type DrawerChoosing struct {
	CurrentRound      int    `json:"currentRound"`
	DrawingPlayerName string `json:"drawingPlayerName"`
	TimeLeft          int    `json:"timeLeft"`
}

// TurnStarted is sent per player; CurrentWord is populated only on the copy
// addressed to the drawer.
type TurnStarted struct {
	CurrentRound      int    `json:"currentRound"`
	TimeLeft          int    `json:"timeLeft"`
	DrawingPlayerID   string `json:"drawingPlayerId"`
	DrawingPlayerName string `json:"drawingPlayerName"`
	CurrentWord       string `json:"currentWord,omitempty"`
	RevealedWord      string `json:"revealedWord"`
	TurnNumber        int    `json:"turnNumber"`
	TotalTurns        int    `json:"totalTurns"`
}

type TimeUpdate struct {
	TimeLeft int `json:"timeLeft"`
}

type HintRevealed struct {
	RevealedWord string `json:"revealedWord"`
}

type PlayerGuessed struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

type TurnEnded struct {
	Scores      map[string]int `json:"scores"`
	CorrectWord string         `json:"correctWord"`
}

type GameEnded struct {
	FinalScores map[string]int `json:"finalScores"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
