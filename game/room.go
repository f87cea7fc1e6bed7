package game

import (
	"sketchparty/protocol"
)

// Settings is the normalized per-room configuration.
type Settings struct {
	TotalPlayers int
	DrawTime     int // seconds
	TotalRounds  int
	WordCount    int
	HintsCount   int
}

func normalizeSettings(p protocol.Settings) Settings {
	s := Settings{
		TotalPlayers: p.TotalPlayers,
		DrawTime:     p.DrawTime,
		TotalRounds:  p.TotalRounds,
		WordCount:    p.WordCount,
		HintsCount:   p.HintsCount,
	}
	if s.TotalPlayers < 2 {
		s.TotalPlayers = 8
	}
	if s.DrawTime < 10 {
		s.DrawTime = 80
	}
	if s.TotalRounds < 1 {
		s.TotalRounds = 3
	}
	if s.WordCount < 1 {
		s.WordCount = 3
	}
	if s.HintsCount < 0 {
		s.HintsCount = 0
	}
	return s
}

// GameState is the per-room play state. Turn-scoped fields are reset by the
// state machine between turns; round-scoped fields between rounds.
type GameState struct {
	IsPlaying          bool
	CurrentRound       int
	CurrentDrawerIndex int
	CurrentWord        string
	WordChoices        []string
	ChoosingWord       bool
	TimeLeft           int
	HintsRevealed      int

	// revealedPositions accumulates the letter indices shown in clear over
	// one turn so a later hint never hides an earlier one.
	revealedPositions map[int]bool

	// drawnThisRound detects round completion; totalTurns is the roster size
	// captured when the round started.
	drawnThisRound map[string]bool
	totalTurns     int

	// correctGuessOrder keys the position bonus; wrongGuessers limits the
	// wrong-guess penalty to one per player per turn.
	correctGuessOrder []string
	wrongGuessers     map[string]bool
}

func newGameState() GameState {
	return GameState{
		CurrentDrawerIndex: -1,
		revealedPositions:  make(map[int]bool),
		drawnThisRound:     make(map[string]bool),
		wrongGuessers:      make(map[string]bool),
	}
}

// Room is one isolated game session. The player at index 0 is permanently
// the host. A room with zero players is deleted synchronously by the engine.
type Room struct {
	ID       string
	Players  []*Player
	Settings Settings
	Game     GameState

	wordList []string
	log      *MessageLog

	// Active timer handles. Every transition that supersedes one of these
	// must cancel it before scheduling a replacement; a stale timer left
	// running produces duplicate transitions.
	choiceTimer *TimerHandle
	drawTimer   *TimerHandle
	pending     *TimerHandle
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) indexOf(id string) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// host is the player at roster index 0.
func (r *Room) host() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	return r.Players[0]
}

func (r *Room) drawer() *Player {
	i := r.Game.CurrentDrawerIndex
	if i < 0 || i >= len(r.Players) {
		return nil
	}
	return r.Players[i]
}

func (r *Room) roster() []protocol.PlayerState {
	states := make([]protocol.PlayerState, len(r.Players))
	for i, p := range r.Players {
		states[i] = p.state()
	}
	return states
}

func (r *Room) scores() map[string]int {
	scores := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		scores[p.ID] = p.Score
	}
	return scores
}

// roundComplete reports whether every current roster member has drawn this
// round. Departed players leave stale entries in drawnThisRound; coverage is
// judged against the live roster only.
func (r *Room) roundComplete() bool {
	for _, p := range r.Players {
		if !r.Game.drawnThisRound[p.ID] {
			return false
		}
	}
	return true
}

// everyoneGuessed reports whether all non-drawing players have guessed the
// word this turn.
func (r *Room) everyoneGuessed() bool {
	guessed := make(map[string]bool, len(r.Game.correctGuessOrder))
	for _, id := range r.Game.correctGuessOrder {
		guessed[id] = true
	}
	for _, p := range r.Players {
		if p.IsDrawing {
			continue
		}
		if !guessed[p.ID] {
			return false
		}
	}
	return true
}

func (r *Room) hasGuessed(playerID string) bool {
	for _, id := range r.Game.correctGuessOrder {
		if id == playerID {
			return true
		}
	}
	return false
}

func (r *Room) cancelChoiceTimer() {
	if r.choiceTimer != nil {
		r.choiceTimer.Cancel()
		r.choiceTimer = nil
	}
}

func (r *Room) cancelDrawTimer() {
	if r.drawTimer != nil {
		r.drawTimer.Cancel()
		r.drawTimer = nil
	}
}

func (r *Room) cancelPending() {
	if r.pending != nil {
		r.pending.Cancel()
		r.pending = nil
	}
}

// cancelAllTimers stops every active timer; called when a room is torn down
// so nothing for that room fires again.
func (r *Room) cancelAllTimers() {
	r.cancelChoiceTimer()
	r.cancelDrawTimer()
	r.cancelPending()
}
