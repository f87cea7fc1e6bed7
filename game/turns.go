package game

import (
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"sketchparty/protocol"
	"sketchparty/words"
)

// Fixed pacing of the state machine. The short delays let clients render
// the transition screens before the next phase begins.
const (
	wordChoiceSeconds = 15
	gameStartDelay    = 2 * time.Second
	nextTurnDelay     = 3 * time.Second
	nextRoundDelay    = 5 * time.Second
)

// turnActive reports whether a word is currently being drawn.
func turnActive(r *Room) bool {
	return r.Game.CurrentWord != "" && !r.Game.ChoosingWord
}

// schedulePending arms the room's one-shot delayed transition, cancelling a
// previously armed one. The callback re-resolves the room at fire time; a
// deleted room turns the transition into a no-op.
func (e *Engine) schedulePending(r *Room, d time.Duration, fn func(*Room)) {
	r.cancelPending()
	roomID := r.ID
	r.pending = e.after(d, func() {
		room, ok := e.registry.Get(roomID)
		if !ok {
			return
		}
		room.pending = nil
		fn(room)
	})
}

// startRound advances the round counter, clears round-scoped bookkeeping and
// hands over to the first turn.
func (e *Engine) startRound(r *Room) {
	g := &r.Game
	g.CurrentRound++
	g.drawnThisRound = make(map[string]bool)
	g.totalTurns = len(r.Players)
	g.HintsRevealed = 0
	g.CurrentWord = ""
	g.WordChoices = nil
	g.ChoosingWord = false

	log.Info().Str("room", r.ID).Int("round", g.CurrentRound).Int("turns", g.totalTurns).Msg("round started")
	e.startNextTurn(r)
}

// startNextTurn rotates the drawer, offers word choices privately and arms
// the choice countdown.
func (e *Engine) startNextTurn(r *Room) {
	if len(r.Players) == 0 {
		return
	}
	g := &r.Game
	g.CurrentDrawerIndex = (g.CurrentDrawerIndex + 1) % len(r.Players)
	drawer := r.Players[g.CurrentDrawerIndex]
	g.drawnThisRound[drawer.ID] = true

	g.ChoosingWord = true
	g.TimeLeft = wordChoiceSeconds
	g.CurrentWord = ""
	g.HintsRevealed = 0
	g.revealedPositions = make(map[int]bool)
	g.correctGuessOrder = nil
	g.wrongGuessers = make(map[string]bool)
	g.WordChoices = words.Pick(e.rng, r.wordList, r.Settings.WordCount)

	for _, p := range r.Players {
		p.IsDrawing = p.ID == drawer.ID
	}

	log.Info().Str("room", r.ID).Str("drawer", drawer.Name).Strs("choices", g.WordChoices).Msg("turn started, drawer choosing")

	e.broadcastRoster(r)
	e.sendTo(drawer.ID, protocol.EventWordChoices, protocol.WordChoices{
		Choices:   g.WordChoices,
		TimeLimit: wordChoiceSeconds,
	})
	for _, p := range r.Players {
		if p.ID == drawer.ID {
			continue
		}
		e.sendTo(p.ID, protocol.EventDrawerChoosing, protocol.DrawerChoosing{
			CurrentRound:      g.CurrentRound,
			DrawingPlayerName: drawer.Name,
			TimeLeft:          wordChoiceSeconds,
		})
	}

	r.cancelChoiceTimer()
	roomID := r.ID
	var h *TimerHandle
	h = e.every(time.Second, func() { e.choiceTick(roomID, h) })
	r.choiceTimer = h
}

// choiceTick runs the word-choice countdown. On expiry the first offered
// word is selected for an undecided drawer.
func (e *Engine) choiceTick(roomID string, h *TimerHandle) {
	r, ok := e.registry.Get(roomID)
	if !ok {
		return
	}
	if r.choiceTimer != h || !r.Game.ChoosingWord {
		return
	}
	r.Game.TimeLeft--
	e.broadcast(r, protocol.EventTimeUpdate, protocol.TimeUpdate{TimeLeft: r.Game.TimeLeft})
	if r.Game.TimeLeft > 0 {
		return
	}
	if len(r.Game.WordChoices) > 0 {
		e.selectWord(r, r.Game.WordChoices[0])
		return
	}
	e.endTurn(r)
}

// selectWord accepts a word from the current choices, announces the turn and
// arms the draw countdown. Returns false without touching state when the
// word is not on offer or no choice phase is active.
func (e *Engine) selectWord(r *Room, word string) bool {
	g := &r.Game
	if !g.ChoosingWord || !slices.Contains(g.WordChoices, word) {
		return false
	}
	r.cancelChoiceTimer()

	g.ChoosingWord = false
	g.CurrentWord = word
	g.WordChoices = nil
	g.TimeLeft = r.Settings.DrawTime
	g.HintsRevealed = 0
	g.revealedPositions = make(map[int]bool)

	drawer := r.drawer()
	masked := MaskWord(word)

	log.Info().Str("room", r.ID).Str("word", word).Msg("word selected")

	for _, p := range r.Players {
		payload := protocol.TurnStarted{
			CurrentRound: g.CurrentRound,
			TimeLeft:     g.TimeLeft,
			RevealedWord: masked,
			TurnNumber:   len(g.drawnThisRound),
			TotalTurns:   g.totalTurns,
		}
		if drawer != nil {
			payload.DrawingPlayerID = drawer.ID
			payload.DrawingPlayerName = drawer.Name
			if p.ID == drawer.ID {
				payload.CurrentWord = word
			}
		}
		e.sendTo(p.ID, protocol.EventTurnStarted, payload)
	}

	r.cancelDrawTimer()
	roomID := r.ID
	var h *TimerHandle
	h = e.every(time.Second, func() { e.drawTick(roomID, h) })
	r.drawTimer = h
	return true
}

// drawTick runs the draw countdown: broadcasts the clock, reveals hints on
// schedule and ends the turn at zero.
func (e *Engine) drawTick(roomID string, h *TimerHandle) {
	r, ok := e.registry.Get(roomID)
	if !ok {
		return
	}
	if r.drawTimer != h || !turnActive(r) {
		return
	}
	g := &r.Game
	g.TimeLeft--
	e.broadcast(r, protocol.EventTimeUpdate, protocol.TimeUpdate{TimeLeft: g.TimeLeft})

	if s := r.Settings; s.HintsCount > 0 {
		interval := s.DrawTime / (s.HintsCount + 1)
		if interval > 0 {
			due := (s.DrawTime - g.TimeLeft) / interval
			if due > g.HintsRevealed && due <= s.HintsCount {
				g.HintsRevealed = due
				revealMore(e.rng, g.CurrentWord, due, g.revealedPositions)
				e.broadcast(r, protocol.EventHintRevealed, protocol.HintRevealed{
					RevealedWord: RevealString(g.CurrentWord, g.revealedPositions),
				})
			}
		}
	}

	if g.TimeLeft <= 0 {
		e.endTurn(r)
	}
}

// endTurn settles a turn: drawer bonus, score broadcast, turn-state reset,
// then either the next turn or the next round, or the end of the game.
// endTurn is also reached early when every guesser has the word or the
// drawer departs, so all three timers are cancelled here.
func (e *Engine) endTurn(r *Room) {
	r.cancelChoiceTimer()
	r.cancelDrawTimer()
	r.cancelPending()

	g := &r.Game
	if n := len(g.correctGuessOrder); n > 0 {
		for _, p := range r.Players {
			if p.IsDrawing {
				p.Score += e.scoring.DrawerBonus(n)
				break
			}
		}
	}
	for _, p := range r.Players {
		p.IsDrawing = false
	}

	log.Info().Str("room", r.ID).Str("word", g.CurrentWord).Int("guessers", len(g.correctGuessOrder)).Msg("turn ended")

	e.broadcast(r, protocol.EventTurnEnded, protocol.TurnEnded{
		Scores:      r.scores(),
		CorrectWord: g.CurrentWord,
	})
	e.broadcastRoster(r)

	g.CurrentWord = ""
	g.WordChoices = nil
	g.ChoosingWord = false
	g.TimeLeft = 0
	g.HintsRevealed = 0
	g.revealedPositions = make(map[int]bool)
	g.correctGuessOrder = nil
	g.wrongGuessers = make(map[string]bool)

	if r.roundComplete() {
		if g.CurrentRound >= r.Settings.TotalRounds {
			e.endGame(r)
			return
		}
		e.schedulePending(r, nextRoundDelay, e.startRound)
		return
	}
	e.schedulePending(r, nextTurnDelay, e.startNextTurn)
}

// endGame publishes the final scores and returns the room to a state where
// the host can start again.
func (e *Engine) endGame(r *Room) {
	r.cancelAllTimers()
	g := &r.Game
	g.IsPlaying = false
	g.CurrentDrawerIndex = -1
	g.drawnThisRound = make(map[string]bool)
	g.totalTurns = 0

	log.Info().Str("room", r.ID).Int("rounds", g.CurrentRound).Msg("game ended")

	e.broadcast(r, protocol.EventGameEnded, protocol.GameEnded{FinalScores: r.scores()})
}
