package game

import "strings"

// ScoringConfig holds the tunable point values. Scores are mutated only
// through the Apply helpers below so every score is a deterministic function
// of round context.
type ScoringConfig struct {
	// GuessBase is awarded for any correct guess.
	GuessBase int
	// MaxTimeBonus is the bonus for a guess at full remaining time, scaled
	// linearly down to zero as the clock runs out.
	MaxTimeBonus int
	// PositionBonus rewards guess order: index 0 for the first correct
	// guesser, and so on. Positions beyond the table earn nothing.
	PositionBonus []int
	// HintPenalty is subtracted per hint already revealed.
	HintPenalty int
	// MinGuessPoints floors a correct guess so it is never worthless.
	MinGuessPoints int
	// WrongGuessPenalty is charged once per player per turn; the score never
	// drops below zero.
	WrongGuessPenalty int
	// DrawerBonusPerGuesser pays the drawer at turn end per player who
	// guessed the word.
	DrawerBonusPerGuesser int
}

func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		GuessBase:             100,
		MaxTimeBonus:          50,
		PositionBonus:         []int{25, 15, 10, 5},
		HintPenalty:           10,
		MinGuessPoints:        10,
		WrongGuessPenalty:     5,
		DrawerBonusPerGuesser: 25,
	}
}

// CorrectGuessPoints computes the award for a first correct guess this turn.
// position is zero-based guess order.
func (c ScoringConfig) CorrectGuessPoints(timeLeft, drawTime, position, hintsRevealed int) int {
	points := c.GuessBase
	if drawTime > 0 && timeLeft > 0 {
		points += c.MaxTimeBonus * timeLeft / drawTime
	}
	if position >= 0 && position < len(c.PositionBonus) {
		points += c.PositionBonus[position]
	}
	points -= hintsRevealed * c.HintPenalty
	if points < c.MinGuessPoints {
		points = c.MinGuessPoints
	}
	return points
}

// WrongGuessScore returns the score after the one-time wrong-guess penalty,
// floored at zero.
func (c ScoringConfig) WrongGuessScore(current int) int {
	next := current - c.WrongGuessPenalty
	if next < 0 {
		next = 0
	}
	return next
}

// DrawerBonus pays the drawer proportionally to how many players guessed the
// word; zero when nobody did.
func (c ScoringConfig) DrawerBonus(correctGuessers int) int {
	if correctGuessers <= 0 {
		return 0
	}
	return correctGuessers * c.DrawerBonusPerGuesser
}

// IsCorrectGuess matches a chat text against the secret word:
// case-insensitive, whitespace-trimmed, exact. No fuzzy matching.
func IsCorrectGuess(text, word string) bool {
	if word == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(word))
}
