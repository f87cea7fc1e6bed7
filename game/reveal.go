package game

import (
	"math/rand"
	"unicode"
)

const maskRune = '_'

// maxRevealFraction caps how much of a word hints may ever disclose.
const maxRevealNumerator, maxRevealDenominator = 6, 10

// MaskWord replaces every letter with the placeholder, preserving
// non-alphabetic characters (spaces, hyphens) verbatim.
func MaskWord(word string) string {
	runes := []rune(word)
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = maskRune
		}
	}
	return string(runes)
}

// RevealString renders word with only the recorded positions in clear;
// every other letter stays masked.
func RevealString(word string, revealed map[int]bool) string {
	runes := []rune(word)
	for i, r := range runes {
		if unicode.IsLetter(r) && !revealed[i] {
			runes[i] = maskRune
		}
	}
	return string(runes)
}

// revealMore grows the revealed position set so the total shown reaches
// min(hints, floor(letterCount*0.6)), choosing the additional letter
// positions uniformly without replacement. Previously revealed positions are
// never retracted.
func revealMore(rng *rand.Rand, word string, hints int, revealed map[int]bool) {
	runes := []rune(word)
	var hidden []int
	letters := 0
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if !revealed[i] {
			hidden = append(hidden, i)
		}
	}

	target := hints
	if limit := letters * maxRevealNumerator / maxRevealDenominator; target > limit {
		target = limit
	}
	need := target - len(revealed)
	if need <= 0 || len(hidden) == 0 {
		return
	}
	rng.Shuffle(len(hidden), func(i, j int) {
		hidden[i], hidden[j] = hidden[j], hidden[i]
	})
	if need > len(hidden) {
		need = len(hidden)
	}
	for _, pos := range hidden[:need] {
		revealed[pos] = true
	}
}
