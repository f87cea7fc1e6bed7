// Package words holds the built-in drawing corpus and the unbiased choice
// picker used to offer words to a drawer.
package words

import (
	"bufio"
	"bytes"
	_ "embed"
	"math/rand"
)

//go:embed words.txt
var corpus []byte

// Default returns a fresh copy of the built-in word list, one word per line
// of the embedded corpus.
func Default() []string {
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(corpus))
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			words = append(words, line)
		}
	}
	return words
}

// Build assembles the active list for a room: the built-in corpus extended
// with custom words, or the custom words alone.
func Build(custom []string, customOnly bool) []string {
	if customOnly {
		return append([]string(nil), custom...)
	}
	return append(Default(), custom...)
}

// Pick draws count unique words from list without replacement via a
// shuffled copy. Fewer than count are returned when the list is short.
func Pick(rng *rand.Rand, list []string, count int) []string {
	shuffled := append([]string(nil), list...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
