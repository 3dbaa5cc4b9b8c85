package convert

import (
	"errors"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
)

// ErrInvalidRatio is returned by Mix for ratios outside [0, 1].
var ErrInvalidRatio = errors.New("convert: mix ratio must be in [0, 1]")

// minMixRunes is the length a word must exceed to be eligible for mixing.
const minMixRunes = 3

// Mix builds a mixed-dialect text from text written in primary. Each
// whitespace-separated word longer than three characters is converted to
// secondary with probability ratio; shorter words are kept. The result joins
// the words with single spaces.
//
// rng supplies the draws, one per eligible word, so a seeded source gives
// reproducible output. A nil rng uses the global source.
func (c *Converter) Mix(text, primary, secondary string, ratio float64, rng *rand.Rand) (string, error) {
	if !(ratio >= 0 && ratio <= 1) {
		return "", ErrInvalidRatio
	}
	if _, err := c.store.Profile(primary); err != nil {
		return "", err
	}
	target, err := c.store.Profile(secondary)
	if err != nil {
		return "", err
	}

	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}

	words := strings.Fields(text)
	for i, w := range words {
		if utf8.RuneCountInString(orth.NFC(w)) <= minMixRunes {
			continue
		}
		if draw() < ratio && primary != secondary {
			words[i] = apply(target, w)
		}
	}
	return strings.Join(words, " "), nil
}
