// Package dialect scores Ewe text against dialect profiles, detects the
// dominant dialect, and splits mixed text into dialect-homogeneous spans.
//
// Scoring combines two feature channels per profile:
//
//   - Lexical: every word of the text that belongs to the profile's
//     signature set adds the profile weight (so a word seen n times adds
//     n times the weight).
//   - Phonological: every match of a profile pattern in the text adds half
//     the profile weight.
//
// Detection picks the highest total. Ties, including texts that score zero
// everywhere, go to the dialect declared first in the resource manifest.
//
// A Detector only reads its resource.Store and is safe for concurrent use by
// multiple goroutines.
package dialect

import (
	"cmp"
	"slices"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tokenizer"
)

// phonologicalFactor scales pattern matches against lexical hits: a
// signature word is stronger evidence than a sound pattern.
const phonologicalFactor = 0.5

// Score is the raw evidence for one dialect.
type Score struct {
	Dialect      string  `json:"dialect"`
	Lexical      float64 `json:"lexical"`
	Phonological float64 `json:"phonological"`
}

// Total returns the combined score.
func (s Score) Total() float64 {
	return s.Lexical + s.Phonological
}

// Result holds the outcome of a dialect detection.
//
// Confidence is the dialect's share of the summed totals of all dialects,
// or 0 when no dialect scored.
type Result struct {
	Dialect    string  `json:"dialect"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Detector scores and classifies text against the profiles of a store.
type Detector struct {
	store *resource.Store
}

// NewDetector returns a detector over the profiles of store.
func NewDetector(store *resource.Store) *Detector {
	return &Detector{store: store}
}

// Scores returns the per-dialect evidence for text in declaration order.
func (d *Detector) Scores(text string) []Score {
	text = orth.NFC(text)

	freq := make(map[string]int)
	for _, w := range tokenizer.Words(text) {
		freq[orth.Fold(w)]++
	}

	profiles := d.store.Profiles()
	scores := make([]Score, len(profiles))
	for i, p := range profiles {
		s := Score{Dialect: p.Name}
		for w, n := range freq {
			if p.HasSignature(w) {
				s.Lexical += float64(n) * p.Weight
			}
		}
		s.Phonological = float64(p.PatternMatches(text)) * p.Weight * phonologicalFactor
		scores[i] = s
	}
	return scores
}

// DetectAll returns every dialect ranked by descending score. Dialects with
// equal scores keep their declaration order.
func (d *Detector) DetectAll(text string) []Result {
	scores := d.Scores(text)

	var sum float64
	for _, s := range scores {
		sum += s.Total()
	}

	results := make([]Result, len(scores))
	for i, s := range scores {
		results[i] = Result{Dialect: s.Dialect, Score: s.Total()}
		if sum > 0 {
			results[i].Confidence = s.Total() / sum
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return results
}

// Detect returns the most likely dialect of text. When nothing scores, the
// first declared dialect is returned with zero confidence.
func (d *Detector) Detect(text string) Result {
	return d.DetectAll(text)[0]
}

// Dialect returns the name of the most likely dialect of text.
func (d *Detector) Dialect(text string) string {
	return d.Detect(text).Dialect
}
