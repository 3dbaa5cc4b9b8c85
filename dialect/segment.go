package dialect

import (
	"math"
	"unicode/utf8"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/tokenizer"
)

// Segment is one sentence-level span of a mixed text.
//
// Start and End are byte offsets into the input, so
// text[Start:End] == Text. Confidence is the fraction of the span's words
// that belong to the detected dialect's signature set, 0 for spans without
// words.
type Segment struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Dialect    string  `json:"dialect"`
	Confidence float64 `json:"confidence"`
}

// Segment splits text into sentences and detects the dialect of each one
// independently. Empty input yields nil.
func (d *Detector) Segment(text string) []Segment {
	spans := tokenizer.SentenceTokens(text)
	if len(spans) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(spans))
	for _, span := range spans {
		name := d.Dialect(span.Text)
		seg := Segment{
			Text:    span.Text,
			Start:   span.Start,
			End:     span.End,
			Dialect: name,
		}

		words := tokenizer.Words(span.Text)
		if len(words) > 0 {
			p, err := d.store.Profile(name)
			if err == nil {
				matched := 0
				for _, w := range words {
					if p.HasSignature(w) {
						matched++
					}
				}
				seg.Confidence = float64(matched) / float64(len(words))
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// Purity returns the share of text, in characters over all segments, held
// by its main dialect: the one whose segments are longest in total, ties
// going to the first declared. Mixed text scores below 1; text with no
// segments is pure by convention and scores 1.
func (d *Detector) Purity(text string) float64 {
	segments := d.Segment(text)
	if len(segments) == 0 {
		return 1
	}

	lengths := make(map[string]int)
	total := 0
	for _, s := range segments {
		n := utf8.RuneCountInString(orth.NFC(s.Text))
		lengths[s.Dialect] += n
		total += n
	}
	if total == 0 {
		return 1
	}

	best := 0
	for _, name := range d.store.Names() {
		if lengths[name] > best {
			best = lengths[name]
		}
	}
	return float64(best) / float64(total)
}

// Entropy returns the Shannon entropy, in bits, of the distribution of
// detected dialects over texts: 0 for a corpus written in one dialect,
// log2(k) for k dialects in equal shares. An empty corpus has entropy 0.
func (d *Detector) Entropy(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	counts := make(map[string]int)
	for _, t := range texts {
		counts[d.Dialect(t)]++
	}

	n := float64(len(texts))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
