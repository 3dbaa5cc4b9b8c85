// Package normalize brings Ewe text to a single target dialect.
//
// Two strategies are provided:
//
//   - Normalize detects the dialect of the whole text and, unless it already
//     is the target, converts all of it.
//   - PreserveFeatures works sentence by sentence: only sentences detected
//     in another dialect are converted, everything else is kept verbatim.
//
// Text only performs Unicode NFC composition, the form every other package
// of this module compares strings in.
//
// A Normalizer is safe for concurrent use by multiple goroutines.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/az-ai-labs/ewe-lang-nlp/convert"
	"github.com/az-ai-labs/ewe-lang-nlp/dialect"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
)

// maxInputBytes is the maximum input size for Normalize and PreserveFeatures.
// Inputs exceeding this are returned unchanged.
const maxInputBytes = 1 << 20 // 1 MiB

// Text returns s in Unicode normalization form C.
func Text(s string) string {
	return norm.NFC.String(s)
}

// Normalizer converts text towards one target dialect.
type Normalizer struct {
	detector  *dialect.Detector
	converter *convert.Converter
	target    string
}

// New returns a normalizer towards target. It fails with an error matching
// resource.ErrUnsupportedDialect when the store has no such dialect.
func New(store *resource.Store, target string) (*Normalizer, error) {
	if _, err := store.Profile(target); err != nil {
		return nil, err
	}
	return &Normalizer{
		detector:  dialect.NewDetector(store),
		converter: convert.New(store),
		target:    target,
	}, nil
}

// Target returns the dialect the normalizer converts to.
func (n *Normalizer) Target() string {
	return n.target
}

// Normalize converts text from its detected dialect to the target.
// Text already in the target dialect is returned as is.
func (n *Normalizer) Normalize(text string) (string, error) {
	if text == "" || len(text) > maxInputBytes {
		return text, nil
	}
	return n.converter.Convert(text, n.detector.Dialect(text), n.target)
}

// PreserveFeatures converts only the sentences detected in a dialect other
// than the target. Sentences in the target dialect and the whitespace
// between sentences are kept byte for byte.
func (n *Normalizer) PreserveFeatures(text string) (string, error) {
	if text == "" || len(text) > maxInputBytes {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, seg := range n.detector.Segment(text) {
		b.WriteString(text[last:seg.Start])
		out, err := n.converter.Convert(seg.Text, seg.Dialect, n.target)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
		last = seg.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}
