package dialect

import (
	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// Channel names a feature family compared by Distance.
type Channel string

const (
	Phonology Channel = "phonology" // phonological pattern sets, Jaccard distance
	Lexicon   Channel = "lexicon"   // signature sets, overlap over the larger set
	Tonal     Channel = "tonal"     // tone.SystemDistance of the tonal systems
)

// Weights scales each channel's dissimilarity. Channels absent from the map
// are skipped.
type Weights map[Channel]float64

// Distance returns the weighted dissimilarity of two dialect profiles:
// the sum over weighted channels of weight × channel distance. The tonal
// channel contributes only when both profiles define a tonal system.
// Distance(a, b, w) == Distance(b, a, w).
func Distance(a, b *resource.Profile, w Weights) float64 {
	var d float64
	if wt, ok := w[Phonology]; ok {
		d += wt * jaccardDistance(toSet(a.PhonologicalPatterns, false), toSet(b.PhonologicalPatterns, false))
	}
	if wt, ok := w[Lexicon]; ok {
		d += wt * overlapDistance(toSet(a.LexicalSignatures, true), toSet(b.LexicalSignatures, true))
	}
	if wt, ok := w[Tonal]; ok && a.HasTonalSystem() && b.HasTonalSystem() {
		d += wt * tone.SystemDistance(a.TonalSystem(), b.TonalSystem())
	}
	return d
}

func toSet(items []string, fold bool) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if fold {
			it = orth.Fold(it)
		}
		set[it] = struct{}{}
	}
	return set
}

func intersection(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

// jaccardDistance is 1 - |A∩B|/|A∪B|, and 1 when both sets are empty.
func jaccardDistance(a, b map[string]struct{}) float64 {
	inter := intersection(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1
	}
	return 1 - float64(inter)/float64(union)
}

// overlapDistance is 1 - |A∩B|/max(|A|,|B|,1).
func overlapDistance(a, b map[string]struct{}) float64 {
	return 1 - float64(intersection(a, b))/float64(max(len(a), len(b), 1))
}
