package tone

// Weights of the two terms of SystemDistance.
const (
	ruleWeight    = 0.7
	patternWeight = 0.3

	// patternMismatch is the similarity credited when dominant patterns differ.
	patternMismatch = 0.5
)

// Cost returns the substitution cost between two tones.
//
// Equal symbols cost 0. Two level tones cost half their ordinal distance,
// so L↔H costs 1 and L↔M or M↔H cost 0.5. Anything else (contour tones,
// unknown symbols) costs the maximum, 1.
func Cost(a, b Tone) float64 {
	if a == b {
		return 0
	}
	la, okA := a.Level()
	lb, okB := b.Level()
	if !okA || !okB {
		return 1
	}
	d := la - lb
	if d < 0 {
		d = -d
	}
	return float64(d) / 2
}

// EditDistance returns the minimum cost of turning a into b with
// insertions and deletions (cost 1 each) and substitutions priced by Cost.
//
// The dynamic program keeps two rows over the shorter sequence, which gives
// the same result as the full (m+1)×(n+1) table.
func EditDistance(a, b Sequence) float64 {
	// Distance is symmetric, so iterate over the longer one.
	if len(b) > len(a) {
		a, b = b, a
	}

	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for j := range prev {
		prev[j] = float64(j)
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = float64(i)
		for j := 1; j <= len(b); j++ {
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + Cost(a[i-1], b[j-1])
			curr[j] = min(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// System summarizes the tonal behaviour of a dialect: the identities of its
// sandhi rules and the label of its dominant tonal pattern.
type System struct {
	Rules           []string
	DominantPattern string
}

// Empty reports whether the system carries no tonal information.
func (s System) Empty() bool {
	return len(s.Rules) == 0 && s.DominantPattern == ""
}

// SystemDistance compares two tonal systems. The result is
//
//	1 − (0.7·ruleSim + 0.3·patternSim)
//
// where ruleSim = |A∩B| / max(|A|, |B|, 1) over the deduplicated rule sets
// and patternSim is 1 for equal dominant patterns and 0.5 otherwise.
// Rule overlap dominates the score. The result lies in [0, 0.85].
func SystemDistance(a, b System) float64 {
	setA := toSet(a.Rules)
	setB := toSet(b.Rules)

	shared := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			shared++
		}
	}
	ruleSim := float64(shared) / float64(max(len(setA), len(setB), 1))

	patternSim := patternMismatch
	if a.DominantPattern == b.DominantPattern {
		patternSim = 1
	}

	return 1 - (ruleWeight*ruleSim + patternWeight*patternSim)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
