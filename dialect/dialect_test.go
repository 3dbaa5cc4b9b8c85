package dialect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

const epsilon = 1e-9

func testStore(t *testing.T) *resource.Store {
	t.Helper()
	s, err := resource.New([]*resource.Profile{
		{
			Name:                 "alpha",
			DominantPattern:      "HL",
			LexicalSignatures:    []string{"fifia", "ŋdi", "ʋu"},
			PhonologicalPatterns: []string{"dz"},
			SandhiRules: []resource.SandhiRule{
				{Pattern: tone.MustParse("H L"), Replacement: tone.MustParse("M L")},
			},
		},
		{
			Name:                 "beta",
			DominantPattern:      "LL",
			LexicalSignatures:    []string{"fifiɛ", "egbea", "ŋdi"},
			PhonologicalPatterns: []string{`(^|\s)z`},
			SandhiRules: []resource.SandhiRule{
				{Pattern: tone.MustParse("H L"), Replacement: tone.MustParse("L L")},
			},
		},
	}, nil)
	require.NoError(t, err)
	return s
}

func TestScores(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	scores := d.Scores("Fifia fifia dzo")
	require.Len(t, scores, 2)
	assert.Equal(t, Score{Dialect: "alpha", Lexical: 2, Phonological: 0.5}, scores[0])
	assert.Equal(t, Score{Dialect: "beta"}, scores[1])
	assert.InDelta(t, 2.5, scores[0].Total(), epsilon)
}

func TestScoresWeight(t *testing.T) {
	t.Parallel()
	s, err := resource.New([]*resource.Profile{
		{Name: "heavy", Weight: 2, LexicalSignatures: []string{"egbe"}, PhonologicalPatterns: []string{"gb"}},
	}, nil)
	require.NoError(t, err)

	got := NewDetector(s).Scores("egbe")
	assert.InDelta(t, 2.0, got[0].Lexical, epsilon)
	assert.InDelta(t, 1.0, got[0].Phonological, epsilon)
}

func TestDetect(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"alpha signatures", "fifia ʋu", "alpha"},
		{"beta signatures", "egbea fifiɛ", "beta"},
		{"beta pattern", "zo zi", "beta"},
		{"tie goes to first declared", "ŋdi", "alpha"},
		{"nothing scores", "akpe", "alpha"},
		{"empty", "", "alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Dialect(tt.in))
		})
	}
}

func TestDetectAllOrderAndConfidence(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	got := d.DetectAll("egbea fifia ŋdi")
	require.Len(t, got, 2)
	// alpha: fifia, ŋdi = 2; beta: egbea, ŋdi = 2. Tie keeps declaration order.
	assert.Equal(t, "alpha", got[0].Dialect)
	assert.Equal(t, "beta", got[1].Dialect)
	assert.InDelta(t, 0.5, got[0].Confidence, epsilon)
	assert.InDelta(t, 0.5, got[1].Confidence, epsilon)

	zero := d.Detect("xyz")
	assert.Equal(t, Result{Dialect: "alpha"}, zero)
}

func TestSegment(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	text := "Fifia ŋdi ʋu. Egbea fifiɛ!"
	got := d.Segment(text)
	require.Len(t, got, 2)

	assert.Equal(t, Segment{Text: "Fifia ŋdi ʋu.", Start: 0, End: 15, Dialect: "alpha", Confidence: 1}, got[0])
	assert.Equal(t, Segment{Text: "Egbea fifiɛ!", Start: 16, End: 29, Dialect: "beta", Confidence: 1}, got[1])
	for _, s := range got {
		assert.Equal(t, s.Text, text[s.Start:s.End])
	}
}

func TestSegmentConfidence(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	got := d.Segment("fifia me yi afe.")
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Dialect)
	assert.InDelta(t, 0.25, got[0].Confidence, epsilon)

	got = d.Segment("...")
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Confidence, "span without words")
}

func TestSegmentEmpty(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	assert.Nil(t, d.Segment(""))
	assert.Nil(t, d.Segment(" \n\n  "))
}

func TestPurity(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"no segments", "", 1},
		{"whitespace only", "   \n", 1},
		{"single dialect", "fifia ʋu. ŋdi fifia.", 1},
		// "fifia ʋu." is 9 runes, "egbea." is 6.
		{"mixed", "fifia ʋu. egbea.", 9.0 / 15.0},
		// Beta's two 6-rune sentences outweigh alpha's single 9-rune one.
		{"summed per dialect", "egbea. fifia ʋu. fifiɛ.", 12.0 / 21.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, d.Purity(tt.in), epsilon)
		})
	}
}

func TestEntropy(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	assert.Zero(t, d.Entropy(nil))
	assert.InDelta(t, 0, d.Entropy([]string{"fifia", "ʋu"}), epsilon)
	assert.InDelta(t, 1, d.Entropy([]string{"fifia", "egbea"}), epsilon)
	assert.InDelta(t, -(2.0/3*math.Log2(2.0/3) + 1.0/3*math.Log2(1.0/3)),
		d.Entropy([]string{"fifia", "ʋu", "egbea"}), epsilon)
}

func TestDistance(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	alpha, _ := s.Profile("alpha")
	beta, _ := s.Profile("beta")

	tests := []struct {
		name string
		w    Weights
		want float64
	}{
		{"no channels", Weights{}, 0},
		{"phonology", Weights{Phonology: 1}, 1},
		{"lexicon", Weights{Lexicon: 1}, 2.0 / 3.0},
		{"tonal", Weights{Tonal: 1}, 0.85},
		{"phonology and lexicon", Weights{Phonology: 0.5, Lexicon: 0.5}, 0.5 + 1.0/3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ab := Distance(alpha, beta, tt.w)
			ba := Distance(beta, alpha, tt.w)
			assert.InDelta(t, tt.want, ab, epsilon)
			assert.InDelta(t, ab, ba, epsilon, "distance must be symmetric")
		})
	}
}

func TestDistanceIdentityAndEdgeCases(t *testing.T) {
	t.Parallel()
	s := testStore(t)
	alpha, _ := s.Profile("alpha")

	w := Weights{Phonology: 1, Lexicon: 1, Tonal: 1}
	assert.InDelta(t, 0, Distance(alpha, alpha, w), epsilon)

	bare := &resource.Profile{Name: "bare"}
	other := &resource.Profile{Name: "other"}
	// Empty phonology sets are maximally distant, empty lexicons share nothing,
	// and the tonal channel is skipped without tonal systems.
	assert.InDelta(t, 2, Distance(bare, other, w), epsilon)
	assert.InDelta(t, 0, Distance(alpha, bare, Weights{Tonal: 1, Lexicon: 0}), epsilon)
}

func TestDefaultStoreDistanceSymmetric(t *testing.T) {
	t.Parallel()
	s, err := resource.Default()
	require.NoError(t, err)
	anlo, err := s.Profile("anlo")
	require.NoError(t, err)
	inland, err := s.Profile("inland")
	require.NoError(t, err)

	w := Weights{Phonology: 0.5, Lexicon: 0.5}
	assert.Equal(t, Distance(anlo, inland, w), Distance(inland, anlo, w))
}

func TestConcurrentDetect(t *testing.T) {
	t.Parallel()
	d := NewDetector(testStore(t))

	done := make(chan string, 32)
	for range 32 {
		go func() {
			done <- d.Dialect("egbea fifiɛ. fifia")
		}()
	}
	for range 32 {
		assert.Equal(t, "beta", <-done)
	}
}

func BenchmarkSegment(b *testing.B) {
	s, err := resource.Default()
	if err != nil {
		b.Fatal(err)
	}
	d := NewDetector(s)
	text := "Fifia míele dzo. Egbea wu nyuitɔ! Kpɔkpɔ gbe ŋdiŋdi."
	for b.Loop() {
		d.Segment(text)
	}
}
