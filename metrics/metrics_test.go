package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

const epsilon = 1e-9

func TestToneAccuracy(t *testing.T) {
	t.Parallel()

	got, err := ToneAccuracy(tone.MustParse("H M L H"), tone.MustParse("H L L H"))
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, epsilon)

	_, err = ToneAccuracy(tone.MustParse("H"), tone.MustParse("H L"))
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = ToneAccuracy(nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestToneConfusion(t *testing.T) {
	t.Parallel()

	c, err := ToneConfusion(tone.MustParse("H M L H F"), tone.MustParse("H L L M L"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count(tone.High, tone.High))
	assert.Equal(t, 1, c.Count(tone.Low, tone.Mid))
	assert.Equal(t, 1, c.Count(tone.Low, tone.Low))
	assert.Equal(t, 1, c.Count(tone.Mid, tone.High))
	assert.Equal(t, 0, c.Count(tone.Low, tone.Falling), "contour tones are not counted")

	total := 0
	for _, row := range c {
		for _, n := range row {
			total += n
		}
	}
	assert.Equal(t, 4, total)
}

func TestToneF1(t *testing.T) {
	t.Parallel()

	pred := tone.MustParse("H H L M")
	gold := tone.MustParse("H L L H")

	// H: tp=1 fp=1 fn=1 → p=0.5 r=0.5.
	got, err := ToneF1(pred, gold, tone.High)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, epsilon)

	// L: tp=1 fp=0 fn=1 → p=1 r=0.5.
	got, err = ToneF1(pred, gold, tone.Low)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, epsilon)

	got, err = ToneF1(pred, gold, tone.Falling)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMorphF1(t *testing.T) {
	t.Parallel()

	pred := []map[string]string{
		{NounClass: "a-", Derivation: "agent"},
		{NounClass: "Ø", Tense: "past"},
		{NounClass: "Ø"},
	}
	gold := []map[string]string{
		{NounClass: "a-", Derivation: "agent"},
		{NounClass: "a-"},
		{NounClass: "Ø", Aspect: "habitual"},
	}

	got, err := MorphF1(pred, gold)
	require.NoError(t, err)

	// noun_class: tp=2, fn=1, fp=1.
	nc := got[NounClass]
	assert.InDelta(t, 2.0/3.0, nc.Precision, epsilon)
	assert.InDelta(t, 2.0/3.0, nc.Recall, epsilon)
	assert.InDelta(t, 2.0/3.0, nc.F1, epsilon)
	assert.Equal(t, 3, nc.Support)

	assert.Equal(t, Score{Precision: 1, Recall: 1, F1: 1, Support: 1}, got[Derivation])
	assert.Equal(t, Score{}, got[Tense], "spurious prediction only")
	assert.Equal(t, Score{Support: 1}, got[Aspect], "missed annotation only")
	assert.Len(t, got, 4)

	_, err = MorphF1(pred, gold[:1])
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMorphF1OmitsUnseenCategories(t *testing.T) {
	t.Parallel()

	got, err := MorphF1([]map[string]string{{NounClass: "a-"}}, []map[string]string{{NounClass: "a-"}})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Contains(t, got, NounClass)
}
