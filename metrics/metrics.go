// Package metrics scores tone and morphology predictions against gold
// annotations: tone accuracy, a tone confusion matrix, per-tone F1, and
// per-category morphological F1.
//
// All functions are pure and safe for concurrent use.
package metrics

import (
	"errors"
	"fmt"

	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

var (
	// ErrEmpty is returned when there is nothing to score.
	ErrEmpty = errors.New("metrics: empty input")

	// ErrLengthMismatch is returned when predictions and gold annotations
	// are not aligned one to one.
	ErrLengthMismatch = errors.New("metrics: predicted and gold lengths differ")
)

func checkAligned(npred, ngold int) error {
	if npred != ngold {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, npred, ngold)
	}
	if npred == 0 {
		return ErrEmpty
	}
	return nil
}

// ToneAccuracy returns the fraction of positions where pred equals gold.
func ToneAccuracy(pred, gold tone.Sequence) (float64, error) {
	if err := checkAligned(len(pred), len(gold)); err != nil {
		return 0, err
	}
	matches := 0
	for i := range pred {
		if pred[i] == gold[i] {
			matches++
		}
	}
	return float64(matches) / float64(len(pred)), nil
}

// Confusion counts aligned (gold, predicted) pairs of level tones, indexed
// by tone level: Confusion[gold][pred]. Pairs involving contour or unknown
// tones are not counted.
type Confusion [3][3]int

// Count returns the number of positions annotated gold and predicted pred.
func (c Confusion) Count(gold, pred tone.Tone) int {
	g, ok := gold.Level()
	if !ok {
		return 0
	}
	p, ok := pred.Level()
	if !ok {
		return 0
	}
	return c[g][p]
}

// ToneConfusion builds the L/M/H confusion matrix of pred against gold.
func ToneConfusion(pred, gold tone.Sequence) (Confusion, error) {
	var c Confusion
	if err := checkAligned(len(pred), len(gold)); err != nil {
		return c, err
	}
	for i := range pred {
		g, gok := gold[i].Level()
		p, pok := pred[i].Level()
		if gok && pok {
			c[g][p]++
		}
	}
	return c, nil
}

// ToneF1 returns the F1 score of predicting tone t: the harmonic mean of
// precision and recall, 0 when both are 0.
func ToneF1(pred, gold tone.Sequence, t tone.Tone) (float64, error) {
	if err := checkAligned(len(pred), len(gold)); err != nil {
		return 0, err
	}
	var tp, fp, fn int
	for i := range pred {
		switch {
		case pred[i] == t && gold[i] == t:
			tp++
		case pred[i] == t:
			fp++
		case gold[i] == t:
			fn++
		}
	}
	return score(tp, fp, fn).F1, nil
}
