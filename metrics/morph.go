package metrics

// Morphological categories scored by MorphF1.
const (
	NounClass  = "noun_class"
	Tense      = "tense"
	Aspect     = "aspect"
	Derivation = "derivation"
)

// Categories lists the categories MorphF1 scores, in report order.
var Categories = []string{NounClass, Tense, Aspect, Derivation}

// Score holds precision, recall and F1 for one category. Support is the
// number of gold annotations in the category.
type Score struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

func score(tp, fp, fn int) Score {
	s := Score{Support: tp + fn}
	if tp+fp > 0 {
		s.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		s.Recall = float64(tp) / float64(tp+fn)
	}
	if s.Precision+s.Recall > 0 {
		s.F1 = 2 * s.Precision * s.Recall / (s.Precision + s.Recall)
	}
	return s
}

// MorphF1 scores aligned predicted and gold analyses, each a map from
// category to value. A wrong prediction counts as both a false negative
// and, when a value was predicted, a false positive. Categories that never
// occur in pred or gold are omitted from the result.
func MorphF1(pred, gold []map[string]string) (map[string]Score, error) {
	if err := checkAligned(len(pred), len(gold)); err != nil {
		return nil, err
	}

	type counts struct{ tp, fp, fn int }
	seen := make(map[string]*counts)
	get := func(cat string) *counts {
		c, ok := seen[cat]
		if !ok {
			c = &counts{}
			seen[cat] = c
		}
		return c
	}

	for i := range pred {
		for _, cat := range Categories {
			p, hasPred := pred[i][cat]
			g, hasGold := gold[i][cat]
			switch {
			case hasGold && hasPred && p == g:
				get(cat).tp++
			case hasGold:
				get(cat).fn++
				if hasPred {
					get(cat).fp++
				}
			case hasPred:
				get(cat).fp++
			}
		}
	}

	out := make(map[string]Score, len(seen))
	for cat, c := range seen {
		out[cat] = score(c.tp, c.fp, c.fn)
	}
	return out, nil
}
