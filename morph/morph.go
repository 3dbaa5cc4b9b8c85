// Package morph performs morphological analysis of Ewe nouns and words:
// noun-class detection, plural formation, adjective agreement, and
// segmentation into stem + derivational suffix or into compound parts.
//
// All rules are table-driven from resource.Morphology:
//
//   - Noun classes are tried in declaration order against the noun's
//     tone-stripped lowercase form; the first class with a matching prefix
//     wins, and nouns no class claims fall in the default class.
//   - Derivational suffixes are tried longest surface first, so a short
//     suffix never shadows a longer one.
//   - Compounds are split at the leftmost point where both halves are
//     lexicon stems. This greedy policy does not look for a best split: a
//     token with several valid splits always gets the leftmost one.
//
// Analyze never fails. Unanalyzable tokens, including tokens longer than
// maxWordBytes, are reported as roots.
//
// An Analyzer is safe for concurrent use by multiple goroutines.
package morph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies an analysis.
type Kind int

const (
	Root         Kind = iota // no internal structure found
	Derivational             // stem + derivational suffix
	Compound                 // two lexicon stems
)

var kindNames = [...]string{
	Root:         "root",
	Derivational: "derivational",
	Compound:     "compound",
}

var kindFromName = map[string]Kind{
	"root":         Root,
	"derivational": Derivational,
	"compound":     Compound,
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON encodes the kind as a JSON string (e.g. "compound").
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "compound") into a Kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, ok := kindFromName[s]
	if !ok {
		return fmt.Errorf("morph: unknown analysis kind: %q", s)
	}
	*k = kind
	return nil
}

// Analysis is the morphological structure of one token.
//
// Derivational analyses fill Stem, Suffix, Gloss, POS and Semantic.
// Compound analyses fill Components and Gloss ("farm + man"). Root
// analyses carry only the kind.
type Analysis struct {
	Kind       Kind     `json:"type"`
	Stem       string   `json:"stem,omitempty"`
	Suffix     string   `json:"suffix,omitempty"`
	Gloss      string   `json:"gloss,omitempty"`
	POS        string   `json:"pos,omitempty"`
	Semantic   string   `json:"semantic,omitempty"`
	Components []string `json:"components,omitempty"`
}

// String returns a debug representation, e.g. nu+-lá[agent] or
// agble+ŋutsu[farm + man].
func (a Analysis) String() string {
	switch a.Kind {
	case Derivational:
		return a.Stem + "+" + a.Suffix + "[" + a.Gloss + "]"
	case Compound:
		return strings.Join(a.Components, "+") + "[" + a.Gloss + "]"
	default:
		return a.Kind.String()
	}
}

func (a Analysis) clone() Analysis {
	if a.Components != nil {
		a.Components = append([]string(nil), a.Components...)
	}
	return a
}
