package resource

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
)

// NounClass describes one noun class: the initial shapes that identify it
// and the affixes it governs.
type NounClass struct {
	Name      string
	Prefixes  []string // initial shapes, matched on tone-stripped lowercase nouns
	Plural    string   // plural suffix, e.g. "wo"
	Agreement string   // marker prefixed to agreeing adjectives; empty for none
	Default   bool     // class of nouns no prefix matches
}

// Suffix is a derivational suffix entry.
type Suffix struct {
	Surface  string // e.g. "-lá"
	Gloss    string // e.g. "agent"
	POS      string // part of speech of the derived word, e.g. "n"
	Semantic string // semantic type, e.g. "person"
}

// Morphology holds the morphological tables shared by all dialects.
// Like profiles, it must not be modified after Load or New.
type Morphology struct {
	NounClasses []NounClass
	Suffixes    []Suffix
	Stems       map[string]string // morpheme → gloss

	defaultClass int
	byLength     []Suffix // Suffixes, longest surface first
	stems        map[string]string
}

func (m *Morphology) compile(path string) error {
	if len(m.NounClasses) == 0 {
		return resourceErr(path, "no noun classes")
	}
	m.defaultClass = -1
	for i, c := range m.NounClasses {
		if c.Name == "" {
			return resourceErr(path, "noun class %d has no name", i)
		}
		if !c.Default {
			continue
		}
		if m.defaultClass >= 0 {
			return resourceErr(path, "noun classes %q and %q are both default",
				m.NounClasses[m.defaultClass].Name, c.Name)
		}
		m.defaultClass = i
	}
	if m.defaultClass < 0 {
		return resourceErr(path, "no default noun class")
	}
	for i := range m.NounClasses {
		c := &m.NounClasses[i]
		for j, p := range c.Prefixes {
			c.Prefixes[j] = orth.Fold(orth.StripTones(p))
		}
	}

	m.byLength = make([]Suffix, 0, len(m.Suffixes))
	for i, s := range m.Suffixes {
		if strings.TrimPrefix(s.Surface, "-") == "" {
			return resourceErr(path, "suffix %d has an empty surface", i)
		}
		s.Surface = orth.NFC(s.Surface)
		m.byLength = append(m.byLength, s)
	}
	// Stable: equal-length suffixes keep declaration order.
	slices.SortStableFunc(m.byLength, func(a, b Suffix) int {
		return cmp.Compare(utf8.RuneCountInString(b.Surface), utf8.RuneCountInString(a.Surface))
	})

	m.stems = make(map[string]string, len(m.Stems))
	for form, gloss := range m.Stems {
		m.stems[orth.Fold(form)] = gloss
	}
	return nil
}

// DefaultClass returns the class of nouns that match no prefix.
func (m *Morphology) DefaultClass() NounClass {
	return m.NounClasses[m.defaultClass]
}

// SuffixesByLength returns the derivational suffixes, longest surface
// first. The slice is shared and must not be modified.
func (m *Morphology) SuffixesByLength() []Suffix {
	return m.byLength
}

// Stem reports whether morpheme is in the stem lexicon and returns its gloss.
func (m *Morphology) Stem(morpheme string) (gloss string, ok bool) {
	gloss, ok = m.stems[orth.Fold(morpheme)]
	return gloss, ok
}
