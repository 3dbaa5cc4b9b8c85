package morph

import (
	"fmt"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
)

const (
	maxWordBytes = 256

	// minCompoundRunes is the length a token must exceed to be tried as a
	// compound, and minPartRunes the shortest component.
	minCompoundRunes = 5
	minPartRunes     = 3

	defaultPlural = "wo"
)

// Analyzer applies the morphological tables of a store.
type Analyzer struct {
	tables *resource.Morphology
	cache  *lru.Cache[string, Analysis]
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithCache memoizes Analyze results in a thread-safe LRU cache holding up
// to size tokens. A size of 0 disables caching.
func WithCache(size int) Option {
	return func(a *Analyzer) error {
		if size == 0 {
			a.cache = nil
			return nil
		}
		c, err := lru.New[string, Analysis](size)
		if err != nil {
			return fmt.Errorf("morph: cache: %w", err)
		}
		a.cache = c
		return nil
	}
}

// New returns an analyzer over the morphological tables of store.
// It fails with a *resource.ResourceError when the store has none.
func New(store *resource.Store, opts ...Option) (*Analyzer, error) {
	m, err := store.Morphology()
	if err != nil {
		return nil, err
	}
	a := &Analyzer{tables: m}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// NounClass returns the class of noun.
func (a *Analyzer) NounClass(noun string) resource.NounClass {
	key := orth.Fold(orth.StripTones(noun))
	for _, c := range a.tables.NounClasses {
		for _, p := range c.Prefixes {
			if p != "" && strings.HasPrefix(key, p) {
				return c
			}
		}
	}
	return a.tables.DefaultClass()
}

// Plural returns the plural of noun: the noun followed by its class's
// plural affix.
func (a *Analyzer) Plural(noun string) string {
	affix := a.NounClass(noun).Plural
	if affix == "" {
		affix = defaultPlural
	}
	return noun + affix
}

// Agree returns the noun phrase noun + adjective, the adjective carrying
// the agreement marker of the noun's class, if any.
func (a *Analyzer) Agree(noun, adjective string) string {
	return noun + " " + a.NounClass(noun).Agreement + adjective
}

// Analyze returns the morphological structure of token. Token is compared
// in NFC; derivational suffixes match their surface form, hyphen included.
func (a *Analyzer) Analyze(token string) Analysis {
	if a.cache != nil {
		if res, ok := a.cache.Get(token); ok {
			return res.clone()
		}
	}
	res := a.analyze(token)
	if a.cache != nil {
		a.cache.Add(token, res.clone())
	}
	return res
}

// AnalyzeAll analyzes each token. Designed to be used with tokenizer.Words().
// Returns nil if tokens is nil.
func (a *Analyzer) AnalyzeAll(tokens []string) []Analysis {
	if tokens == nil {
		return nil
	}
	out := make([]Analysis, len(tokens))
	for i, t := range tokens {
		out[i] = a.Analyze(t)
	}
	return out
}

func (a *Analyzer) analyze(token string) Analysis {
	if token == "" || len(token) > maxWordBytes {
		return Analysis{Kind: Root}
	}
	w := orth.NFC(token)

	for _, s := range a.tables.SuffixesByLength() {
		if len(w) > len(s.Surface) && strings.HasSuffix(w, s.Surface) {
			return Analysis{
				Kind:     Derivational,
				Stem:     w[:len(w)-len(s.Surface)],
				Suffix:   s.Surface,
				Gloss:    s.Gloss,
				POS:      s.POS,
				Semantic: s.Semantic,
			}
		}
	}

	if utf8.RuneCountInString(w) > minCompoundRunes {
		if res, ok := a.splitCompound(w); ok {
			return res
		}
	}
	return Analysis{Kind: Root}
}

// splitCompound tries split points left to right and returns the first
// whose halves are both lexicon stems.
func (a *Analyzer) splitCompound(w string) (Analysis, bool) {
	runes := []rune(w)
	for i := minPartRunes; i < len(runes)-minPartRunes; i++ {
		left, right := string(runes[:i]), string(runes[i:])
		lg, ok := a.tables.Stem(left)
		if !ok {
			continue
		}
		rg, ok := a.tables.Stem(right)
		if !ok {
			continue
		}
		return Analysis{
			Kind:       Compound,
			Components: []string{left, right},
			Gloss:      lg + " + " + rg,
		}, true
	}
	return Analysis{}, false
}
