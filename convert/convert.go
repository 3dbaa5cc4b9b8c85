// Package convert rewrites Ewe text from one dialect's surface form to
// another's, and synthesizes mixed-dialect text for training corpora.
//
// Conversion towards a target dialect applies the target profile's rules in
// three fixed passes:
//
//  1. Phonological rules, each a regular expression applied once over the
//     whole text, in declaration order.
//  2. Lexical mappings, a single whole-word pass: every word of the text is
//     looked up once, so a replacement is never rewritten by a later mapping
//     and never touches part of a longer word.
//  3. Tonal rules, if the target defines any, applied like phonological ones.
//
// Rules within a pass are independent one-shot rewrites. Two phonological or
// tonal rules whose patterns overlap interact through the order they are
// declared in; tables are expected to avoid that.
//
// A Converter only reads its resource.Store and is safe for concurrent use.
package convert

import (
	"strings"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tokenizer"
)

// Converter converts text between the dialects of a store.
type Converter struct {
	store *resource.Store
}

// New returns a converter over the profiles of store.
func New(store *resource.Store) *Converter {
	return &Converter{store: store}
}

// Convert rewrites text from source to target dialect. When source equals
// target the text is returned as is, without looking either name up.
// Unknown dialect names yield an error matching resource.ErrUnsupportedDialect.
func (c *Converter) Convert(text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}
	if _, err := c.store.Profile(source); err != nil {
		return "", err
	}
	p, err := c.store.Profile(target)
	if err != nil {
		return "", err
	}
	return apply(p, text), nil
}

// apply runs the three conversion passes of p over text.
func apply(p *resource.Profile, text string) string {
	if text == "" {
		return ""
	}
	text = orth.NFC(text)

	for _, r := range p.PhonologicalRules {
		text = r.Apply(text)
	}
	if len(p.LexicalMappings) > 0 {
		text = replaceWords(p, text)
	}
	for _, r := range p.TonalRules {
		text = r.Apply(text)
	}
	return text
}

// replaceWords substitutes every word of text that p maps, leaving all
// other tokens byte for byte.
func replaceWords(p *resource.Profile, text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, tok := range tokenizer.WordTokens(text) {
		if tok.Type == tokenizer.Word {
			if to, ok := p.Lexical(tok.Text); ok {
				b.WriteString(to)
				continue
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
