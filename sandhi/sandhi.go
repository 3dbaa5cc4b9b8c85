// Package sandhi applies dialect-specific tone sandhi to Ewe tokens and
// phrases.
//
// Resolution of one token is a three-state machine with no backtracking:
//
//  1. If the token is a lexical exception of the dialect, its fixed surface
//     form is returned and no rule is tried.
//  2. Otherwise the dialect's rules are scanned in declaration order and the
//     first rule whose pattern matches a prefix of the token's tone sequence
//     rewrites that prefix. The rest of the sequence is untouched.
//  3. If no rule matches, the token is returned unchanged.
//
// A rule with a Next context spans a token boundary: it fires only when the
// following word's tones start with Next. Such rules are considered by
// ApplyPhrase, which peeks at the next raw word before finalizing the
// current one, and never by the single-token entry points.
//
// Tones are read from and written to the orthography: acute is High, grave
// Low, circumflex Falling, caron Rising, and an unmarked vowel is Mid.
//
// A Processor only reads its resource.Store and is safe for concurrent use.
package sandhi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tokenizer"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// Outcome is the terminal state reached by a token.
type Outcome int

const (
	Unchanged    Outcome = iota // no exception and no rule applied
	ViaException                // fixed form from the exception table
	ViaRule                     // rewritten by a sandhi rule
)

var outcomeNames = [...]string{
	Unchanged:    "unchanged",
	ViaException: "exception",
	ViaRule:      "rule",
}

// String returns the name of the outcome.
func (o Outcome) String() string {
	if int(o) >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalJSON encodes the outcome as a JSON string (e.g. "rule").
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Resolution is the result of resolving one token.
type Resolution struct {
	Surface string  `json:"surface"`
	Outcome Outcome `json:"outcome"`
	Rule    string  `json:"rule,omitempty"` // identity of the applied rule, e.g. "H L > M L"
}

// Processor applies the sandhi rules of a store's dialects.
type Processor struct {
	store *resource.Store
}

// New returns a processor over the profiles of store.
func New(store *resource.Store) *Processor {
	return &Processor{store: store}
}

// ApplyTones rewrites seq with the first single-token rule of dialect whose
// pattern matches a prefix of seq. The result is a new sequence; seq is not
// modified.
func (p *Processor) ApplyTones(seq tone.Sequence, dialect string) (tone.Sequence, error) {
	prof, err := p.store.Profile(dialect)
	if err != nil {
		return nil, err
	}
	for _, r := range prof.SandhiRules {
		if r.CrossToken() {
			continue
		}
		if seq.HasPrefix(r.Pattern) {
			return rewrite(seq, r), nil
		}
	}
	return seq.Clone(), nil
}

// Resolve returns the sandhi surface form of token in dialect and how it
// was reached.
func (p *Processor) Resolve(token, dialect string) (Resolution, error) {
	prof, err := p.store.Profile(dialect)
	if err != nil {
		return Resolution{}, err
	}
	return resolve(prof, token, nil), nil
}

// ApplyToken returns the sandhi surface form of token in dialect.
func (p *Processor) ApplyToken(token, dialect string) (string, error) {
	res, err := p.Resolve(token, dialect)
	if err != nil {
		return "", err
	}
	return res.Surface, nil
}

// ApplyPhrase resolves every word of phrase left to right. Words separated
// only by whitespace are adjacent, so rules with a Next context see the
// following word; punctuation ends the context. Everything but the words
// themselves is copied through byte for byte.
func (p *Processor) ApplyPhrase(phrase, dialect string) (string, error) {
	prof, err := p.store.Profile(dialect)
	if err != nil {
		return "", err
	}

	tokens := tokenizer.WordTokens(phrase)
	var b strings.Builder
	b.Grow(len(phrase))
	for i, tok := range tokens {
		if tok.Type != tokenizer.Word {
			b.WriteString(tok.Text)
			continue
		}
		var next tone.Sequence
		if nxt, ok := nextWord(tokens, i); ok {
			next = orth.Tones(nxt.Text)
		}
		b.WriteString(resolve(prof, tok.Text, next).Surface)
	}
	return b.String(), nil
}

// nextWord returns the word following tokens[i] across whitespace only.
func nextWord(tokens []tokenizer.Token, i int) (tokenizer.Token, bool) {
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Type {
		case tokenizer.Space:
			continue
		case tokenizer.Word:
			return tokens[j], true
		default:
			return tokenizer.Token{}, false
		}
	}
	return tokenizer.Token{}, false
}

// resolve runs the exception → rule → unchanged machine for one token.
// next is the tone sequence of the following word, nil when there is none.
func resolve(prof *resource.Profile, token string, next tone.Sequence) Resolution {
	if surface, ok := prof.Exception(token); ok {
		return Resolution{Surface: surface, Outcome: ViaException}
	}

	seq := orth.Tones(token)
	for _, r := range prof.SandhiRules {
		if r.CrossToken() && (next == nil || !next.HasPrefix(r.Next)) {
			continue
		}
		if seq.HasPrefix(r.Pattern) {
			return Resolution{
				Surface: orth.Mark(token, rewrite(seq, r)),
				Outcome: ViaRule,
				Rule:    r.String(),
			}
		}
	}
	return Resolution{Surface: token, Outcome: Unchanged}
}

// rewrite replaces the prefix of seq matched by r with r's replacement.
func rewrite(seq tone.Sequence, r resource.SandhiRule) tone.Sequence {
	out := make(tone.Sequence, 0, len(seq)-len(r.Pattern)+len(r.Replacement))
	out = append(out, r.Replacement...)
	return append(out, seq[len(r.Pattern):]...)
}
