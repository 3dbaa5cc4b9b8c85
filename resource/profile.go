package resource

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// defaultWeight is the prior weight of a profile that does not set one.
const defaultWeight = 1.0

// RuleKind is the category of a ConversionRule.
type RuleKind int

const (
	Phonological RuleKind = iota // regular-expression rewrite of phoneme sequences
	Lexical                      // whole-word substitution
	Tonal                        // regular-expression rewrite of tone marks
)

// String returns the name of the rule kind.
func (k RuleKind) String() string {
	switch k {
	case Phonological:
		return "phonological"
	case Lexical:
		return "lexical"
	case Tonal:
		return "tonal"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// ConversionRule rewrites text towards the dialect that owns it.
// For Phonological and Tonal rules Pattern is a regular expression and
// Replacement may reference its groups ($1). For Lexical rules Pattern is a
// whole word.
type ConversionRule struct {
	Kind        RuleKind
	Pattern     string
	Replacement string

	re *regexp.Regexp
}

// Apply rewrites every match of a Phonological or Tonal rule in text.
// Lexical rules are applied by whole-word lookup and return text unchanged here.
func (r ConversionRule) Apply(text string) string {
	if r.re == nil {
		return text
	}
	return r.re.ReplaceAllString(text, r.Replacement)
}

// SandhiRule rewrites the leading tones of a token.
//
// Pattern is matched against a prefix of the token's tone sequence and may
// contain tone.Any. Replacement holds exactly one tone per pattern tone.
// When Next is non-empty the rule spans a token boundary:
// it fires only if the following token's tones start with Next.
type SandhiRule struct {
	Pattern     tone.Sequence
	Next        tone.Sequence
	Replacement tone.Sequence
}

// CrossToken reports whether the rule needs the following token.
func (r SandhiRule) CrossToken() bool {
	return len(r.Next) > 0
}

// String returns a stable identity for the rule, e.g. "H L > M L" or
// "F + L > H". It is also the rule's key in tonal-system comparisons.
func (r SandhiRule) String() string {
	var b strings.Builder
	b.WriteString(r.Pattern.String())
	if r.CrossToken() {
		b.WriteString(" + ")
		b.WriteString(r.Next.String())
	}
	b.WriteString(" > ")
	b.WriteString(r.Replacement.String())
	return b.String()
}

// Profile holds the features of one dialect.
//
// Profiles are built once by Load or New and must not be modified
// afterwards; every component only reads them.
type Profile struct {
	Name            string
	Weight          float64 // prior weight; 0 means 1.0
	DominantPattern string

	LexicalSignatures    []string
	PhonologicalPatterns []string // regular expressions

	SandhiRules []SandhiRule
	Exceptions  map[string]string // token → fixed surface form

	PhonologicalRules []ConversionRule
	LexicalMappings   []ConversionRule
	TonalRules        []ConversionRule

	signatures map[string]struct{}
	patterns   []*regexp.Regexp
	lexical    map[string]string
	exceptions map[string]string
}

// compile validates p and builds its lookup tables.
func (p *Profile) compile(path string) error {
	if p.Name == "" {
		return resourceErr(path, "profile has no name")
	}
	if p.Weight < 0 {
		return resourceErr(path, "dialect %s: negative weight %v", p.Name, p.Weight)
	}
	if p.Weight == 0 {
		p.Weight = defaultWeight
	}

	p.signatures = make(map[string]struct{}, len(p.LexicalSignatures))
	for _, s := range p.LexicalSignatures {
		p.signatures[orth.Fold(s)] = struct{}{}
	}

	p.patterns = make([]*regexp.Regexp, 0, len(p.PhonologicalPatterns))
	for _, src := range p.PhonologicalPatterns {
		re, err := regexp.Compile(orth.NFC(src))
		if err != nil {
			return resourceErr(path, "dialect %s: phonological pattern %q: %w", p.Name, src, err)
		}
		p.patterns = append(p.patterns, re)
	}

	for i, r := range p.SandhiRules {
		if len(r.Pattern) == 0 {
			return resourceErr(path, "dialect %s: sandhi rule %d: empty pattern", p.Name, i)
		}
		if len(r.Replacement) == 0 {
			return resourceErr(path, "dialect %s: sandhi rule %d: empty replacement", p.Name, i)
		}
		// One tone per nucleus: a rewrite never changes the sequence length.
		if len(r.Replacement) != len(r.Pattern) {
			return resourceErr(path, "dialect %s: sandhi rule %d: replacement has %d tones, pattern %d",
				p.Name, i, len(r.Replacement), len(r.Pattern))
		}
		if err := checkTones(r.Pattern, true); err != nil {
			return resourceErr(path, "dialect %s: sandhi rule %d pattern: %w", p.Name, i, err)
		}
		if err := checkTones(r.Next, true); err != nil {
			return resourceErr(path, "dialect %s: sandhi rule %d next: %w", p.Name, i, err)
		}
		if err := checkTones(r.Replacement, false); err != nil {
			return resourceErr(path, "dialect %s: sandhi rule %d replacement: %w", p.Name, i, err)
		}
	}

	p.exceptions = make(map[string]string, len(p.Exceptions))
	for k, v := range p.Exceptions {
		p.exceptions[orth.NFC(k)] = orth.NFC(v)
	}

	for kind, rules := range map[RuleKind][]ConversionRule{
		Phonological: p.PhonologicalRules,
		Tonal:        p.TonalRules,
	} {
		for i := range rules {
			rules[i].Kind = kind
			rules[i].Replacement = orth.NFC(rules[i].Replacement)
			re, err := regexp.Compile(orth.NFC(rules[i].Pattern))
			if err != nil {
				return resourceErr(path, "dialect %s: %s rule %q: %w", p.Name, rules[i].Kind, rules[i].Pattern, err)
			}
			rules[i].re = re
		}
	}

	p.lexical = make(map[string]string, len(p.LexicalMappings))
	for i := range p.LexicalMappings {
		p.LexicalMappings[i].Kind = Lexical
		m := p.LexicalMappings[i]
		if m.Pattern == "" {
			return resourceErr(path, "dialect %s: lexical mapping with empty source word", p.Name)
		}
		from := orth.NFC(m.Pattern)
		if _, dup := p.lexical[from]; dup {
			return resourceErr(path, "dialect %s: duplicate lexical mapping for %q", p.Name, m.Pattern)
		}
		p.lexical[from] = orth.NFC(m.Replacement)
	}

	return nil
}

func checkTones(seq tone.Sequence, allowWildcard bool) error {
	for i, t := range seq {
		if t.Valid() || (allowWildcard && t == tone.Any) {
			continue
		}
		return &tone.InvalidToneError{Index: i, Symbol: string(t)}
	}
	return nil
}

// HasSignature reports whether word belongs to the lexical signature set.
// Matching is case-insensitive and normalization-insensitive.
func (p *Profile) HasSignature(word string) bool {
	_, ok := p.signatures[orth.Fold(word)]
	return ok
}

// PatternMatches returns the total number of non-overlapping matches of all
// phonological patterns in text.
func (p *Profile) PatternMatches(text string) int {
	n := 0
	for _, re := range p.patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// Lexical returns the target-dialect form of word, if the profile maps it.
func (p *Profile) Lexical(word string) (string, bool) {
	w, ok := p.lexical[orth.NFC(word)]
	return w, ok
}

// Exception returns the fixed surface form of token, if it is a lexical
// exception to sandhi in this dialect.
func (p *Profile) Exception(token string) (string, bool) {
	s, ok := p.exceptions[orth.NFC(token)]
	return s, ok
}

// TonalSystem returns the profile's sandhi rule identities and dominant pattern.
func (p *Profile) TonalSystem() tone.System {
	rules := make([]string, len(p.SandhiRules))
	for i, r := range p.SandhiRules {
		rules[i] = r.String()
	}
	return tone.System{Rules: rules, DominantPattern: p.DominantPattern}
}

// HasTonalSystem reports whether the profile defines any tonal information.
func (p *Profile) HasTonalSystem() bool {
	return len(p.SandhiRules) > 0 || p.DominantPattern != ""
}
