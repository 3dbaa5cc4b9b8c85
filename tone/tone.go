// Package tone models Ewe tone symbols and the distances between tone
// sequences and between whole tonal systems.
//
// A Tone is a pitch-level category borne by one syllable nucleus. The level
// tones Low, Mid and High are totally ordered (L=0 < M=1 < H=2); the contour
// tones Falling and Rising extend the alphabet but have no level.
//
// All functions are pure and safe for concurrent use by multiple goroutines.
package tone

import (
	"fmt"
	"strings"
	"unicode"
)

// Tone is a single tone symbol, e.g. "H".
type Tone string

const (
	Low     Tone = "L"
	Mid     Tone = "M"
	High    Tone = "H"
	Falling Tone = "F"
	Rising  Tone = "R"

	// Any matches every tone. Only meaningful inside rule patterns.
	Any Tone = "*"
)

// levels maps level tones to their position on the pitch hierarchy.
var levels = map[Tone]int{
	Low:  0,
	Mid:  1,
	High: 2,
}

// Level returns the ordinal position of t on the L<M<H hierarchy.
// ok is false for contour tones, wildcards and unknown symbols.
func (t Tone) Level() (level int, ok bool) {
	level, ok = levels[t]
	return level, ok
}

// Valid reports whether t belongs to the tone alphabet (wildcard excluded).
func (t Tone) Valid() bool {
	switch t {
	case Low, Mid, High, Falling, Rising:
		return true
	}
	return false
}

// Sequence is an ordered run of tones, one per syllable nucleus of a token.
// Sequences are treated as values: functions in this module never modify a
// Sequence they receive.
type Sequence []Tone

// String returns the space-separated symbols, e.g. "H L H".
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

// Equal reports whether s and o hold the same symbols in the same order.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of s that shares no memory with it.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// HasPrefix reports whether pattern matches the start of s.
// Any in pattern matches every tone.
func (s Sequence) HasPrefix(pattern Sequence) bool {
	if len(pattern) > len(s) {
		return false
	}
	for i, p := range pattern {
		if p != Any && p != s[i] {
			return false
		}
	}
	return true
}

// InvalidToneError reports a symbol outside the tone alphabet.
type InvalidToneError struct {
	Index  int    // position in the sequence
	Symbol string // offending symbol
}

func (e *InvalidToneError) Error() string {
	return fmt.Sprintf("tone: invalid symbol %q at index %d", e.Symbol, e.Index)
}

// Parse reads a tone sequence written as "H L H", "H,L,H", "H-L-H" or "HLH".
//
// Unknown symbols are kept in the returned sequence so that metrics can
// still price them, and the first one is reported as *InvalidToneError.
// The wildcard "*" is accepted only when allowWildcard is set.
func Parse(s string, allowWildcard bool) (Sequence, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '-'
	})
	if len(fields) == 1 && len(fields[0]) > 1 {
		// Compact form: one symbol per rune.
		compact := fields[0]
		fields = fields[:0]
		for _, r := range compact {
			fields = append(fields, string(r))
		}
	}

	seq := make(Sequence, 0, len(fields))
	var firstErr error
	for i, f := range fields {
		t := Tone(strings.ToUpper(f))
		if !t.Valid() && !(allowWildcard && t == Any) && firstErr == nil {
			firstErr = &InvalidToneError{Index: i, Symbol: f}
		}
		seq = append(seq, t)
	}
	return seq, firstErr
}

// MustParse is like Parse but panics on invalid input.
// Intended for tests and package-level tables.
func MustParse(s string) Sequence {
	seq, err := Parse(s, true)
	if err != nil {
		panic(err)
	}
	return seq
}
