// Package orth handles Ewe orthography: Unicode composition, case folding
// and the mapping between tone diacritics and tone symbols.
//
// Tone is written with combining marks on the vowel of each syllable:
//
//	acute      ́  High
//	grave      ̀  Low
//	macron     ̄  Mid
//	circumflex ̂  Falling
//	caron      ̌  Rising (the breve ̆ is accepted as a typewriter variant)
//
// An unmarked vowel carries Mid tone. Other marks (the nasal tilde) are
// kept untouched.
//
// All functions are safe for concurrent use.
package orth

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// markToTone maps combining tone marks to tone symbols.
var markToTone = map[rune]tone.Tone{
	'\u0301': tone.High,
	'\u0300': tone.Low,
	'\u0304': tone.Mid,
	'\u0302': tone.Falling,
	'\u030C': tone.Rising,
	'\u0306': tone.Rising,
}

// toneToMark is the canonical mark written for each tone. Mid is unmarked.
var toneToMark = map[tone.Tone]rune{
	tone.High:    '\u0301',
	tone.Low:     '\u0300',
	tone.Falling: '\u0302',
	tone.Rising:  '\u030C',
}

// IsVowel reports whether r is an Ewe vowel letter (without diacritics).
func IsVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'ɛ', 'i', 'o', 'ɔ', 'u':
		return true
	}
	return false
}

// IsToneMark reports whether r is a combining mark that carries tone.
func IsToneMark(r rune) bool {
	_, ok := markToTone[r]
	return ok
}

// NFC returns s in Unicode normalization form C.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Fold returns the NFC, lowercase form of s used for all table lookups.
func Fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Tones returns the tone sequence of word, one tone per vowel nucleus.
// Returns an empty sequence for words without vowels.
func Tones(word string) tone.Sequence {
	seq := tone.Sequence{}
	inNucleus := false
	for _, r := range norm.NFD.String(word) {
		switch {
		case IsVowel(r):
			seq = append(seq, tone.Mid)
			inNucleus = true
		case unicode.Is(unicode.Mn, r):
			if t, ok := markToTone[r]; ok && inNucleus {
				seq[len(seq)-1] = t
			}
		default:
			inNucleus = false
		}
	}
	return seq
}

// StripTones removes tone marks from word and returns it in NFC.
func StripTones(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range norm.NFD.String(word) {
		if IsToneMark(r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// Mark rewrites the tone marks of word so that its nuclei carry seq.
// Nuclei beyond len(seq) keep their original marks; extra tones in seq are
// ignored. Symbols outside the alphabet leave the nucleus unmarked.
// The result is in NFC.
func Mark(word string, seq tone.Sequence) string {
	decomposed := norm.NFD.String(word)

	var b strings.Builder
	b.Grow(len(decomposed) + len(seq)*2)

	nucleus := -1
	pending := false // a nucleus is open and still needs its new mark
	flush := func() {
		if pending {
			if m, ok := toneToMark[seq[nucleus]]; ok {
				b.WriteRune(m)
			}
			pending = false
		}
	}

	for _, r := range decomposed {
		switch {
		case IsVowel(r):
			flush()
			nucleus++
			b.WriteRune(r)
			pending = nucleus < len(seq)
		case unicode.Is(unicode.Mn, r):
			if pending && IsToneMark(r) {
				continue
			}
			b.WriteRune(r)
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()

	return norm.NFC.String(b.String())
}
