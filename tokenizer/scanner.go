package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// wordTokens splits s into tokens using a rune-by-rune state machine.
// The caller guarantees s is non-empty.
//
// Rule priority (highest first):
//   - Whitespace runs
//   - Digit runs
//   - Words (letters plus combining marks, joined across single hyphens
//     and apostrophes)
//   - Punctuation
//   - Default: Symbol
func wordTokens(s string) []Token {
	tokens := make([]Token, 0, len(s)/4+1)

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		// Whitespace: merge contiguous into one Space token
		if unicode.IsSpace(r) {
			start := i
			i += size
			for i < len(s) {
				nr, ns := utf8.DecodeRuneInString(s[i:])
				if !unicode.IsSpace(nr) {
					break
				}
				i += ns
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Space})
			continue
		}

		if isDigit(r) {
			start := i
			for i < len(s) && isDigit(rune(s[i])) {
				i++
			}
			tokens = append(tokens, Token{Text: s[start:i], Start: start, End: i, Type: Number})
			continue
		}

		if unicode.IsLetter(r) {
			end := scanWord(s, i)
			tokens = append(tokens, Token{Text: s[i:end], Start: i, End: end, Type: Word})
			i = end
			continue
		}

		if unicode.IsPunct(r) {
			tokens = append(tokens, Token{Text: s[i : i+size], Start: i, End: i + size, Type: Punctuation})
			i += size
			continue
		}

		// Fallback: stray combining marks, emoji and the like.
		tokens = append(tokens, Token{Text: s[i : i+size], Start: i, End: i + size, Type: Symbol})
		i += size
	}

	return tokens
}

// scanWord returns the end offset of the word starting at pos.
// A word is a run of letters and combining marks. A single hyphen or
// apostrophe (U+0027, U+2019, U+02BC) is absorbed when a letter follows it,
// which keeps derived forms like "dɔwɔ-lá" together.
func scanWord(s string, pos int) int {
	i := consumeLetters(s, pos)
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != '-' && r != '\'' && r != '’' && r != 'ʼ' {
			break
		}
		next := i + size
		if next >= len(s) {
			break
		}
		nr, _ := utf8.DecodeRuneInString(s[next:])
		if !unicode.IsLetter(nr) {
			break
		}
		i = consumeLetters(s, next)
	}
	return i
}

// consumeLetters consumes a run of letters and combining marks.
func consumeLetters(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			break
		}
		pos += size
	}
	return pos
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
