package tokenizer

import (
	"unicode"
	"unicode/utf8"
)

// isTerminal reports whether r closes a sentence.
func isTerminal(r rune) bool {
	switch r {
	case '.', '?', '!', '…', '›':
		return true
	}
	return false
}

// sentenceTokens splits s into trimmed sentence tokens.
func sentenceTokens(s string) []Token {
	tokens := make([]Token, 0, len(s)/40+1)
	sentStart := 0

	emit := func(end int) {
		if tok, ok := trimmed(s, sentStart, end); ok {
			tokens = append(tokens, tok)
		}
		sentStart = end
	}

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		// Blank line forces a break regardless of punctuation.
		if r == '\n' && isBlankLine(s, i+size) {
			emit(i)
			i += size
			continue
		}

		if isTerminal(r) {
			// Consume the whole delimiter cluster ("?!", "...", "!›").
			j := i + size
			for j < len(s) {
				nr, ns := utf8.DecodeRuneInString(s[j:])
				if !isTerminal(nr) {
					break
				}
				j += ns
			}
			if j == len(s) || startsWithSpace(s, j) {
				emit(j)
			}
			i = j
			continue
		}

		i += size
	}

	emit(len(s))
	return tokens
}

// isBlankLine reports whether s[pos:] starts with optional horizontal
// whitespace followed by a newline.
func isBlankLine(s string, pos int) bool {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if r == '\n' {
			return true
		}
		if !unicode.IsSpace(r) {
			return false
		}
		pos += size
	}
	return false
}

func startsWithSpace(s string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return unicode.IsSpace(r)
}

// trimmed returns the sentence token for s[start:end] without surrounding
// whitespace, or false when nothing but whitespace remains.
func trimmed(s string, start, end int) (Token, bool) {
	for start < end {
		r, size := utf8.DecodeRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	if start == end {
		return Token{}, false
	}
	return Token{Text: s[start:end], Start: start, End: end, Type: Sentence}, true
}
