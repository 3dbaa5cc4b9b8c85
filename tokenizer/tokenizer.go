// Package tokenizer splits Ewe text into words, sentences, and structured
// tokens with byte offsets.
//
// The package provides two API layers:
//
//   - Structured: WordTokens and SentenceTokens return []Token with byte
//     offsets and type metadata. The invariant s[t.Start:t.End] == t.Text
//     holds for every word token, and concatenating all word token texts
//     reconstructs the original string.
//
//   - Convenience: Words and Sentences return []string for common use cases
//     where offsets and types are not needed.
//
// Words keep their combining tone marks (U+0300–U+036F) whether the input
// is composed or decomposed, so "tó" and "tó" are both single words.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - Sentence splitting is delimiter-based and does not know abbreviations.
//   - URLs and e-mail addresses are split into words and punctuation.
package tokenizer

import "fmt"

// wordsPerTokenEstimate is the estimated ratio of total tokens to word tokens,
// used to pre-allocate the words slice in the Words convenience function.
const wordsPerTokenEstimate = 2

// TokenType classifies a token.
type TokenType int

const (
	Word        TokenType = iota // Alphabetic word with tone marks, internal hyphens and apostrophes
	Number                       // ASCII digits
	Punctuation                  // Punctuation marks: . , ! ? : ; ( ) etc.
	Space                        // Contiguous whitespace (spaces, tabs, newlines)
	Symbol                       // Everything else: emoji, mathematical symbols, etc.
	Sentence                     // Used only by SentenceTokens: a full sentence
)

// String returns the name of the token type.
func (t TokenType) String() string {
	switch t {
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Punctuation:
		return "Punctuation"
	case Space:
		return "Space"
	case Symbol:
		return "Symbol"
	case Sentence:
		return "Sentence"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token represents a unit of text with its position and classification.
type Token struct {
	Text  string    `json:"text"`
	Start int       `json:"start"` // Byte offset in the original string (inclusive)
	End   int       `json:"end"`   // Byte offset in the original string (exclusive)
	Type  TokenType `json:"type"`
}

// String returns a debug representation, e.g. Word("atí")[0:5].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}

// WordTokens splits text into all tokens with metadata.
// Concatenating all token texts reconstructs the original string.
func WordTokens(s string) []Token {
	if s == "" {
		return nil
	}
	return wordTokens(s)
}

// Words returns only Word-type token texts from the text.
func Words(s string) []string {
	if s == "" {
		return nil
	}
	tokens := wordTokens(s)
	words := make([]string, 0, len(tokens)/wordsPerTokenEstimate)
	for _, t := range tokens {
		if t.Type == Word {
			words = append(words, t.Text)
		}
	}
	return words
}

// SentenceTokens splits text into sentence spans with byte offsets.
// Each returned Token has Type=Sentence and its Text is trimmed of
// surrounding whitespace; Start and End delimit the trimmed text.
// Spans that are empty after trimming are dropped, so whitespace-only input
// yields no sentences.
//
// A sentence ends after a cluster of terminal delimiters (. ? ! … ›)
// followed by whitespace or end of input, or at a blank line.
func SentenceTokens(s string) []Token {
	if s == "" {
		return nil
	}
	return sentenceTokens(s)
}

// Sentences returns trimmed sentence strings from the text.
func Sentences(s string) []string {
	if s == "" {
		return nil
	}
	tokens := sentenceTokens(s)
	sentences := make([]string, len(tokens))
	for i, t := range tokens {
		sentences[i] = t.Text
	}
	return sentences
}
