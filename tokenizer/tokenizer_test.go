package tokenizer

import (
	"strings"
	"sync"
	"testing"
)

// verifyInvariants checks two invariants that must hold for every tokenization:
//   - Byte offset invariant: input[t.Start:t.End] == t.Text for every token.
//   - Reconstruction invariant: concatenating all token texts reproduces the input.
func verifyInvariants(t *testing.T, input string, tokens []Token) {
	t.Helper()
	for i, tok := range tokens {
		if got := input[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("token %d offset invariant broken: input[%d:%d]=%q, Text=%q",
				i, tok.Start, tok.End, got, tok.Text)
		}
	}
	var buf strings.Builder
	for _, tok := range tokens {
		buf.WriteString(tok.Text)
	}
	if buf.String() != input {
		t.Errorf("reconstruction invariant broken:\ngot:  %q\nwant: %q", buf.String(), input)
	}
}

// ---------------------------------------------------------------------------
// WordTokens
// ---------------------------------------------------------------------------

func TestWordTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"simple word", "fia", []Token{
			{Text: "fia", Start: 0, End: 3, Type: Word},
		}},
		{"two words", "fia gá", []Token{
			{Text: "fia", Start: 0, End: 3, Type: Word},
			{Text: " ", Start: 3, End: 4, Type: Space},
			{Text: "gá", Start: 4, End: 7, Type: Word},
		}},
		{"ewe letters", "ɖɔ ŋɔ", []Token{
			{Text: "ɖɔ", Start: 0, End: 4, Type: Word},
			{Text: " ", Start: 4, End: 5, Type: Space},
			{Text: "ŋɔ", Start: 5, End: 9, Type: Word},
		}},
		{"decomposed tone mark stays in word", "to\u0301 la", []Token{
			{Text: "to\u0301", Start: 0, End: 4, Type: Word},
			{Text: " ", Start: 4, End: 5, Type: Space},
			{Text: "la", Start: 5, End: 7, Type: Word},
		}},
		{"hyphenated suffix", "dɔwɔ-lá", []Token{
			{Text: "dɔwɔ-lá", Start: 0, End: 10, Type: Word},
		}},
		{"trailing hyphen is punctuation", "fia-", []Token{
			{Text: "fia", Start: 0, End: 3, Type: Word},
			{Text: "-", Start: 3, End: 4, Type: Punctuation},
		}},
		{"apostrophe joins letters", "nye’a", []Token{
			{Text: "nye’a", Start: 0, End: 7, Type: Word},
		}},
		{"number and punctuation", "ƒe 2024!", []Token{
			{Text: "ƒe", Start: 0, End: 3, Type: Word},
			{Text: " ", Start: 3, End: 4, Type: Space},
			{Text: "2024", Start: 4, End: 8, Type: Number},
			{Text: "!", Start: 8, End: 9, Type: Punctuation},
		}},
		{"symbol", "a + b", []Token{
			{Text: "a", Start: 0, End: 1, Type: Word},
			{Text: " ", Start: 1, End: 2, Type: Space},
			{Text: "+", Start: 2, End: 3, Type: Symbol},
			{Text: " ", Start: 3, End: 4, Type: Space},
			{Text: "b", Start: 4, End: 5, Type: Word},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := WordTokens(tt.input)
			verifyInvariants(t, tt.input, got)
			if len(got) != len(tt.want) {
				t.Fatalf("WordTokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWordTokensEmpty(t *testing.T) {
	t.Parallel()
	if got := WordTokens(""); got != nil {
		t.Errorf("WordTokens(\"\") = %v, want nil", got)
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	got := Words("Míawoe zɔ yi àgblemé, 3 zi.")
	want := []string{"Míawoe", "zɔ", "yi", "àgblemé", "zi"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Words = %q, want %q", got, want)
	}
	if Words("") != nil {
		t.Error("Words(\"\") should be nil")
	}
}

// ---------------------------------------------------------------------------
// Sentences
// ---------------------------------------------------------------------------

func TestSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "Ŋdi na wò", []string{"Ŋdi na wò"}},
		{"two", "Ŋdi na wò. Èfɔ̀ a?", []string{"Ŋdi na wò.", "Èfɔ̀ a?"}},
		{"lowercase after period still breaks", "fia va. ame yi", []string{"fia va.", "ame yi"}},
		{"cluster", "Ao?! Ɛ̃", []string{"Ao?!", "Ɛ̃"}},
		{"ellipsis char", "nya… gbe", []string{"nya…", "gbe"}},
		{"guillemet", "‹ Edzɔ ›  yi", []string{"‹ Edzɔ ›", "yi"}},
		{"no space after period", "3.5 ƒe", []string{"3.5 ƒe"}},
		{"blank line", "fia\n\name", []string{"fia", "ame"}},
		{"blank line with spaces", "fia\n  \name", []string{"fia", "ame"}},
		{"whitespace only", "   \n\t ", []string{}},
		{"surrounding whitespace trimmed", "  fia.  ", []string{"fia."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Sentences(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Sentences(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSentenceTokensOffsets(t *testing.T) {
	t.Parallel()

	in := "  Ŋdi na wò.  Èfɔ̀ a?\n\n"
	for _, tok := range SentenceTokens(in) {
		if in[tok.Start:tok.End] != tok.Text {
			t.Errorf("offset invariant broken for %v", tok)
		}
		if tok.Type != Sentence {
			t.Errorf("type = %v, want Sentence", tok.Type)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	t.Parallel()
	if Word.String() != "Word" || Sentence.String() != "Sentence" {
		t.Error("unexpected TokenType names")
	}
	if got := TokenType(42).String(); got != "TokenType(42)" {
		t.Errorf("got %q", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	t.Parallel()

	const workers = 8
	in := "Míawoe zɔ yi àgblemé. Ŋdi na wò!"
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verifyInvariants(t, in, WordTokens(in))
			if n := len(Sentences(in)); n != 2 {
				t.Errorf("got %d sentences, want 2", n)
			}
		}()
	}
	wg.Wait()
}

func FuzzWordTokens(f *testing.F) {
	f.Add("Míawoe zɔ yi àgblemé")
	f.Add("dɔwɔ-lá")
	f.Add("tó")
	f.Add("́̀")
	f.Add("\xff\xfe")
	f.Add("")

	f.Fuzz(func(t *testing.T, s string) {
		verifyInvariants(t, s, WordTokens(s))
		for _, tok := range SentenceTokens(s) {
			if s[tok.Start:tok.End] != tok.Text {
				t.Errorf("sentence offset invariant broken for %v", tok)
			}
		}
	})
}
