package sandhi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az-ai-labs/ewe-lang-nlp/internal/orth"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

func defaultProcessor(t testing.TB) *Processor {
	t.Helper()
	s, err := resource.Default()
	require.NoError(t, err)
	return New(s)
}

func TestApplyTones(t *testing.T) {
	t.Parallel()
	p := defaultProcessor(t)

	tests := []struct {
		name    string
		dialect string
		in      string
		want    string
	}{
		{"anlo prefix rewrite keeps the tail", "anlo", "H L H", "M L H"},
		{"anlo exact match", "anlo", "H L", "M L"},
		{"anlo rising", "anlo", "R H", "L H"},
		{"anlo cross-token rule is not applied", "anlo", "F", "F"},
		{"anlo no match", "anlo", "L H", "L H"},
		{"inland", "inland", "H L H", "L L H"},
		{"gbekplo", "gbekplo", "H L", "H M"},
		{"empty", "anlo", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in, _ := tone.Parse(tt.in, false)
			orig := in.Clone()
			got, err := p.ApplyTones(in, tt.dialect)
			require.NoError(t, err)
			want, _ := tone.Parse(tt.want, false)
			assert.Equal(t, want.String(), got.String())
			assert.Equal(t, orig, in, "input must not be modified")
		})
	}
}

func TestFirstMatchWins(t *testing.T) {
	t.Parallel()
	s, err := resource.New([]*resource.Profile{{
		Name: "ordered",
		SandhiRules: []resource.SandhiRule{
			{Pattern: tone.MustParse("H"), Replacement: tone.MustParse("L")},
			{Pattern: tone.MustParse("H L"), Replacement: tone.MustParse("M M")},
			{Pattern: tone.MustParse("* L"), Replacement: tone.MustParse("M M")},
		},
	}}, nil)
	require.NoError(t, err)
	p := New(s)

	got, err := p.ApplyTones(tone.MustParse("H L"), "ordered")
	require.NoError(t, err)
	assert.Equal(t, tone.MustParse("L L"), got, "first rule wins over a longer match")

	got, err = p.ApplyTones(tone.MustParse("M L H"), "ordered")
	require.NoError(t, err)
	assert.Equal(t, tone.MustParse("M M H"), got, "wildcard pattern")
}

func TestTokenAndSequenceAgree(t *testing.T) {
	t.Parallel()
	p := defaultProcessor(t)

	for _, dialect := range []string{"anlo", "inland", "gbekplo"} {
		for _, token := range []string{"fíà", "vă", "avìké", "tó", "fíàdé", "nyuie"} {
			t.Run(dialect+"/"+token, func(t *testing.T) {
				t.Parallel()
				surface, err := p.ApplyToken(token, dialect)
				require.NoError(t, err)
				seq, err := p.ApplyTones(orth.Tones(token), dialect)
				require.NoError(t, err)
				assert.Equal(t, seq, orth.Tones(surface))
			})
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	p := defaultProcessor(t)

	tests := []struct {
		name    string
		dialect string
		token   string
		want    Resolution
	}{
		{"rule", "anlo", "fíà", Resolution{Surface: "fià", Outcome: ViaRule, Rule: "H L > M L"}},
		{"rising breve", "anlo", "vă", Resolution{Surface: "và", Outcome: ViaRule, Rule: "R > L"}},
		{"exception beats a matching rule", "anlo", "ɖévì", Resolution{Surface: "ɖévì", Outcome: ViaException}},
		{"exception", "anlo", "akpé", Resolution{Surface: "akpé", Outcome: ViaException}},
		{"decomposed exception", "anlo", "akpe\u0301", Resolution{Surface: "akpé", Outcome: ViaException}},
		{"lone high needs a following low", "anlo", "tó", Resolution{Surface: "tó", Outcome: Unchanged}},
		{"unmarked", "anlo", "fia", Resolution{Surface: "fia", Outcome: Unchanged}},
		{"no vowels", "anlo", "ŋ", Resolution{Surface: "ŋ", Outcome: Unchanged}},
		{"inland lowering", "inland", "fíà", Resolution{Surface: "fìà", Outcome: ViaRule, Rule: "H L > L L"}},
		{"gbekplo", "gbekplo", "fíà", Resolution{Surface: "fía", Outcome: ViaRule, Rule: "H L > H M"}},
		{"exception is per dialect", "gbekplo", "ɖévì", Resolution{Surface: "ɖévi", Outcome: ViaRule, Rule: "H L > H M"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Resolve(tt.token, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			surface, err := p.ApplyToken(tt.token, tt.dialect)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Surface, surface)
		})
	}
}

func TestApplyPhrase(t *testing.T) {
	t.Parallel()
	p := defaultProcessor(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"high before low", "tó là", "to là"},
		{"falling before low", "nê ò", "né ò"},
		{"tab is whitespace", "nê\tò", "né\tò"},
		{"punctuation ends the context", "tó, là", "tó, là"},
		{"last word has no context", "là tó", "là tó"},
		{"single-token rules still apply", "fíà tó", "fià tó"},
		{"exception in phrase", "akpé là", "akpé là"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.ApplyPhrase(tt.in, "anlo")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnsupportedDialect(t *testing.T) {
	t.Parallel()
	p := defaultProcessor(t)

	_, err := p.ApplyTones(tone.MustParse("H"), "ho")
	assert.ErrorIs(t, err, resource.ErrUnsupportedDialect)
	_, err = p.Resolve("tó", "ho")
	assert.ErrorIs(t, err, resource.ErrUnsupportedDialect)
	_, err = p.ApplyToken("tó", "ho")
	assert.ErrorIs(t, err, resource.ErrUnsupportedDialect)
	_, err = p.ApplyPhrase("tó", "ho")
	assert.ErrorIs(t, err, resource.ErrUnsupportedDialect)
}

func TestOutcomeJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Resolution{Surface: "fià", Outcome: ViaRule, Rule: "H L > M L"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"surface":"fià","outcome":"rule","rule":"H L > M L"}`, string(b))
	assert.Equal(t, "Outcome(7)", Outcome(7).String())
}

func BenchmarkApplyPhrase(b *testing.B) {
	p := defaultProcessor(b)
	phrase := "Nê ò tó là fíà akpé vă le afímà"
	for b.Loop() {
		_, _ = p.ApplyPhrase(phrase, "anlo")
	}
}
