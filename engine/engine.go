// Package engine is the single entry point to Ewe dialect and tone
// analysis. An Engine wires the analysis packages to one resource.Store:
//
//   - tone metrics (tone.EditDistance, tone.SystemDistance)
//   - dialect detection, segmentation, purity and distance (package dialect)
//   - dialect conversion and mixed-dialect synthesis (package convert)
//   - tone sandhi (package sandhi)
//   - morphological analysis (package morph)
//   - dialect normalization (package normalize)
//
// Construction is the only phase that may fail on the tables themselves.
// Afterwards every method is a bounded computation over immutable data,
// and an Engine is safe for concurrent use by multiple goroutines.
package engine

import (
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/az-ai-labs/ewe-lang-nlp/convert"
	"github.com/az-ai-labs/ewe-lang-nlp/dialect"
	"github.com/az-ai-labs/ewe-lang-nlp/morph"
	"github.com/az-ai-labs/ewe-lang-nlp/normalize"
	"github.com/az-ai-labs/ewe-lang-nlp/resource"
	"github.com/az-ai-labs/ewe-lang-nlp/sandhi"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// Engine bundles the analysis components over one resource store.
type Engine struct {
	store  *resource.Store
	logger *slog.Logger

	detector    *dialect.Detector
	converter   *convert.Converter
	sandhi      *sandhi.Processor
	morph       *morph.Analyzer
	normalizers map[string]*normalize.Normalizer

	morphCache int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMorphCache enables an LRU cache of size entries for AnalyzeMorphology.
func WithMorphCache(size int) Option {
	return func(e *Engine) {
		e.morphCache = size
	}
}

// New returns an engine over store.
func New(store *resource.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("engine: nil resource store")
	}
	e := &Engine{
		store:     store,
		logger:    slog.Default(),
		detector:  dialect.NewDetector(store),
		converter: convert.New(store),
		sandhi:    sandhi.New(store),
	}
	for _, opt := range opts {
		opt(e)
	}

	m, err := morph.New(store, morph.WithCache(e.morphCache))
	if err != nil {
		return nil, err
	}
	e.morph = m

	e.normalizers = make(map[string]*normalize.Normalizer)
	for _, name := range store.Names() {
		n, err := normalize.New(store, name)
		if err != nil {
			return nil, err
		}
		e.normalizers[name] = n
	}

	e.logger.Debug("engine ready",
		slog.Any("dialects", store.Names()),
		slog.String("default", store.Default().Name),
		slog.Int("morph_cache", e.morphCache))
	return e, nil
}

// NewDefault returns an engine over the embedded resource tables.
func NewDefault(opts ...Option) (*Engine, error) {
	store, err := resource.Default()
	if err != nil {
		return nil, err
	}
	return New(store, opts...)
}

// Store returns the engine's resource store.
func (e *Engine) Store() *resource.Store {
	return e.store
}

// Dialects returns the dialect names in declaration order.
func (e *Engine) Dialects() []string {
	return e.store.Names()
}

func (e *Engine) profile(name string) (*resource.Profile, error) {
	p, err := e.store.Profile(name)
	if err != nil {
		e.logger.Debug("unsupported dialect", slog.String("dialect", name))
	}
	return p, err
}

// TonalEditDistance returns the weighted edit distance between two tone
// sequences.
func (e *Engine) TonalEditDistance(a, b tone.Sequence) float64 {
	return tone.EditDistance(a, b)
}

// TonalSystemDistance compares the tonal systems of two dialects; the
// result lies in [0, 1].
func (e *Engine) TonalSystemDistance(a, b string) (float64, error) {
	pa, err := e.profile(a)
	if err != nil {
		return 0, err
	}
	pb, err := e.profile(b)
	if err != nil {
		return 0, err
	}
	return tone.SystemDistance(pa.TonalSystem(), pb.TonalSystem()), nil
}

// DialectDistance returns the weighted feature distance of two dialects.
func (e *Engine) DialectDistance(a, b string, w dialect.Weights) (float64, error) {
	pa, err := e.profile(a)
	if err != nil {
		return 0, err
	}
	pb, err := e.profile(b)
	if err != nil {
		return 0, err
	}
	return dialect.Distance(pa, pb, w), nil
}

// DetectDialect returns the most likely dialect of text.
func (e *Engine) DetectDialect(text string) string {
	return e.detector.Dialect(text)
}

// DetectAll returns every dialect ranked by score.
func (e *Engine) DetectAll(text string) []dialect.Result {
	return e.detector.DetectAll(text)
}

// AnalyzeMixedText splits text into sentence spans with their dialect and
// confidence.
func (e *Engine) AnalyzeMixedText(text string) []dialect.Segment {
	return e.detector.Segment(text)
}

// DialectPurity returns the share of text written in its main dialect.
func (e *Engine) DialectPurity(text string) float64 {
	return e.detector.Purity(text)
}

// DialectEntropy returns the entropy, in bits, of the dialects of texts.
func (e *Engine) DialectEntropy(texts []string) float64 {
	return e.detector.Entropy(texts)
}

// Convert rewrites text from source to target dialect.
func (e *Engine) Convert(text, source, target string) (string, error) {
	return e.converter.Convert(text, source, target)
}

// CreateMixedDialect converts a ratio of the long words of text from
// primary to secondary. The same seed always gives the same output.
func (e *Engine) CreateMixedDialect(text, primary, secondary string, ratio float64, seed uint64) (string, error) {
	rng := rand.New(rand.NewPCG(seed, 0))
	return e.converter.Mix(text, primary, secondary, ratio, rng)
}

// ApplySandhi returns the sandhi surface form of token in dialect.
func (e *Engine) ApplySandhi(token, dialect string) (string, error) {
	return e.sandhi.ApplyToken(token, dialect)
}

// ResolveSandhi is ApplySandhi reporting how the surface form was reached.
func (e *Engine) ResolveSandhi(token, dialect string) (sandhi.Resolution, error) {
	return e.sandhi.Resolve(token, dialect)
}

// ApplySandhiTones applies the dialect's sandhi rules to a tone sequence.
func (e *Engine) ApplySandhiTones(seq tone.Sequence, dialect string) (tone.Sequence, error) {
	return e.sandhi.ApplyTones(seq, dialect)
}

// ApplySandhiPhrase applies sandhi to every word of phrase, including rules
// that look at the following word.
func (e *Engine) ApplySandhiPhrase(phrase, dialect string) (string, error) {
	return e.sandhi.ApplyPhrase(phrase, dialect)
}

// AnalyzeMorphology returns the morphological structure of token.
func (e *Engine) AnalyzeMorphology(token string) morph.Analysis {
	return e.morph.Analyze(token)
}

// Morphology returns the engine's morphological analyzer, for noun-class,
// plural and agreement queries.
func (e *Engine) Morphology() *morph.Analyzer {
	return e.morph
}

// Normalize converts text from its detected dialect to target.
func (e *Engine) Normalize(text, target string) (string, error) {
	n, err := e.normalizer(target)
	if err != nil {
		return "", err
	}
	return n.Normalize(text)
}

// PreserveFeatures converts to target only the sentences of text detected
// in another dialect.
func (e *Engine) PreserveFeatures(text, target string) (string, error) {
	n, err := e.normalizer(target)
	if err != nil {
		return "", err
	}
	return n.PreserveFeatures(text)
}

func (e *Engine) normalizer(target string) (*normalize.Normalizer, error) {
	if n, ok := e.normalizers[target]; ok {
		return n, nil
	}
	_, err := e.profile(target)
	return nil, err
}
