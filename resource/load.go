package resource

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/az-ai-labs/ewe-lang-nlp/data"
	"github.com/az-ai-labs/ewe-lang-nlp/tone"
)

// Layout of a resource directory.
const (
	ManifestFile   = "manifest.yaml"
	MorphologyFile = "morphology.yaml"
	DialectDir     = "dialects"
)

type manifestFile struct {
	Default  string   `yaml:"default"`
	Dialects []string `yaml:"dialects"`
}

type profileFile struct {
	Name                 string            `yaml:"name"`
	Weight               float64           `yaml:"weight"`
	DominantPattern      string            `yaml:"dominant_pattern"`
	LexicalSignatures    []string          `yaml:"lexical_signatures"`
	PhonologicalPatterns []string          `yaml:"phonological_patterns"`
	SandhiRules          []sandhiRuleFile  `yaml:"sandhi_rules"`
	Exceptions           map[string]string `yaml:"exceptions"`
	PhonologicalRules    []ruleFile        `yaml:"phonological_rules"`
	LexicalMappings      []mappingFile     `yaml:"lexical_mappings"`
	TonalRules           []ruleFile        `yaml:"tonal_rules"`
}

type sandhiRuleFile struct {
	Pattern     string `yaml:"pattern"`
	Next        string `yaml:"next"`
	Replacement string `yaml:"replacement"`
}

type ruleFile struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

type mappingFile struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type morphologyFile struct {
	NounClasses []struct {
		Name      string   `yaml:"name"`
		Prefixes  []string `yaml:"prefixes"`
		Plural    string   `yaml:"plural"`
		Agreement string   `yaml:"agreement"`
		Default   bool     `yaml:"default"`
	} `yaml:"noun_classes"`
	Suffixes []struct {
		Surface  string `yaml:"surface"`
		Gloss    string `yaml:"gloss"`
		POS      string `yaml:"pos"`
		Semantic string `yaml:"semantic"`
	} `yaml:"suffixes"`
	Stems map[string]string `yaml:"stems"`
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used during loading. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load reads a resource directory from fsys:
//
//	manifest.yaml          default dialect and declaration order
//	dialects/<name>.yaml   one profile per dialect listed in the manifest
//	morphology.yaml        noun classes, suffixes, stems
//
// Dialect files are parsed concurrently; the resulting store keeps the
// manifest order.
func Load(fsys fs.FS, opts ...Option) (*Store, error) {
	o := loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var man manifestFile
	if err := decodeFile(fsys, ManifestFile, &man); err != nil {
		return nil, err
	}
	if len(man.Dialects) == 0 {
		return nil, resourceErr(ManifestFile, "no dialects listed")
	}
	if man.Default == "" {
		man.Default = man.Dialects[0]
	}
	if !slices.Contains(man.Dialects, man.Default) {
		return nil, resourceErr(ManifestFile, "default dialect %q is not listed", man.Default)
	}

	profiles := make([]*Profile, len(man.Dialects))
	var morph *Morphology

	var g errgroup.Group
	for i, name := range man.Dialects {
		g.Go(func() error {
			p, err := readProfile(fsys, name)
			if err != nil {
				return err
			}
			profiles[i] = p
			o.logger.Debug("dialect profile loaded",
				slog.String("dialect", name),
				slog.Int("signatures", len(p.LexicalSignatures)),
				slog.Int("sandhi_rules", len(p.SandhiRules)))
			return nil
		})
	}
	g.Go(func() error {
		m, err := readMorphology(fsys)
		if err != nil {
			return err
		}
		morph = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	store, err := assemble(profiles, morph)
	if err != nil {
		return nil, err
	}
	store.defaultName = man.Default

	o.logger.Debug("resource store loaded",
		slog.Int("dialects", len(profiles)),
		slog.String("default", man.Default))
	return store, nil
}

// LoadDir is Load over a directory on the local file system.
func LoadDir(dir string, opts ...Option) (*Store, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, &ResourceError{Path: dir, Err: err}
	}
	return Load(os.DirFS(dir), opts...)
}

// defaultStore loads the embedded tables exactly once.
var defaultStore = sync.OnceValues(func() (*Store, error) {
	fsys, err := data.Resources()
	if err != nil {
		return nil, &ResourceError{Path: "embedded", Err: err}
	}
	return Load(fsys)
})

// Default returns the store built from the tables embedded in the binary.
// The first call loads them; later calls return the same store.
func Default() (*Store, error) {
	return defaultStore()
}

func readProfile(fsys fs.FS, name string) (*Profile, error) {
	file := path.Join(DialectDir, name+".yaml")
	var pf profileFile
	if err := decodeFile(fsys, file, &pf); err != nil {
		return nil, err
	}
	if pf.Name != name {
		return nil, resourceErr(file, "declares dialect %q, manifest expects %q", pf.Name, name)
	}

	p := &Profile{
		Name:                 pf.Name,
		Weight:               pf.Weight,
		DominantPattern:      pf.DominantPattern,
		LexicalSignatures:    pf.LexicalSignatures,
		PhonologicalPatterns: pf.PhonologicalPatterns,
		Exceptions:           pf.Exceptions,
	}
	for i, r := range pf.SandhiRules {
		rule, err := parseSandhiRule(r)
		if err != nil {
			return nil, resourceErr(file, "sandhi rule %d: %w", i, err)
		}
		p.SandhiRules = append(p.SandhiRules, rule)
	}
	for _, r := range pf.PhonologicalRules {
		p.PhonologicalRules = append(p.PhonologicalRules,
			ConversionRule{Kind: Phonological, Pattern: r.Pattern, Replacement: r.Replacement})
	}
	for _, m := range pf.LexicalMappings {
		p.LexicalMappings = append(p.LexicalMappings,
			ConversionRule{Kind: Lexical, Pattern: m.From, Replacement: m.To})
	}
	for _, r := range pf.TonalRules {
		p.TonalRules = append(p.TonalRules,
			ConversionRule{Kind: Tonal, Pattern: r.Pattern, Replacement: r.Replacement})
	}

	if err := p.compile(file); err != nil {
		return nil, err
	}
	return p, nil
}

func parseSandhiRule(r sandhiRuleFile) (SandhiRule, error) {
	pattern, err := tone.Parse(r.Pattern, true)
	if err != nil {
		return SandhiRule{}, err
	}
	next, err := tone.Parse(r.Next, true)
	if err != nil {
		return SandhiRule{}, err
	}
	repl, err := tone.Parse(r.Replacement, false)
	if err != nil {
		return SandhiRule{}, err
	}
	return SandhiRule{Pattern: pattern, Next: next, Replacement: repl}, nil
}

func readMorphology(fsys fs.FS) (*Morphology, error) {
	var mf morphologyFile
	if err := decodeFile(fsys, MorphologyFile, &mf); err != nil {
		return nil, err
	}
	m := &Morphology{Stems: mf.Stems}
	for _, c := range mf.NounClasses {
		m.NounClasses = append(m.NounClasses, NounClass{
			Name:      c.Name,
			Prefixes:  c.Prefixes,
			Plural:    c.Plural,
			Agreement: c.Agreement,
			Default:   c.Default,
		})
	}
	for _, s := range mf.Suffixes {
		m.Suffixes = append(m.Suffixes, Suffix{
			Surface:  s.Surface,
			Gloss:    s.Gloss,
			POS:      s.POS,
			Semantic: s.Semantic,
		})
	}
	if err := m.compile(MorphologyFile); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeFile strictly decodes one YAML document: unknown keys and empty
// files are errors.
func decodeFile(fsys fs.FS, name string, v any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return &ResourceError{Path: name, Err: err}
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return resourceErr(name, "empty file")
		}
		return &ResourceError{Path: name, Err: err}
	}
	return nil
}
