// Package resource is the read-only store of linguistic tables consumed by
// the analysis packages: dialect profiles (lexical signatures, phonological
// patterns, sandhi rules, lexical exceptions, conversion rules) and the
// morphological tables (noun classes, derivational suffixes, stem lexicon).
//
// A Store is built once, by Load, LoadDir, Default or New, and is immutable
// afterwards. Loading is the only phase that performs I/O; it must complete
// before the store is shared. After that a Store is safe for concurrent use
// by multiple goroutines without locking.
//
// Any missing or malformed table makes construction fail with a
// *ResourceError; a store is never built from partial data.
package resource

import (
	"slices"
)

// Store is an immutable registry of dialect profiles keyed by name.
type Store struct {
	profiles    []*Profile // declaration order
	byName      map[string]*Profile
	defaultName string
	morphology  *Morphology
}

// New builds a store from already-parsed tables. The first profile is the
// default dialect. morphology may be nil for callers that only need the
// dialect tables; Store.Morphology then reports a *ResourceError.
//
// New takes ownership of its arguments: they must not be modified after
// the call.
func New(profiles []*Profile, morphology *Morphology) (*Store, error) {
	for i, p := range profiles {
		if p == nil {
			return nil, resourceErr("profiles", "profile %d is nil", i)
		}
		if err := p.compile(p.Name); err != nil {
			return nil, err
		}
	}
	if morphology != nil {
		if err := morphology.compile("morphology"); err != nil {
			return nil, err
		}
	}
	return assemble(profiles, morphology)
}

// assemble indexes compiled tables.
func assemble(profiles []*Profile, morphology *Morphology) (*Store, error) {
	if len(profiles) == 0 {
		return nil, resourceErr("profiles", "no dialect profiles")
	}
	s := &Store{
		profiles:    make([]*Profile, 0, len(profiles)),
		byName:      make(map[string]*Profile, len(profiles)),
		defaultName: profiles[0].Name,
		morphology:  morphology,
	}
	for _, p := range profiles {
		if _, dup := s.byName[p.Name]; dup {
			return nil, resourceErr("profiles", "duplicate dialect %q", p.Name)
		}
		s.profiles = append(s.profiles, p)
		s.byName[p.Name] = p
	}
	return s, nil
}

// Profile returns the named dialect profile or an *UnsupportedDialectError.
func (s *Store) Profile(name string) (*Profile, error) {
	if p, ok := s.byName[name]; ok {
		return p, nil
	}
	return nil, &UnsupportedDialectError{Name: name, Known: s.Names()}
}

// Profiles returns all profiles in declaration order.
func (s *Store) Profiles() []*Profile {
	return slices.Clone(s.profiles)
}

// Names returns the dialect names in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.profiles))
	for i, p := range s.profiles {
		names[i] = p.Name
	}
	return names
}

// Default returns the default dialect profile.
func (s *Store) Default() *Profile {
	return s.byName[s.defaultName]
}

// Morphology returns the morphological tables.
func (s *Store) Morphology() (*Morphology, error) {
	if s.morphology == nil {
		return nil, resourceErr("morphology", "table not loaded")
	}
	return s.morphology, nil
}
