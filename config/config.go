// Package config holds the tunable parameters of the search core. The
// core itself has no network/schema configuration surface (spec.md §1
// places that in the caller's hands); this package only covers the
// handful of numeric knobs the algorithms need defaults for.
package config

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Params are tunables for callers building an oriter/art search or
// running synonym reduction; no package of this module reads them itself,
// so a caller passes the values on explicitly. Zero Params (via New with
// no options) holds sane defaults.
type Params struct {
	// SearchBudget is the duration a caller passes to searchctx.NewBudget
	// for an Or-Iterator intersection, per spec.md §5 (ART fuzzy search
	// takes no budget). Zero disables the budget.
	SearchBudget time.Duration `yaml:"search_budget_ms_as_duration"`

	// DefaultTypoBudget is the max_cost used by synonym reduction and by
	// ART fuzzy search when the caller doesn't specify one.
	DefaultTypoBudget int `yaml:"default_typo_budget"`

	// MaxFuzzyWords is a limit for a caller to pass to ART.FuzzySearch.
	MaxFuzzyWords int `yaml:"max_fuzzy_words"`

	// MaxSynonymCandidates caps fuzzy-matched synonym phrase candidates
	// considered per window, per spec.md §4.5 ("up to 10 candidate leaves").
	MaxSynonymCandidates int `yaml:"max_synonym_candidates"`
}

// Option configures Params.
type Option func(*Params)

// WithSearchBudget overrides the default search wall-clock budget.
func WithSearchBudget(d time.Duration) Option {
	return func(p *Params) { p.SearchBudget = d }
}

// WithDefaultTypoBudget overrides the default typo budget.
func WithDefaultTypoBudget(n int) Option {
	return func(p *Params) { p.DefaultTypoBudget = n }
}

// WithMaxFuzzyWords overrides the fuzzy-search result cap.
func WithMaxFuzzyWords(n int) Option {
	return func(p *Params) { p.MaxFuzzyWords = n }
}

// WithMaxSynonymCandidates overrides the per-window synonym candidate cap.
func WithMaxSynonymCandidates(n int) Option {
	return func(p *Params) { p.MaxSynonymCandidates = n }
}

// New builds Params from defaults plus any options.
func New(opts ...Option) *Params {
	p := &Params{
		SearchBudget:         1500 * time.Millisecond,
		DefaultTypoBudget:    2,
		MaxFuzzyWords:        10,
		MaxSynonymCandidates: 10,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads YAML-encoded overrides from r on top of New()'s defaults.
// Unset fields in the document keep their default value.
func Load(r io.Reader) (*Params, error) {
	p := New()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(p); err != nil && err != io.EOF {
		return nil, err
	}
	return p, nil
}
