// Package synonym implements the Synonym Index and Reduction of
// spec.md §4.5: an ART-backed index from indexed token-phrases to
// synonym definitions, and the window/recursion/splice reduction
// algorithm that expands a query's token vector into its synonym
// rewrites.
package synonym

// Synonym is the entity of spec.md §3/§6: either a one-way rule
// (Root non-empty: Root → every vector in Synonyms) or a multi-way rule
// (Root empty: every listed vector in Synonyms is mutually equivalent).
type Synonym struct {
	ID             string     `json:"id"`
	Root           []string   `json:"root,omitempty"`
	Synonyms       [][]string `json:"synonyms"`
	Locale         string     `json:"locale,omitempty"`
	SymbolsToIndex []string   `json:"symbols_to_index,omitempty"`
}

// IsOneWay reports whether this is a one-way (root→synonyms) rule.
func (s *Synonym) IsOneWay() bool { return len(s.Root) > 0 }

// IndexedForms returns the token vectors that should be keys into the
// synonym ART, per spec.md §4.5's storage description: the root for a
// one-way rule, or every synonym vector for a multi-way rule.
func (s *Synonym) IndexedForms() [][]string {
	if s.IsOneWay() {
		return [][]string{s.Root}
	}
	return s.Synonyms
}

// Alternatives returns every replacement vector for a match on
// matchedForm (identified by its position among IndexedForms), per
// spec.md §4.5: "for each synonym's alternative vector A != the matched
// form". For a one-way rule the matched form is always the root, so
// every synonym vector is an alternative; for a multi-way rule the
// matched form is itself one of the synonym vectors, so every *other*
// vector is an alternative.
func (s *Synonym) Alternatives(matchedIndex int) [][]string {
	if s.IsOneWay() {
		return s.Synonyms
	}
	out := make([][]string, 0, len(s.Synonyms)-1)
	for i, v := range s.Synonyms {
		if i != matchedIndex {
			out = append(out, v)
		}
	}
	return out
}
