package curation

import (
	"sort"
	"strings"
)

// Query is the caller's view of an incoming search, per spec.md §4.6
// step 1's "token list T, filter-by string F, tag list X".
type Query struct {
	Tokens   []string
	FilterBy string
	Tags     []string
}

// PendingInclude is one rule's pin, carrying that rule's own
// filter_curated_hits setting — ApplyIncludes must honor it per pin,
// since different matching rules may set it differently.
type PendingInclude struct {
	Include
	FilterCuratedHits bool
}

// Decision is the accumulated effect of every matching, active
// curation rule applied to a Query in precedence order.
type Decision struct {
	Tokens              []string
	FilterBy            string
	SortBy              string
	Excludes            map[string]struct{}
	Includes            []PendingInclude // in application order
	RemoveMatchedTokens bool
	Metadata            map[string]any
	Matched             []string // rule ids applied, in application order
}

// Evaluate runs the full rule-matching algorithm of spec.md §4.6 over
// rules (already loaded from an index) against q, honoring group
// precedence, stop_processing, and effective-time windows.
func Evaluate(rules []*Curation, q Query, nowUnix int64) *Decision {
	d := &Decision{
		Tokens:   append([]string(nil), q.Tokens...),
		FilterBy: q.FilterBy,
		Excludes: map[string]struct{}{},
		Metadata: map[string]any{},
	}

	active := make([]*Curation, 0, len(rules))
	for _, r := range rules {
		if r.Active(nowUnix) {
			active = append(active, r)
		}
	}

	groups := [][]*Curation{}
	a, b, c := PartitionByTags(active, q.Tags)
	groups = append(groups, a, b, c)

	queryFilter, _ := Parse(q.FilterBy)

	for _, group := range groups {
		for _, rule := range group {
			bindings, ok := matchRule(rule.Rule, d.Tokens, queryFilter)
			if !ok {
				continue
			}
			applyRule(rule, bindings, d)
			d.Matched = append(d.Matched, rule.ID)
			if rule.StopProcessing {
				return d
			}
		}
	}
	return d
}

// matchRule evaluates rule.Rule's query and filter_by matchers against
// the current token vector and the query's parsed filter (tags are
// already consumed by the caller's group partitioning).
func matchRule(r Rule, tokens []string, queryFilter Filter) (map[string][]string, bool) {
	bindings, ok := MatchQuery(r, tokens)
	if !ok {
		return nil, false
	}
	if r.FilterBy != "" {
		ruleFilter, err := Parse(substitutePlaceholders(r.FilterBy, bindings))
		if err != nil || !IsSubset(ruleFilter, queryFilter) {
			return nil, false
		}
	}
	return bindings, true
}

func substitutePlaceholders(s string, bindings map[string][]string) string {
	for name, span := range bindings {
		s = strings.ReplaceAll(s, "{"+name+"}", strings.Join(span, " "))
	}
	return s
}

func applyRule(c *Curation, bindings map[string][]string, d *Decision) {
	switch {
	case c.ReplaceQuery != "":
		d.Tokens = strings.Fields(substitutePlaceholders(c.ReplaceQuery, bindings))
	case c.RemoveMatchedTokens:
		d.Tokens = removeMatchedTokens(c.Rule, d.Tokens)
	}

	if c.FilterBy != "" {
		injected := substitutePlaceholders(c.FilterBy, bindings)
		if d.FilterBy == "" {
			d.FilterBy = injected
		} else {
			d.FilterBy = d.FilterBy + " && " + injected
		}
	}
	if c.SortBy != "" {
		d.SortBy = substitutePlaceholders(c.SortBy, bindings)
	}
	for _, inc := range c.Includes {
		d.Includes = append(d.Includes, PendingInclude{Include: inc, FilterCuratedHits: c.FilterCuratedHits})
	}
	for _, exc := range c.Excludes {
		d.Excludes[exc.ID] = struct{}{}
	}
	for k, v := range c.Metadata {
		d.Metadata[k] = v
	}
}

// removeMatchedTokens strips the literal tokens of rule.Query from
// tokens, leaving placeholders and unrelated tokens untouched.
func removeMatchedTokens(rule Rule, tokens []string) []string {
	if rule.Query == "" {
		return tokens
	}
	matched := make(map[string]struct{})
	for _, rt := range tokenizeRuleQuery(rule.Query) {
		if rt.placeholder == "" {
			matched[rt.literal] = struct{}{}
		}
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := matched[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterHit is a single candidate passing a query's filter-by, used to
// test whether a pinned id is eligible under filter_curated_hits.
type FilterHit func(id string) bool

// ApplyIncludes reshapes base (already position-sorted, deduplicated
// retrieval results) per spec.md §4.6's includes algorithm: for each
// pinned slot in ascending position, the target id is guaranteed to
// rank at its slot or better. If it already sits at or ahead of that
// slot, the list is left alone; otherwise it is moved up into the
// slot, pushing later entries down. A pin that fails
// filter_curated_hits is skipped entirely, so its slot is never
// claimed and later pins are evaluated against the unmodified list.
func ApplyIncludes(base []string, includes []PendingInclude, eligible FilterHit) []string {
	pins := append([]PendingInclude(nil), includes...)
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].Position < pins[j].Position })

	out := append([]string(nil), base...)
	for _, pin := range pins {
		if pin.FilterCuratedHits && eligible != nil && !eligible(pin.ID) {
			continue
		}
		slot := pin.Position - 1 // 1-indexed in the rule, 0-indexed here
		if slot < 0 {
			continue
		}
		if slot > len(out) {
			slot = len(out)
		}
		existing := indexOf(out, pin.ID)
		if existing >= 0 && existing <= slot {
			continue
		}
		if existing >= 0 {
			out = append(out[:existing], out[existing+1:]...)
			if slot > len(out) {
				slot = len(out)
			}
		}
		out = insertAt(out, slot, pin.ID)
	}
	return out
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func insertAt(s []string, i int, v string) []string {
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
