package curation

import (
	"sort"
	"strings"
)

// PartitionByTags splits rules into the three precedence groups of
// spec.md §4.6 step 1, each internally sorted by ascending id (step 2).
func PartitionByTags(rules []*Curation, queryTags []string) (a, b, c []*Curation) {
	for _, r := range rules {
		switch {
		case isWildcard(r.Rule.Tags):
			a = append(a, r)
		case len(r.Rule.Tags) > 0 && tagsEqual(r.Rule.Tags, queryTags):
			a = append(a, r)
		case len(r.Rule.Tags) > 0 && isSubset(r.Rule.Tags, queryTags):
			b = append(b, r)
		case len(r.Rule.Tags) == 0 && len(queryTags) == 0:
			c = append(c, r)
		}
	}
	byID := func(s []*Curation) { sort.Slice(s, func(i, j int) bool { return s[i].ID < s[j].ID }) }
	byID(a)
	byID(b)
	byID(c)
	return a, b, c
}

func isWildcard(tags []string) bool {
	return len(tags) == 1 && tags[0] == "*"
}

func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := sortedCopy(a), sortedCopy(b)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

func isSubset(sub, super []string) bool {
	if len(sub) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(super))
	for _, t := range super {
		set[t] = struct{}{}
	}
	for _, t := range sub {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

// ruleToken is one element of a tokenized rule query: either a literal
// word or a {field_name} placeholder.
type ruleToken struct {
	literal     string
	placeholder string // field name, empty if this is a literal
}

func tokenizeRuleQuery(query string) []ruleToken {
	words := strings.Fields(query)
	out := make([]ruleToken, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, "{") && strings.HasSuffix(w, "}") && len(w) > 2 {
			out = append(out, ruleToken{placeholder: w[1 : len(w)-1]})
		} else {
			out = append(out, ruleToken{literal: strings.ToLower(w)})
		}
	}
	return out
}

// MatchQuery evaluates rule.Query against query tokens T under the
// rule's match mode, returning placeholder bindings on success.
// Bindings must be consistent across repeated uses of the same
// placeholder name, per spec.md §4.6.
func MatchQuery(r Rule, tokens []string) (bindings map[string][]string, ok bool) {
	if r.Query == "" {
		return map[string][]string{}, true
	}
	ruleTokens := tokenizeRuleQuery(r.Query)
	bindings = map[string][]string{}
	if r.Match == MatchContains {
		ok = matchContains(ruleTokens, tokens, bindings)
	} else {
		ok = matchExact(ruleTokens, tokens, bindings)
	}
	if !ok {
		return nil, false
	}
	return bindings, true
}

// matchExact requires ruleTokens to consume every token of T exactly,
// in order, placeholders binding to the literal-anchored run at their
// position.
func matchExact(ruleTokens []ruleToken, tokens []string, bindings map[string][]string) bool {
	return matchSpan(ruleTokens, tokens, bindings)
}

// matchSpan matches ruleTokens against exactly tokens (no slack). In a
// run of consecutive placeholders each one but the last binds a single
// token and the last absorbs the remainder; matching then recurses past
// the literal anchors.
func matchSpan(ruleTokens []ruleToken, tokens []string, bindings map[string][]string) bool {
	if len(ruleTokens) == 0 {
		return len(tokens) == 0
	}

	// find the run of leading placeholders (possibly empty) up to the
	// next literal anchor.
	i := 0
	for i < len(ruleTokens) && ruleTokens[i].placeholder != "" {
		i++
	}
	if i == 0 {
		// leading token is a literal: must match tokens[0].
		if len(tokens) == 0 || tokens[0] != ruleTokens[0].literal {
			return false
		}
		return matchSpan(ruleTokens[1:], tokens[1:], bindings)
	}

	// ruleTokens[0:i] are placeholders, ruleTokens[i] is either a
	// literal anchor or the end of the rule. Find how many tokens they
	// may consume: if there is a following literal anchor, scan forward
	// for its first occurrence; otherwise they absorb everything left.
	placeholders := ruleTokens[:i]
	rest := ruleTokens[i:]
	if len(rest) == 0 {
		return bindPlaceholderRun(placeholders, tokens, bindings)
	}
	anchor := rest[0].literal
	for cut := len(placeholders); cut <= len(tokens); cut++ {
		if cut < len(tokens) && tokens[cut] != anchor {
			continue
		}
		if bindPlaceholderRun(placeholders, tokens[:cut], bindings) && matchSpan(rest, tokens[cut:], bindings) {
			return true
		}
	}
	return false
}

func bindPlaceholderRun(placeholders []ruleToken, tokens []string, bindings map[string][]string) bool {
	if len(placeholders) == 0 {
		return len(tokens) == 0
	}
	if len(tokens) < len(placeholders) {
		return false
	}
	// each placeholder but the last takes exactly one token; the last
	// absorbs the remainder, per spec.md §4.6's "contiguous run ... at
	// its position". Other splits of a multi-placeholder run are not
	// tried.
	for i, ph := range placeholders {
		var span []string
		if i == len(placeholders)-1 {
			span = tokens[i:]
		} else {
			span = tokens[i : i+1]
		}
		if existing, ok := bindings[ph.placeholder]; ok {
			if !equalStrings(existing, span) {
				return false
			}
		} else {
			bindings[ph.placeholder] = span
		}
	}
	return true
}

// matchContains allows intervening (unmatched) query tokens before,
// between, and after rule tokens; only consecutive runs of placeholders
// bind to the gap immediately preceding the next literal anchor.
func matchContains(ruleTokens []ruleToken, tokens []string, bindings map[string][]string) bool {
	pos := 0
	for i := 0; i < len(ruleTokens); {
		if ruleTokens[i].placeholder != "" {
			j := i
			for j < len(ruleTokens) && ruleTokens[j].placeholder != "" {
				j++
			}
			if j == len(ruleTokens) {
				return bindPlaceholderRun(ruleTokens[i:j], tokens[pos:], bindings)
			}
			anchor := ruleTokens[j].literal
			for k := pos; k <= len(tokens); k++ {
				if k < len(tokens) && tokens[k] != anchor {
					continue
				}
				if bindPlaceholderRun(ruleTokens[i:j], tokens[pos:k], bindings) {
					pos = k
					i = j
					goto matched
				}
			}
			return false
		matched:
			continue
		}

		found := -1
		for k := pos; k < len(tokens); k++ {
			if tokens[k] == ruleTokens[i].literal {
				found = k
				break
			}
		}
		if found < 0 {
			return false
		}
		pos = found + 1
		i++
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
