// Package tokenize implements the plain-text tokenizer shared by the
// synonym and curation rule engines: lowercase word splitting with an
// optional per-rule set of extra symbols to keep as part of a token
// (spec.md §6's `symbols_to_index`).
package tokenize

import "strings"

// Tokens splits s into lowercase tokens on everything that is not a
// letter, digit, or a character listed in symbols. symbols is used as
// given; this function does not merge it with any default set.
func Tokens(s string, symbols []string) []string {
	extra := make(map[rune]struct{}, len(symbols))
	for _, sym := range symbols {
		for _, r := range sym {
			extra[r] = struct{}{}
		}
	}

	isWordRune := func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return true
		}
		_, ok := extra[r]
		return ok
	}

	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range s {
		if isWordRune(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return out
}

// Join re-renders a token vector into the single-space-separated phrase
// form used as an ART indexed key by rules/synonym.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
