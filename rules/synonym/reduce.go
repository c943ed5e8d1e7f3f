package synonym

import (
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/arcfts/searchcore/art"
	"github.com/arcfts/searchcore/rules/tokenize"
)

const maxCandidateLeaves = 10

// Reduce expands tokens into every alternative token vector reachable
// through this index's synonym rules, per spec.md §4.5's
// window/recursion/splice algorithm. typoBudget bounds the edit
// distance the ART fuzzy search will tolerate per window.
func (idx *Index) Reduce(tokens []string, typoBudget int) [][]string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	visited := make(map[uint64]struct{})
	var results [][]string
	reduceRec(idx, tokens, tokens, false, typoBudget, visited, &results)
	return results
}

// reduceRec implements one invocation of the algorithm: try every
// window size (longest first) and start position, fuzzy-match the
// phrase, splice in every alternative, and recurse with a cycle guard.
// If this invocation recursed nowhere, and the current vector differs
// from the original and at least one replacement already happened
// along the path, it is a terminal rewrite and is emitted.
func reduceRec(idx *Index, tokens, original []string, replaced bool, typoBudget int, visited map[uint64]struct{}, results *[][]string) {
	recursed := false

	for w := len(tokens); w >= 1; w-- {
		for s := 0; s+w <= len(tokens); s++ {
			phrase := tokenize.Join(tokens[s : s+w])
			candidates := idx.terms.FuzzySearch([]byte(phrase), 0, typoBudget, maxCandidateLeaves, false, art.OrderByScore)

			for _, cand := range candidates {
				if _, seen := visited[phraseKey(strings.Fields(string(cand.Term)))]; seen {
					continue
				}
				for _, id := range cand.Posting.IDs() {
					def, matchedIndex := idx.definitionForInternal(id, string(cand.Term))
					if def == nil {
						continue
					}
					for _, form := range def.IndexedForms() {
						visited[phraseKey(form)] = struct{}{}
					}
					for _, alt := range def.Alternatives(matchedIndex) {
						recursed = true
						reduceRec(idx, splice(tokens, s, w, alt), original, true, typoBudget, visited, results)
					}
				}
			}
		}
	}

	if !recursed && replaced && !equalTokens(tokens, original) {
		*results = append(*results, append([]string(nil), tokens...))
	}
}

// definitionForInternal finds which synonym definition owns posting id
// internal, and which of its indexed forms equals matchedPhrase (so
// Alternatives can exclude it for multi-way rules).
func (idx *Index) definitionForInternal(internal uint32, matchedPhrase string) (*Synonym, int) {
	for synID, in := range idx.internalID {
		if in != internal {
			continue
		}
		def := idx.definitions[synID]
		for i, form := range def.IndexedForms() {
			if tokenize.Join(form) == matchedPhrase {
				return def, i
			}
		}
		return def, -1
	}
	return nil, -1
}

func splice(tokens []string, s, w int, alt []string) []string {
	out := make([]string, 0, len(tokens)-w+len(alt))
	out = append(out, tokens[:s]...)
	out = append(out, alt...)
	out = append(out, tokens[s+w:]...)
	return out
}

func phraseKey(tokens []string) uint64 {
	return xxhash.Sum64String(strings.Join(tokens, "\x00"))
}

func equalTokens(a, b []string) bool {
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
