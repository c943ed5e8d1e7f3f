package curation

import "testing"

func TestPartitionByTagsPrecedence(t *testing.T) {
	rules := []*Curation{
		{ID: "c-wild", Rule: Rule{Tags: []string{"*"}}},
		{ID: "b-sub", Rule: Rule{Tags: []string{"sale"}}},
		{ID: "a-exact", Rule: Rule{Tags: []string{"sale", "summer"}}},
		{ID: "no-tags", Rule: Rule{}},
	}
	a, b, c := PartitionByTags(rules, []string{"sale", "summer"})
	if len(a) != 2 || a[0].ID != "a-exact" || a[1].ID != "c-wild" {
		t.Fatalf("group A = %v", ids(a))
	}
	if len(b) != 1 || b[0].ID != "b-sub" {
		t.Fatalf("group B = %v", ids(b))
	}
	if len(c) != 0 {
		t.Fatalf("group C = %v, want empty since query has tags", ids(c))
	}
}

func ids(cs []*Curation) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestMatchQueryExact(t *testing.T) {
	r := Rule{Query: "red shoes", Match: MatchExact}
	if _, ok := MatchQuery(r, []string{"red", "shoes"}); !ok {
		t.Fatal("expected exact match")
	}
	if _, ok := MatchQuery(r, []string{"red", "running", "shoes"}); ok {
		t.Fatal("expected exact match to reject intervening token")
	}
}

func TestMatchQueryContains(t *testing.T) {
	r := Rule{Query: "red shoes", Match: MatchContains}
	if _, ok := MatchQuery(r, []string{"red", "running", "shoes"}); !ok {
		t.Fatal("expected contains match with intervening token")
	}
	if _, ok := MatchQuery(r, []string{"shoes", "red"}); ok {
		t.Fatal("expected contains match to require order")
	}
}

func TestMatchQueryPlaceholder(t *testing.T) {
	r := Rule{Query: "{brand} shoes", Match: MatchExact}
	bindings, ok := MatchQuery(r, []string{"nike", "shoes"})
	if !ok {
		t.Fatal("expected placeholder match")
	}
	if got := bindings["brand"]; len(got) != 1 || got[0] != "nike" {
		t.Fatalf("bindings[brand] = %v", got)
	}
}

func TestFilterByParseAndSubset(t *testing.T) {
	rule, err := Parse("category:shoes")
	if err != nil {
		t.Fatalf("parse rule filter: %v", err)
	}
	query, err := Parse("category:shoes && price:>=10")
	if err != nil {
		t.Fatalf("parse query filter: %v", err)
	}
	if !IsSubset(rule, query) {
		t.Fatal("expected rule filter to be a subset of query filter")
	}

	other, _ := Parse("category:boots")
	if IsSubset(other, query) {
		t.Fatal("expected mismatched category clause to fail subset check")
	}

	if _, err := Parse("a:1 || b:2"); err == nil {
		t.Fatal("expected OR expression to be rejected")
	}
}

// End-to-end scenario 6 from spec.md §8: three pin rules, two (7 and 17)
// filtered out of eligibility, one landing in a slot it already beats.
func TestApplyIncludesMissingSlot(t *testing.T) {
	base := []string{"10", "11", "12"}
	includes := []PendingInclude{
		{Include: Include{ID: "7", Position: 1}, FilterCuratedHits: true},
		{Include: Include{ID: "17", Position: 2}, FilterCuratedHits: true},
		{Include: Include{ID: "10", Position: 3}, FilterCuratedHits: true},
	}
	eligibleSet := map[string]bool{"10": true, "11": true, "12": true}
	eligible := func(id string) bool { return eligibleSet[id] }

	got := ApplyIncludes(base, includes, eligible)
	want := []string{"10", "11", "12"}
	if !equalStringSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyIncludesMovesUpWhenRankedWorse(t *testing.T) {
	base := []string{"1", "2", "3", "4"}
	includes := []PendingInclude{{Include: Include{ID: "4", Position: 1}}}
	got := ApplyIncludes(base, includes, nil)
	want := []string{"4", "1", "2", "3"}
	if !equalStringSlices(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvaluateStopProcessing(t *testing.T) {
	rules := []*Curation{
		{ID: "r1", Rule: Rule{Query: "shoes"}, FilterBy: "in_stock:true", StopProcessing: true},
		{ID: "r2", Rule: Rule{Query: "shoes"}, SortBy: "price:asc", StopProcessing: true},
	}
	d := Evaluate(rules, Query{Tokens: []string{"shoes"}}, 0)
	if len(d.Matched) != 1 || d.Matched[0] != "r1" {
		t.Fatalf("Matched = %v, want only r1 due to stop_processing", d.Matched)
	}
	if d.FilterBy != "in_stock:true" {
		t.Fatalf("FilterBy = %q", d.FilterBy)
	}
	if d.SortBy != "" {
		t.Fatalf("SortBy = %q, want untouched since r2 never ran", d.SortBy)
	}
}

func TestEvaluateMetadataMergeWithoutStop(t *testing.T) {
	rules := []*Curation{
		{ID: "r1", Rule: Rule{Query: "shoes"}, Metadata: map[string]any{"banner": "a"}},
		{ID: "r2", Rule: Rule{Query: "shoes"}, Metadata: map[string]any{"banner": "b"}},
	}
	d := Evaluate(rules, Query{Tokens: []string{"shoes"}}, 0)
	if len(d.Matched) != 2 {
		t.Fatalf("Matched = %v, want both rules applied", d.Matched)
	}
	if d.Metadata["banner"] != "b" {
		t.Fatalf("Metadata[banner] = %v, want later rule to win", d.Metadata["banner"])
	}
}

func TestEvaluateEffectiveWindow(t *testing.T) {
	rules := []*Curation{
		{ID: "expired", Rule: Rule{Query: "shoes"}, SortBy: "price:asc", EffectiveToTS: 100},
	}
	d := Evaluate(rules, Query{Tokens: []string{"shoes"}}, 200)
	if len(d.Matched) != 0 {
		t.Fatalf("Matched = %v, want expired rule skipped", d.Matched)
	}
}

func equalStringSlices(a, b []string) bool {
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
