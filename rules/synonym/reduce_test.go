package synonym

import (
	"context"
	"testing"
)

type memStore struct{ m map[string][]byte }

func newMemStore() *memStore { return &memStore{m: map[string][]byte{}} }

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.m[key]
	return v, ok, nil
}
func (s *memStore) Insert(_ context.Context, key string, value []byte) error {
	s.m[key] = value
	return nil
}
func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.m, key)
	return nil
}
func (s *memStore) DeleteRange(_ context.Context, lo, hi string) error {
	for k := range s.m {
		if k >= lo && k < hi {
			delete(s.m, k)
		}
	}
	return nil
}
func (s *memStore) ScanFill(_ context.Context, lo, hi string, out [][]byte) ([][]byte, error) {
	for k, v := range s.m {
		if k >= lo && k < hi {
			out = append(out, v)
		}
	}
	return out, nil
}

// End-to-end scenario 5 from spec.md §8.
func TestReductionScenario(t *testing.T) {
	idx := New("products", newMemStore())
	ctx := context.Background()

	if err := idx.AddRule(ctx, &Synonym{
		ID:       "nyc-rule",
		Root:     []string{"nyc"},
		Synonyms: [][]string{{"new", "york"}},
	}); err != nil {
		t.Fatalf("AddRule nyc: %v", err)
	}
	if err := idx.AddRule(ctx, &Synonym{
		ID:       "ipod-rule",
		Synonyms: [][]string{{"ipod"}, {"i", "pod"}, {"pod"}},
	}); err != nil {
		t.Fatalf("AddRule ipod: %v", err)
	}

	got := idx.Reduce([]string{"red", "nyc", "tshirt"}, 0)
	if len(got) != 1 {
		t.Fatalf("got %v, want 1 result", got)
	}
	want := []string{"red", "new", "york", "tshirt"}
	if !equalTokens(got[0], want) {
		t.Fatalf("got %v, want %v", got[0], want)
	}

	got2 := idx.Reduce([]string{"ipod"}, 0)
	if len(got2) != 2 {
		t.Fatalf("got %v, want 2 results", got2)
	}
	seen := map[string]bool{}
	for _, v := range got2 {
		seen[tokenJoin(v)] = true
	}
	if !seen["i pod"] || !seen["pod"] {
		t.Fatalf("got %v, want [i pod] and [pod]", got2)
	}
}

func tokenJoin(v []string) string {
	out := ""
	for i, t := range v {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}
