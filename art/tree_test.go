package art

import "testing"

func TestInsertSearchDuplicate(t *testing.T) {
	tr := &Tree{}
	if !tr.Insert([]byte("cat"), 1, 1.0, []uint32{0}) {
		t.Fatal("first insert should report new")
	}
	if tr.Insert([]byte("cat"), 1, 1.0, []uint32{0}) {
		t.Fatal("duplicate (term,id) insert should be a no-op")
	}
	if !tr.Insert([]byte("cat"), 2, 2.0, []uint32{3}) {
		t.Fatal("new id on existing term should report new")
	}

	p := tr.Search([]byte("cat"))
	if p == nil || p.NumIDs() != 2 {
		t.Fatalf("expected posting with 2 ids, got %+v", p)
	}
	if tr.Len() != 1 {
		t.Fatalf("tree should have 1 term, got %d", tr.Len())
	}
}

func TestInsertSplitsAndFindsAllTerms(t *testing.T) {
	tr := &Tree{}
	terms := []string{"cat", "car", "cart", "dog", "do", "dove"}
	for i, term := range terms {
		tr.Insert([]byte(term), uint32(i), 1.0, nil)
	}
	for i, term := range terms {
		p := tr.Search([]byte(term))
		if p == nil || !p.HasID(uint32(i)) {
			t.Fatalf("term %q not found with expected id", term)
		}
	}
	if tr.Search([]byte("ca")) != nil {
		t.Fatal("partial term should not match exactly")
	}
}

func TestPrefixIteration(t *testing.T) {
	tr := &Tree{}
	for i, term := range []string{"cat", "car", "cart", "dog"} {
		tr.Insert([]byte(term), uint32(i), 0, nil)
	}
	entries := tr.IterPrefix([]byte("ca"))
	if len(entries) != 3 {
		t.Fatalf("expected 3 matches for prefix ca, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if string(entries[i-1].Term) >= string(entries[i].Term) {
			t.Fatal("prefix iteration should be ascending")
		}
	}
}

func TestMinimumMaximum(t *testing.T) {
	tr := &Tree{}
	for i, term := range []string{"mango", "apple", "zebra", "banana"} {
		tr.Insert([]byte(term), uint32(i), 0, nil)
	}
	if string(tr.Minimum().Term) != "apple" {
		t.Fatalf("minimum = %q, want apple", tr.Minimum().Term)
	}
	if string(tr.Maximum().Term) != "zebra" {
		t.Fatalf("maximum = %q, want zebra", tr.Maximum().Term)
	}
}

func TestDeletePrunesEmptyTerm(t *testing.T) {
	tr := &Tree{}
	tr.Insert([]byte("cat"), 1, 0, nil)
	tr.Insert([]byte("car"), 2, 0, nil)

	if !tr.Delete([]byte("cat"), 1) {
		t.Fatal("delete of present id should report true")
	}
	if tr.Search([]byte("cat")) != nil {
		t.Fatal("term with no remaining ids should be pruned")
	}
	if tr.Search([]byte("car")) == nil {
		t.Fatal("sibling term should survive")
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
	if tr.Delete([]byte("cat"), 1) {
		t.Fatal("deleting an already-absent term should report false")
	}
}

func TestDeleteCollapsesNode4(t *testing.T) {
	tr := &Tree{}
	tr.Insert([]byte("cat"), 1, 0, nil)
	tr.Insert([]byte("car"), 2, 0, nil)
	tr.Delete([]byte("car"), 2)

	if tr.Search([]byte("cat")) == nil {
		t.Fatal("remaining term should still be searchable after collapse")
	}
	if tr.Len() != 1 {
		t.Fatalf("len = %d, want 1", tr.Len())
	}
}

func TestFuzzySearchFindsTypos(t *testing.T) {
	tr := &Tree{}
	for i, term := range []string{"kitten", "mitten", "sitting", "apple"} {
		tr.Insert([]byte(term), uint32(i), float64(10-i), nil)
	}
	results := tr.FuzzySearch([]byte("kitten"), 0, 3, 10, false, OrderByScore)
	found := map[string]int{}
	for _, r := range results {
		found[string(r.Term)] = r.Distance
	}
	if found["kitten"] != 0 {
		t.Fatalf("exact match should have distance 0, got %v", found)
	}
	if _, ok := found["sitting"]; !ok {
		t.Fatalf("sitting should be within edit distance 3 of kitten: %v", found)
	}
	if _, ok := found["apple"]; ok {
		t.Fatalf("apple should not be within edit distance 3 of kitten: %v", found)
	}
}

func TestFuzzySearchLimit(t *testing.T) {
	tr := &Tree{}
	for i, term := range []string{"aa", "ab", "ac", "ad"} {
		tr.Insert([]byte(term), uint32(i), 0, nil)
	}
	results := tr.FuzzySearch([]byte("aa"), 0, 2, 2, false, OrderByScore)
	if len(results) != 2 {
		t.Fatalf("expected 2 results capped by limit, got %d", len(results))
	}
}

func TestFuzzySearchPrefixMode(t *testing.T) {
	tr := &Tree{}
	for i, term := range []string{"apple", "apply", "appl", "banana"} {
		tr.Insert([]byte(term), uint32(i), 0, nil)
	}
	results := tr.FuzzySearch([]byte("app"), 0, 0, 10, true, OrderByScore)
	found := map[string]bool{}
	for _, r := range results {
		found[string(r.Term)] = true
		if r.Distance != 0 {
			t.Fatalf("expected distance 0 for exact prefix match, got %d for %s", r.Distance, r.Term)
		}
	}
	for _, want := range []string{"apple", "apply", "appl"} {
		if !found[want] {
			t.Fatalf("expected %q among prefix matches, got %v", want, results)
		}
	}
	if found["banana"] {
		t.Fatalf("banana should not match prefix %q", "app")
	}
}
