package oriter

import "testing"

// k-way (k>=3) union of overlapping postings: every id appears once,
// in ascending order. No filter or exclusion is applied here.
func TestKwayUnionOfThreeSources(t *testing.T) {
	a := NewArraySource([]uint32{1, 3, 5, 7, 9})
	b := NewArraySource([]uint32{2, 3, 4, 7, 10})
	c := NewArraySource([]uint32{5, 6, 7})

	or := New([]Source{a, b, c}, nil)
	var got []uint32
	for or.Next() {
		id, _ := or.ID()
		got = append(got, id)
	}
	want := []uint32{1, 2, 3, 4, 5, 6, 7, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFilterIteratorIncludeExclude(t *testing.T) {
	a := NewArraySource([]uint32{1, 3, 5, 7, 9})
	b := NewArraySource([]uint32{2, 3, 4, 7, 10})
	or := New([]Source{a, b}, nil)

	include := BitmapFilter{Bitmap: bitmapOf(2, 3, 4, 7, 9, 10)}
	exclude := BitmapFilter{Bitmap: bitmapOf(4)}
	fi := NewFilterIterator(or, include, exclude)

	var got []uint32
	for fi.Next() {
		id, _ := fi.ID()
		got = append(got, id)
	}
	want := []uint32{2, 3, 7, 9, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSingleAndPairSpecialCases(t *testing.T) {
	one := New([]Source{NewArraySource([]uint32{1, 2, 3})}, nil)
	var gotOne []uint32
	for one.Next() {
		id, _ := one.ID()
		gotOne = append(gotOne, id)
	}
	if len(gotOne) != 3 {
		t.Fatalf("single-source iteration got %v", gotOne)
	}

	pair := New([]Source{
		NewArraySource([]uint32{1, 2, 5}),
		NewArraySource([]uint32{2, 3, 5, 8}),
	}, nil)
	var gotPair []uint32
	for pair.Next() {
		id, _ := pair.ID()
		gotPair = append(gotPair, id)
	}
	want := []uint32{1, 2, 3, 5, 8}
	if len(gotPair) != len(want) {
		t.Fatalf("got %v, want %v", gotPair, want)
	}
	for i := range want {
		if gotPair[i] != want[i] {
			t.Fatalf("got %v, want %v", gotPair, want)
		}
	}
}
