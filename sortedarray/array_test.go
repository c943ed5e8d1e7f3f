package sortedarray

import "testing"

func TestAppendAscending(t *testing.T) {
	a := &Array{}
	for i := uint32(0); i < 1000; i++ {
		a.Append(i * 2)
	}
	if a.Len() != 1000 {
		t.Fatalf("len = %d, want 1000", a.Len())
	}
	for i := 0; i < 1000; i++ {
		if got := a.At(i); got != uint32(i*2) {
			t.Fatalf("At(%d) = %d, want %d", i, got, i*2)
		}
	}
	if a.At(a.Len()-1) != 1998 {
		t.Fatalf("last = %d, want 1998", a.At(a.Len()-1))
	}
}

func TestContains(t *testing.T) {
	a := &Array{}
	for _, v := range []uint32{1, 3, 5, 7, 100, 1000} {
		a.Append(v)
	}
	for _, v := range []uint32{1, 3, 5, 7, 100, 1000} {
		if !a.Contains(v) {
			t.Fatalf("Contains(%d) = false, want true", v)
		}
	}
	for _, v := range []uint32{0, 2, 4, 6, 8, 999, 1001} {
		if a.Contains(v) {
			t.Fatalf("Contains(%d) = true, want false", v)
		}
	}
}

// End-to-end scenario 3 from spec.md §8.
func TestRemoveValuesScenario(t *testing.T) {
	vals := make([]uint32, 10000)
	for i := range vals {
		vals[i] = uint32(i)
	}
	a := FromSlice(vals)

	a.RemoveValues([]uint32{0, 100, 1000, 2000, 9999})

	if a.Len() != 9995 {
		t.Fatalf("len = %d, want 9995", a.Len())
	}
	for _, v := range []uint32{0, 100, 1000, 2000, 9999} {
		if a.Contains(v) {
			t.Fatalf("Contains(%d) = true after removal", v)
		}
	}
	// strictly ascending still holds
	prev := a.At(0)
	for i := 1; i < a.Len(); i++ {
		cur := a.At(i)
		if cur <= prev {
			t.Fatalf("not strictly ascending at %d: %d <= %d", i, cur, prev)
		}
		prev = cur
	}
}

func TestBulkIndexOf(t *testing.T) {
	a := FromSlice([]uint32{2, 4, 6, 8, 10, 12})
	got := a.BulkIndexOf([]uint32{4, 5, 8, 100})
	want := []int{1, a.Len(), 3, a.Len()}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BulkIndexOf[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIntersect(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3, 5, 8, 13})
	other := []uint32{2, 3, 4, 13, 21}
	out, n := a.Intersect(other, nil)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	want := []uint32{2, 3, 13}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestInsertPreservesOrder(t *testing.T) {
	a := FromSlice([]uint32{1, 5, 9})
	a.Insert(1, 3)
	want := []uint32{1, 3, 5, 9}
	got := a.AsSlice()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
