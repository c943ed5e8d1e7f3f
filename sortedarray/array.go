// Package sortedarray implements a compressed, mutable, sorted ascending
// u32 array as specified in spec.md §4.2: a frame-of-reference (FOR)
// encoded blob carrying min/max/length/bit-width, with amortized O(1)
// append, O(n) insert, O(log n) contains/indexOf, bulk index-of,
// in-place removal, and scalar set intersection.
//
// This is a bespoke bit-packing codec described in exact terms by the
// spec (reallocate-on-widen, growth factor, bits(max-min)); no ecosystem
// library implements this mutable FOR array, so it is hand-written
// against the standard library (a hand-rolled bit-width loop and sort).
package sortedarray

import "sort"

const growthFactor = 3 // numerator of a 1.5x growth factor (denominator 2)

// Array is a sorted ascending sequence of u32 values, frame-of-reference
// compressed. The zero value is an empty, usable array.
type Array struct {
	min, max uint32
	length   int
	width    uint
	words    []uint64 // packed (v - min) residuals, length capacity reserved
	cap      int      // element capacity currently reserved in words
}

// Len returns the number of elements.
func (a *Array) Len() int { return a.length }

// Min returns the minimum element, or 0 if empty.
func (a *Array) Min() uint32 { return a.min }

// Max returns the maximum element, or 0 if empty.
func (a *Array) Max() uint32 { return a.max }

// At returns the element at sorted position i. It panics if i is out of
// range, mirroring spec.md's "at(i)" invariant contract.
func (a *Array) At(i int) uint32 {
	if i < 0 || i >= a.length {
		panic("sortedarray: index out of range")
	}
	return a.min + uint32(getBits(a.words, i, a.width))
}

// AsSlice returns the decompressed contents as a fresh []uint32.
func (a *Array) AsSlice() []uint32 {
	out := make([]uint32, a.length)
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}

// reserve (re)allocates words so that n elements fit within [newMin,
// newMax], growing the element capacity by growthFactor/2 beyond n.
func (a *Array) reserve(n int, newMin, newMax uint32) {
	newWidth := bitWidth(newMax - newMin)
	newCap := n
	if n > 0 {
		newCap = (n*growthFactor + 1) / 2
	}

	old := a.AsSlice()
	a.words = make([]uint64, packedWords(newCap, newWidth))
	a.cap = newCap
	a.width = newWidth
	a.min, a.max = newMin, newMax

	for i, v := range old {
		setBits(a.words, i, a.width, uint64(v-a.min))
	}
	a.length = len(old)
}

// needsRealloc reports whether adding a value outside [min,max] (or
// exceeding current element capacity) requires widening the frame.
func (a *Array) needsRealloc(newMin, newMax uint32, n int) bool {
	return n > a.cap || bitWidth(newMax-newMin) != a.width
}

// Append adds v. Amortized O(1) when v >= current max and capacity
// allows; reallocates (repacking every element) when v widens min/max
// beyond the current bit-width or exceeds reserved headroom.
func (a *Array) Append(v uint32) {
	if a.length == 0 {
		a.reserve(1, v, v)
		setBits(a.words, 0, a.width, 0)
		a.length = 1
		return
	}

	newMin, newMax := a.min, a.max
	if v < newMin {
		newMin = v
	}
	if v > newMax {
		newMax = v
	}

	if newMin != a.min || a.needsRealloc(newMin, newMax, a.length+1) {
		vals := a.AsSlice()
		vals = append(vals, v)
		a.reserve(len(vals), newMin, newMax)
		for i, x := range vals {
			setBits(a.words, i, a.width, uint64(x-a.min))
		}
		a.length = len(vals)
		return
	}

	setBits(a.words, a.length, a.width, uint64(v-a.min))
	a.length++
	a.max = newMax
}

// Insert places v at sorted position index, shifting later elements
// right. Callers are responsible for choosing an index that preserves
// ascending order, per spec.md's "preserves order only if v lies within
// the surrounding values" contract.
func (a *Array) Insert(index int, v uint32) {
	if index < 0 || index > a.length {
		panic("sortedarray: index out of range")
	}

	newMin, newMax := a.min, a.max
	if a.length == 0 {
		newMin, newMax = v, v
	} else {
		if v < newMin {
			newMin = v
		}
		if v > newMax {
			newMax = v
		}
	}

	vals := a.AsSlice()
	vals = append(vals, 0)
	copy(vals[index+1:], vals[index:])
	vals[index] = v

	a.reserve(len(vals), newMin, newMax)
	for i, x := range vals {
		setBits(a.words, i, a.width, uint64(x-a.min))
	}
	a.length = len(vals)
}

// Contains reports whether v is present, via a lower-bound probe
// followed by an equality check (O(log n)).
func (a *Array) Contains(v uint32) bool {
	i := a.lowerBound(v)
	return i < a.length && a.At(i) == v
}

// IndexOf returns the sorted position of v, or a.Len() if absent.
func (a *Array) IndexOf(v uint32) int {
	i := a.lowerBound(v)
	if i < a.length && a.At(i) == v {
		return i
	}
	return a.length
}

// lowerBound returns the first index i such that a.At(i) >= v.
func (a *Array) lowerBound(v uint32) int {
	if a.length == 0 || v > a.max {
		return a.length
	}
	if v <= a.min {
		return 0
	}
	return sort.Search(a.length, func(i int) bool {
		return a.At(i) >= v
	})
}

// BulkIndexOf resolves a sorted query slice against the array in a
// single decompression pass, returning, for each query value, its
// sorted position (or a.Len() if absent). The implementation
// interleaves one linear decompression with a divide-and-conquer
// bisection over both the query slice and the array, per spec.md §4.2.
func (a *Array) BulkIndexOf(values []uint32) []int {
	out := make([]int, len(values))
	if len(values) == 0 || a.length == 0 {
		for i := range out {
			out[i] = a.length
		}
		return out
	}
	decompressed := a.AsSlice()
	var bisect func(qLo, qHi, aLo, aHi int)
	bisect = func(qLo, qHi, aLo, aHi int) {
		if qLo >= qHi {
			return
		}
		qMid := (qLo + qHi) / 2
		v := values[qMid]

		pos := aLo + sort.Search(aHi-aLo, func(i int) bool {
			return decompressed[aLo+i] >= v
		})
		if pos < aHi && decompressed[pos] == v {
			out[qMid] = pos
		} else {
			out[qMid] = a.length
		}

		bisect(qLo, qMid, aLo, pos)
		bisect(qMid+1, qHi, pos, aHi)
	}
	bisect(0, len(values), 0, len(decompressed))
	return out
}

// RemoveValues elides every element present in sortedValues (which must
// be sorted ascending) in a single linear pass, then recompresses the
// residual.
func (a *Array) RemoveValues(sortedValues []uint32) {
	if a.length == 0 || len(sortedValues) == 0 {
		return
	}

	decompressed := a.AsSlice()
	kept := decompressed[:0:0]
	j := 0
	for _, v := range decompressed {
		for j < len(sortedValues) && sortedValues[j] < v {
			j++
		}
		if j < len(sortedValues) && sortedValues[j] == v {
			j++
			continue
		}
		kept = append(kept, v)
	}

	a.rebuild(kept)
}

// rebuild replaces the array's contents with vals (already sorted).
func (a *Array) rebuild(vals []uint32) {
	if len(vals) == 0 {
		a.min, a.max, a.length, a.width, a.words, a.cap = 0, 0, 0, 0, nil, 0
		return
	}
	newMin, newMax := vals[0], vals[0]
	for _, v := range vals {
		if v < newMin {
			newMin = v
		}
		if v > newMax {
			newMax = v
		}
	}
	a.reserve(len(vals), newMin, newMax)
	for i, v := range vals {
		setBits(a.words, i, a.width, uint64(v-a.min))
	}
	a.length = len(vals)
}

// Intersect computes the scalar intersection of the array's decompressed
// view with a raw ascending slice other, appending matches to out and
// returning the updated slice and match count.
func (a *Array) Intersect(other []uint32, out []uint32) ([]uint32, int) {
	count := 0
	i, j := 0, 0
	for i < a.length && j < len(other) {
		av := a.At(i)
		switch {
		case av == other[j]:
			out = append(out, av)
			count++
			i++
			j++
		case av < other[j]:
			i++
		default:
			j++
		}
	}
	return out, count
}

// FromSlice builds an Array from an already-sorted-ascending slice.
// The caller is responsible for ensuring the slice is sorted and
// contains no duplicates, per spec.md's "strictly ascending" invariant.
func FromSlice(vals []uint32) *Array {
	a := &Array{}
	a.rebuild(vals)
	return a
}
