package art

// node4 and node16 use the same layout — parallel byte/child arrays
// scanned linearly — since spec.md §4.1 describes both sizes as
// linear/SIMD-parallel scans; no library improves on a 4- or
// 16-element linear scan over a plain slice.

type node4 struct {
	keys     [4]byte
	children [4]child
	n        uint8
}

func (n *node4) get(b byte) *child {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			return &n.children[i]
		}
	}
	return nil
}

func (n *node4) count() int { return int(n.n) }

func (n *node4) set(b byte, c child) {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			n.children[i] = c
			return
		}
	}
	n.keys[n.n] = b
	n.children[n.n] = c
	n.n++
}

func (n *node4) remove(b byte) {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			copy(n.keys[i:], n.keys[i+1:n.n])
			copy(n.children[i:], n.children[i+1:n.n])
			n.n--
			return
		}
	}
}

func (n *node4) each(f func(b byte, c *child)) {
	order := sortedIndexes(n.keys[:n.n])
	for _, i := range order {
		f(n.keys[i], &n.children[i])
	}
}

func (n *node4) min() (byte, *child) {
	if n.n == 0 {
		return 0, nil
	}
	order := sortedIndexes(n.keys[:n.n])
	i := order[0]
	return n.keys[i], &n.children[i]
}

type node16 struct {
	keys     [16]byte
	children [16]child
	n        uint8
}

func (n *node16) get(b byte) *child {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			return &n.children[i]
		}
	}
	return nil
}

func (n *node16) count() int { return int(n.n) }

func (n *node16) set(b byte, c child) {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			n.children[i] = c
			return
		}
	}
	n.keys[n.n] = b
	n.children[n.n] = c
	n.n++
}

func (n *node16) remove(b byte) {
	for i := uint8(0); i < n.n; i++ {
		if n.keys[i] == b {
			copy(n.keys[i:], n.keys[i+1:n.n])
			copy(n.children[i:], n.children[i+1:n.n])
			n.n--
			return
		}
	}
}

func (n *node16) each(f func(b byte, c *child)) {
	order := sortedIndexes(n.keys[:n.n])
	for _, i := range order {
		f(n.keys[i], &n.children[i])
	}
}

func (n *node16) min() (byte, *child) {
	if n.n == 0 {
		return 0, nil
	}
	order := sortedIndexes(n.keys[:n.n])
	i := order[0]
	return n.keys[i], &n.children[i]
}

// sortedIndexes returns the indexes of keys in ascending byte order, via
// simple insertion sort (n <= 16, never worth a library).
func sortedIndexes(keys []byte) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && keys[idx[j-1]] > keys[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
	return idx
}
