package art

import "github.com/bits-and-blooms/bitset"

// node256 is the largest adaptive node: a 256-bit presence map paired
// with a rank-compressed dense slice of children, so a fully (or nearly)
// populated node costs one bit per possible byte instead of 256 child
// slots. This is the popcount-compressed sparse-array idiom of
// gaissmai-bart's legacy node.go (itself built on
// github.com/bits-and-blooms/bitset), carried forward as a genuinely
// wired dependency per DESIGN.md.
type node256 struct {
	present  *bitset.BitSet
	children []child
}

func newNode256() *node256 {
	return &node256{present: bitset.New(256)}
}

func (n *node256) rank(b byte) int {
	return int(n.present.Rank(uint(b))) - 1
}

func (n *node256) get(b byte) *child {
	if !n.present.Test(uint(b)) {
		return nil
	}
	return &n.children[n.rank(b)]
}

func (n *node256) count() int { return len(n.children) }

func (n *node256) set(b byte, c child) {
	if n.present.Test(uint(b)) {
		n.children[n.rank(b)] = c
		return
	}
	r := n.rank(b) + 1
	n.children = append(n.children, child{})
	copy(n.children[r+1:], n.children[r:])
	n.children[r] = c
	n.present.Set(uint(b))
}

func (n *node256) remove(b byte) {
	if !n.present.Test(uint(b)) {
		return
	}
	r := n.rank(b)
	n.children = append(n.children[:r], n.children[r+1:]...)
	n.present.Clear(uint(b))
}

// each visits present bytes in ascending order.
func (n *node256) each(f func(b byte, c *child)) {
	i, ok := n.present.NextSet(0)
	for ok {
		f(byte(i), &n.children[n.rank(byte(i))])
		i, ok = n.present.NextSet(i + 1)
	}
}

func (n *node256) min() (byte, *child) {
	i, ok := n.present.NextSet(0)
	if !ok {
		return 0, nil
	}
	return byte(i), &n.children[n.rank(byte(i))]
}
