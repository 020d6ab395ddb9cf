package bvh

import (
	"github.com/achilleasa/sahbvh/types"
	"go.uber.org/atomic"
)

// Node is either a leaf, holding the range [FirstChildOrPrimitive,
// FirstChildOrPrimitive+PrimitiveCount) of the primitive index list, or an
// internal node whose children live at FirstChildOrPrimitive and
// FirstChildOrPrimitive+1.
type Node struct {
	BBox                  types.BBox
	IsLeaf                bool
	FirstChildOrPrimitive int
	PrimitiveCount        int
}

// Tree is a BVH stored as a flat node list with the root at index 0.
type Tree struct {
	// Node storage. It is pre-sized for the worst case (2N+1 nodes) and
	// never reallocated during a build; only the first NodeCount() entries
	// are meaningful.
	Nodes []Node

	// A permutation of [0, N). Every leaf references a contiguous range of
	// this list.
	PrimitiveIndices []int

	nodeCount *atomic.Int64
}

func newTree(primitiveCount int) *Tree {
	indices := make([]int, primitiveCount)
	return &Tree{
		Nodes:            make([]Node, 2*primitiveCount+1),
		PrimitiveIndices: indices,
		nodeCount:        atomic.NewInt64(1),
	}
}

// Reserve two consecutive node slots and return the index of the first one.
// Safe for concurrent use.
func (t *Tree) allocPair() int {
	return int(t.nodeCount.Add(2) - 2)
}

// NodeCount returns the number of nodes in use.
func (t *Tree) NodeCount() int {
	return int(t.nodeCount.Load())
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}

// Primitives returns the primitive indices referenced by a leaf node.
func (t *Tree) Primitives(n *Node) []int {
	if !n.IsLeaf {
		return nil
	}
	return t.PrimitiveIndices[n.FirstChildOrPrimitive : n.FirstChildOrPrimitive+n.PrimitiveCount]
}

// Walk visits all nodes depth-first, left child before right child. If fn
// returns false the children of the visited node are skipped.
func (t *Tree) Walk(fn func(index, depth int, n *Node) bool) {
	type frame struct{ index, depth int }

	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[f.index]
		if !fn(f.index, f.depth, n) || n.IsLeaf {
			continue
		}
		stack = append(stack,
			frame{n.FirstChildOrPrimitive + 1, f.depth + 1},
			frame{n.FirstChildOrPrimitive, f.depth + 1},
		)
	}
}

// Leaves returns the indices of all leaf nodes in depth-first order.
func (t *Tree) Leaves() []int {
	leaves := make([]int, 0)
	t.Walk(func(index, _ int, n *Node) bool {
		if n.IsLeaf {
			leaves = append(leaves, index)
		}
		return true
	})
	return leaves
}

func (n *Node) makeLeaf(begin, end int) {
	n.IsLeaf = true
	n.FirstChildOrPrimitive = begin
	n.PrimitiveCount = end - begin
}

func (n *Node) makeInternal(firstChild int) {
	n.IsLeaf = false
	n.FirstChildOrPrimitive = firstChild
	n.PrimitiveCount = 0
}
