package bvh

import (
	"fmt"

	"github.com/achilleasa/sahbvh/types"
	"go.uber.org/multierr"
)

// Validate checks the structural invariants of a tree built over bboxes:
//
//   - the primitive index list is a permutation of [0, N)
//   - the leaves cover every position of the index list exactly once
//   - every node encloses its children or the primitives it references
//   - no node is deeper than maxDepth
//   - only the root of an empty tree may be an empty leaf
//
// All detected violations are returned combined into a single error.
func (t *Tree) Validate(bboxes []types.BBox, maxDepth int) error {
	var err error

	primitiveCount := len(t.PrimitiveIndices)
	if primitiveCount != len(bboxes) {
		return fmt.Errorf("bvh: tree references %d primitives; got %d bounding boxes", primitiveCount, len(bboxes))
	}

	seen := make([]bool, primitiveCount)
	for pos, primIndex := range t.PrimitiveIndices {
		if primIndex < 0 || primIndex >= primitiveCount {
			err = multierr.Append(err, fmt.Errorf("bvh: primitive index %d at position %d is out of range", primIndex, pos))
			continue
		}
		if seen[primIndex] {
			err = multierr.Append(err, fmt.Errorf("bvh: primitive index %d appears more than once", primIndex))
		}
		seen[primIndex] = true
	}

	nodeCount := t.NodeCount()
	covered := make([]int, primitiveCount)
	t.Walk(func(index, depth int, n *Node) bool {
		if depth > maxDepth {
			err = multierr.Append(err, fmt.Errorf("bvh: node %d at depth %d exceeds max depth %d", index, depth, maxDepth))
		}

		if !n.IsLeaf {
			first := n.FirstChildOrPrimitive
			if first <= index || first+1 >= nodeCount {
				err = multierr.Append(err, fmt.Errorf("bvh: node %d references invalid children %d, %d", index, first, first+1))
				return false
			}
			for _, child := range []int{first, first + 1} {
				if !n.BBox.Contains(t.Nodes[child].BBox) {
					err = multierr.Append(err, fmt.Errorf("bvh: node %d does not enclose child %d", index, child))
				}
			}
			return true
		}

		begin, end := n.FirstChildOrPrimitive, n.FirstChildOrPrimitive+n.PrimitiveCount
		if n.PrimitiveCount == 0 && primitiveCount != 0 {
			err = multierr.Append(err, fmt.Errorf("bvh: leaf %d is empty", index))
		}
		if begin < 0 || end > primitiveCount {
			err = multierr.Append(err, fmt.Errorf("bvh: leaf %d range [%d, %d) is out of bounds", index, begin, end))
			return false
		}
		for pos := begin; pos < end; pos++ {
			covered[pos]++
			primIndex := t.PrimitiveIndices[pos]
			if primIndex >= 0 && primIndex < primitiveCount && !n.BBox.Contains(bboxes[primIndex]) {
				err = multierr.Append(err, fmt.Errorf("bvh: leaf %d does not enclose primitive %d", index, primIndex))
			}
		}
		return true
	})

	for pos, count := range covered {
		if count != 1 {
			err = multierr.Append(err, fmt.Errorf("bvh: index list position %d is referenced by %d leaves", pos, count))
		}
	}

	return err
}
