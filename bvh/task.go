package bvh

import (
	"github.com/achilleasa/sahbvh/types"
	"golang.org/x/sync/errgroup"
)

// WorkItem describes a pending split decision for the node at NodeIndex
// which owns PrimitiveIndices[Begin:End].
type WorkItem struct {
	NodeIndex int
	Begin     int
	End       int
	Depth     int
}

// WorkSize returns the number of primitives covered by the item.
func (w WorkItem) WorkSize() int {
	return w.End - w.Begin
}

// Task is implemented by node split strategies driven by the Scheduler. Build
// either turns the item's node into a leaf and returns false or splits it and
// returns the work items for its two children.
//
// A Task instance is only ever used by a single worker at a time.
type Task interface {
	Build(item WorkItem) (left, right WorkItem, split bool)
}

// buildTask implements the binned SAH split strategy. Each instance owns
// private bin storage for the three axes so concurrent nodes must use
// separate instances.
type buildTask struct {
	tree *Tree
	opts Options

	// Caller-owned, read-only primitive data.
	bboxes  []types.BBox
	centers []types.Vec3

	binsPerAxis [3][]bin
}

func newBuildTask(tree *Tree, opts Options, bboxes []types.BBox, centers []types.Vec3) *buildTask {
	bt := &buildTask{
		tree:    tree,
		opts:    opts,
		bboxes:  bboxes,
		centers: centers,
	}
	for axis := range bt.binsPerAxis {
		bt.binsPerAxis[axis] = make([]bin, opts.BinCount)
	}
	return bt
}

// Build decides whether the node referenced by item becomes a leaf or is
// split in two.
func (bt *buildTask) Build(item WorkItem) (WorkItem, WorkItem, bool) {
	node := &bt.tree.Nodes[item.NodeIndex]

	if item.WorkSize() <= 1 || item.Depth >= bt.opts.MaxDepth {
		node.makeLeaf(item.Begin, item.End)
		return WorkItem{}, WorkItem{}, false
	}

	indices := bt.tree.PrimitiveIndices[item.Begin:item.End]

	centerBBox := types.EmptyBBox()
	for _, primIndex := range indices {
		centerBBox.ExtendPoint(bt.centers[primIndex])
	}
	mapper := newBinMapper(centerBBox, bt.opts.BinCount)

	var bestSplits [3]split
	if item.WorkSize() > bt.opts.ParallelThreshold {
		var g errgroup.Group
		for axis := 0; axis < 3; axis++ {
			axis := axis
			g.Go(func() error {
				bestSplits[axis] = bt.findSplit(axis, item.Begin, item.End, mapper)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for axis := 0; axis < 3; axis++ {
			bestSplits[axis] = bt.findSplit(axis, item.Begin, item.End, mapper)
		}
	}

	bestAxis := 0
	if bestSplits[0].cost > bestSplits[1].cost {
		bestAxis = 1
	}
	if bestSplits[bestAxis].cost > bestSplits[2].cost {
		bestAxis = 2
	}
	best := bestSplits[bestAxis]

	// Splitting must be cheaper than intersecting every primitive in the node
	leafCost := node.BBox.HalfArea() * (float32(item.WorkSize()) - bt.opts.TraversalCost)
	if best.boundary == bt.opts.BinCount || best.cost >= leafCost {
		node.makeLeaf(item.Begin, item.End)
		return WorkItem{}, WorkItem{}, false
	}

	beginRight := item.Begin + partition(indices, func(primIndex int) bool {
		return mapper.binIndex(bt.centers[primIndex], bestAxis) < best.boundary
	})

	// Bin quantization may yield a boundary that does not separate anything
	if beginRight == item.Begin || beginRight == item.End {
		node.makeLeaf(item.Begin, item.End)
		return WorkItem{}, WorkItem{}, false
	}

	firstChild := bt.tree.allocPair()
	node.makeInternal(firstChild)

	bins := bt.binsPerAxis[bestAxis]
	leftBBox := types.EmptyBBox()
	for _, b := range bins[:best.boundary] {
		leftBBox.Extend(b.bbox)
	}
	rightBBox := types.EmptyBBox()
	for _, b := range bins[best.boundary:] {
		rightBBox.Extend(b.bbox)
	}
	bt.tree.Nodes[firstChild].BBox = leftBBox
	bt.tree.Nodes[firstChild+1].BBox = rightBBox

	return WorkItem{NodeIndex: firstChild, Begin: item.Begin, End: beginRight, Depth: item.Depth + 1},
		WorkItem{NodeIndex: firstChild + 1, Begin: beginRight, End: item.End, Depth: item.Depth + 1},
		true
}

// Reorder list in place so that all entries satisfying pred precede the ones
// that do not and return the number of entries that satisfy pred.
func partition(list []int, pred func(int) bool) int {
	first := 0
	for first < len(list) && pred(list[first]) {
		first++
	}
	for i := first + 1; i < len(list); i++ {
		if pred(list[i]) {
			list[first], list[i] = list[i], list[first]
			first++
		}
	}
	return first
}
