package bvh

import (
	"testing"

	"github.com/achilleasa/sahbvh/types"
)

func TestBinMapper(t *testing.T) {
	centerBBox := types.BBox{Min: types.XYZ(0, 10, 5), Max: types.XYZ(8, 10, 5)}
	m := newBinMapper(centerBBox, 4)

	type spec struct {
		center types.Vec3
		axis   int
		expBin int
	}

	specs := []spec{
		{types.XYZ(0, 10, 5), 0, 0},
		{types.XYZ(1.9, 10, 5), 0, 0},
		{types.XYZ(2, 10, 5), 0, 1},
		{types.XYZ(7.9, 10, 5), 0, 3},
		// The max centroid maps to BinCount and gets clamped
		{types.XYZ(8, 10, 5), 0, 3},
		// Values outside the centroid box are clamped as well
		{types.XYZ(-3, 10, 5), 0, 0},
		{types.XYZ(100, 10, 5), 0, 3},
		// Degenerate axes collapse into bin 0
		{types.XYZ(4, 10, 5), 1, 0},
		{types.XYZ(4, 99, 5), 2, 0},
	}

	for index, s := range specs {
		if bin := m.binIndex(s.center, s.axis); bin != s.expBin {
			t.Fatalf("[spec %d] expected center %v on axis %d to map to bin %d; got %d", index, s.center, s.axis, s.expBin, bin)
		}
	}
}

func TestFindSplit(t *testing.T) {
	bboxes, centers := makePrimitives(
		[2]types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 1, 1)},
		[2]types.Vec3{types.XYZ(1, 0, 0), types.XYZ(2, 1, 1)},
		[2]types.Vec3{types.XYZ(10, 0, 0), types.XYZ(11, 1, 1)},
		[2]types.Vec3{types.XYZ(11, 0, 0), types.XYZ(12, 1, 1)},
	)

	opts := testOptions()
	opts.BinCount = 4
	tree := newTree(len(bboxes))
	for i := range tree.PrimitiveIndices {
		tree.PrimitiveIndices[i] = i
	}
	task := newBuildTask(tree, opts, bboxes, centers)
	mapper := newBinMapper(types.BBoxFromPoints(centers...), opts.BinCount)

	// Centers 0.5 and 1.5 land in bin 0 while 10.5 and 11.5 land in bin 3.
	// Boundaries 1, 2 and 3 have the same cost; the lowest one wins.
	best := task.findSplit(0, 0, len(bboxes), mapper)
	if best.boundary != 1 {
		t.Fatalf("expected boundary 1; got %d", best.boundary)
	}

	// Each half is a 2x1x1 box (half area 5) holding 2 primitives.
	var expCost float32 = 20
	if best.cost != expCost {
		t.Fatalf("expected cost %f; got %f", expCost, best.cost)
	}

	bins := task.binsPerAxis[0]
	if bins[0].primitiveCount != 2 || bins[1].primitiveCount != 0 || bins[2].primitiveCount != 0 || bins[3].primitiveCount != 2 {
		t.Fatalf("unexpected bin counts: %d %d %d %d", bins[0].primitiveCount, bins[1].primitiveCount, bins[2].primitiveCount, bins[3].primitiveCount)
	}

	// All centers coincide on the Y axis; no boundary separates them
	best = task.findSplit(1, 0, len(bboxes), mapper)
	if best.boundary != opts.BinCount {
		t.Fatalf("expected no valid split on degenerate axis; got boundary %d", best.boundary)
	}

	// Evaluating a sub-range only considers the primitives inside it
	best = task.findSplit(0, 2, 4, mapper)
	if best.boundary != opts.BinCount {
		t.Fatalf("expected no valid split for primitives sharing a bin; got boundary %d", best.boundary)
	}
}

func TestPartition(t *testing.T) {
	type spec struct {
		list     []int
		expCount int
	}

	specs := []spec{
		{[]int{}, 0},
		{[]int{1, 3, 5}, 0},
		{[]int{2, 4, 6}, 3},
		{[]int{1, 2, 3, 4, 5, 6}, 3},
		{[]int{6, 5, 4, 3, 2, 1, 0}, 4},
	}

	isEven := func(v int) bool { return v%2 == 0 }
	for index, s := range specs {
		sum := 0
		for _, v := range s.list {
			sum += v
		}

		count := partition(s.list, isEven)
		if count != s.expCount {
			t.Fatalf("[spec %d] expected %d entries to match; got %d", index, s.expCount, count)
		}
		for pos, v := range s.list {
			if isEven(v) != (pos < count) {
				t.Fatalf("[spec %d] entry %d at position %d is on the wrong side of %d", index, v, pos, count)
			}
			sum -= v
		}
		if sum != 0 {
			t.Fatalf("[spec %d] expected partition to permute the list; got %v", index, s.list)
		}
	}
}
