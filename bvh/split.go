package bvh

import (
	"math"

	"github.com/achilleasa/sahbvh/types"
)

// A centroid bin. Bins are rebuilt from scratch for every node and axis.
type bin struct {
	bbox           types.BBox
	primitiveCount int

	// The cost of treating this bin and every bin to its right as one
	// child: halfArea(union) * count.
	rightCost float32
}

// The result of evaluating split candidates along a single axis. A
// boundary equal to the bin count means that no valid split was found.
type split struct {
	cost     float32
	boundary int
}

// binMapper maps centroids to bins through a per-axis affine transform
// computed from the centroid bounding box of a node. The same mapper must be
// used for evaluating splits and for partitioning primitives.
type binMapper struct {
	scale    types.Vec3
	offset   types.Vec3
	binCount int
}

func newBinMapper(centerBBox types.BBox, binCount int) binMapper {
	m := binMapper{binCount: binCount}
	extent := centerBBox.Diagonal()
	for axis := 0; axis < 3; axis++ {
		// Degenerate axes collapse into bin 0.
		if extent[axis] <= 0 {
			continue
		}
		m.scale[axis] = float32(binCount) / extent[axis]
		m.offset[axis] = -centerBBox.Min[axis] * m.scale[axis]
	}
	return m
}

func (m binMapper) binIndex(center types.Vec3, axis int) int {
	index := int(math.Floor(float64(center[axis]*m.scale[axis] + m.offset[axis])))
	if index < 0 {
		return 0
	}
	if index > m.binCount-1 {
		return m.binCount - 1
	}
	return index
}

// Find the cheapest split plane along axis for the primitives in
// PrimitiveIndices[begin:end]. Ties are resolved in favor of the lowest
// boundary index.
func (bt *buildTask) findSplit(axis, begin, end int, mapper binMapper) split {
	bins := bt.binsPerAxis[axis]
	for i := range bins {
		bins[i] = bin{bbox: types.EmptyBBox()}
	}

	for _, primIndex := range bt.tree.PrimitiveIndices[begin:end] {
		b := &bins[mapper.binIndex(bt.centers[primIndex], axis)]
		b.primitiveCount++
		b.bbox.Extend(bt.bboxes[primIndex])
	}

	// Right sweep
	curBBox := types.EmptyBBox()
	curCount := 0
	for i := len(bins) - 1; i > 0; i-- {
		curBBox.Extend(bins[i].bbox)
		curCount += bins[i].primitiveCount
		bins[i].rightCost = curBBox.HalfArea() * float32(curCount)
	}

	// Left sweep
	curBBox = types.EmptyBBox()
	curCount = 0
	best := split{cost: math.MaxFloat32, boundary: len(bins)}
	for i := 0; i < len(bins)-1; i++ {
		curBBox.Extend(bins[i].bbox)
		curCount += bins[i].primitiveCount
		// Boundaries that leave a side empty are not split candidates.
		if curCount == 0 || curCount == end-begin {
			continue
		}

		cost := curBBox.HalfArea()*float32(curCount) + bins[i+1].rightCost
		if cost < best.cost {
			best = split{cost: cost, boundary: i + 1}
		}
	}
	return best
}
