package bvh

import (
	"time"

	"github.com/achilleasa/sahbvh/log"
	"github.com/achilleasa/sahbvh/types"
	"golang.org/x/sync/errgroup"
)

// Builder constructs BVH trees using a binned surface area heuristic. A
// Builder must not be used by multiple goroutines at the same time.
type Builder struct {
	logger log.Logger
	opts   Options

	lastBuildTime time.Duration
}

// NewBuilder creates a binned SAH builder for the supplied options.
func NewBuilder(opts Options) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Builder{
		logger: log.New("bvh builder"),
		opts:   opts,
	}, nil
}

// Options returns the builder options.
func (b *Builder) Options() Options {
	return b.opts
}

// LastBuildTime returns the wall-clock time taken by the last call to Build.
func (b *Builder) LastBuildTime() time.Duration {
	return b.lastBuildTime
}

// Build a BVH over the primitives described by bboxes and centers. Entry i
// of each list describes primitive i. Both lists are borrowed for the
// duration of the call and are never modified.
func (b *Builder) Build(bboxes []types.BBox, centers []types.Vec3) (*Tree, error) {
	if len(bboxes) != len(centers) {
		return nil, ErrMismatchedInputs
	}

	start := time.Now()
	primitiveCount := len(bboxes)
	tree := newTree(primitiveCount)
	workers := b.opts.workerCount()

	tree.Nodes[0].BBox = b.initRoot(tree, bboxes, workers)

	scheduler := NewScheduler(workers, b.opts.ParallelThreshold)
	scheduler.Run(func() Task {
		return newBuildTask(tree, b.opts, bboxes, centers)
	}, WorkItem{NodeIndex: 0, Begin: 0, End: primitiveCount, Depth: 0})

	b.lastBuildTime = time.Since(start)
	b.logger.Debugf(
		"built BVH for %d primitives in %d ms (%d nodes, %d workers)",
		primitiveCount, b.lastBuildTime.Nanoseconds()/1e6, tree.NodeCount(), workers,
	)
	return tree, nil
}

// Fill the primitive index list with the identity permutation and compute the
// root bounding box. Each worker reduces a contiguous chunk; the partial
// boxes are then merged.
func (b *Builder) initRoot(tree *Tree, bboxes []types.BBox, workers int) types.BBox {
	primitiveCount := len(bboxes)
	if primitiveCount < b.opts.ParallelThreshold || workers == 1 {
		workers = 1
	}

	chunkSize := (primitiveCount + workers - 1) / workers
	partials := make([]types.BBox, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			partial := types.EmptyBBox()
			from := w * chunkSize
			to := from + chunkSize
			if to > primitiveCount {
				to = primitiveCount
			}
			for i := from; i < to; i++ {
				partial.Extend(bboxes[i])
				tree.PrimitiveIndices[i] = i
			}
			partials[w] = partial
			return nil
		})
	}
	_ = g.Wait()

	rootBBox := types.EmptyBBox()
	for _, partial := range partials {
		rootBBox.Extend(partial)
	}
	return rootBBox
}
