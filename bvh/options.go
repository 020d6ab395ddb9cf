package bvh

import "runtime"

// Options controls the quality/speed trade-offs of the binned SAH builder.
// There are no implicit defaults; every field must be supplied by the caller.
type Options struct {
	// Number of centroid bins evaluated per axis. Typical values are 16-64.
	BinCount int

	// Nodes at this depth always become leaves. The root is at depth 0.
	MaxDepth int

	// The cost of traversing a node relative to a primitive intersection
	// test. A node with n primitives is split only if the best split
	// costs less than halfArea(node) * (n - TraversalCost).
	TraversalCost float32

	// Work items with fewer primitives than this value are processed
	// inline by the worker that produced them and never have their
	// per-axis split evaluation fanned out.
	ParallelThreshold int

	// Number of workers used for building. A zero value selects one
	// worker per available CPU.
	Workers int
}

// Validate the options.
func (o Options) Validate() error {
	switch {
	case o.BinCount < 2:
		return ErrInvalidBinCount
	case o.MaxDepth < 1:
		return ErrInvalidMaxDepth
	case o.TraversalCost < 0:
		return ErrInvalidTraversalCost
	case o.ParallelThreshold < 0:
		return ErrInvalidThreshold
	case o.Workers < 0:
		return ErrInvalidWorkers
	}
	return nil
}

func (o Options) workerCount() int {
	if o.Workers == 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}
