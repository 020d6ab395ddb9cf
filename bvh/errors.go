package bvh

import "errors"

var (
	ErrInvalidBinCount      = errors.New("bvh: bin count must be at least 2")
	ErrInvalidMaxDepth      = errors.New("bvh: max depth must be at least 1")
	ErrInvalidTraversalCost = errors.New("bvh: traversal cost must not be negative")
	ErrInvalidThreshold     = errors.New("bvh: parallel threshold must not be negative")
	ErrInvalidWorkers       = errors.New("bvh: worker count must not be negative")
	ErrMismatchedInputs     = errors.New("bvh: bounding box and center lists have different lengths")
)
