package cmd

import (
	"github.com/achilleasa/sahbvh/bvh"
	"github.com/urfave/cli"
)

// BuildFlags are the flags shared by all commands that build BVH trees.
var BuildFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "bins",
		Value: 32,
		Usage: "number of SAH bins evaluated per axis",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Value: 64,
		Usage: "maximum tree depth; nodes at this depth become leafs",
	},
	cli.Float64Flag{
		Name:  "traversal-cost",
		Value: 1.0,
		Usage: "cost of traversing an internal node relative to intersecting a primitive",
	},
	cli.IntFlag{
		Name:  "parallel-threshold",
		Value: 1024,
		Usage: "nodes with fewer primitives are built inline by the worker that picked them up",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of build workers; 0 uses one worker per CPU",
	},
}

// Map the build flags to builder options.
func optionsFromContext(ctx *cli.Context) (bvh.Options, error) {
	opts := bvh.Options{
		BinCount:          ctx.Int("bins"),
		MaxDepth:          ctx.Int("max-depth"),
		TraversalCost:     float32(ctx.Float64("traversal-cost")),
		ParallelThreshold: ctx.Int("parallel-threshold"),
		Workers:           ctx.Int("workers"),
	}
	return opts, opts.Validate()
}
