package cmd

import (
	"errors"
	"math/rand"
	"time"

	"github.com/achilleasa/sahbvh/bvh"
	"github.com/achilleasa/sahbvh/types"
	"github.com/urfave/cli"
)

// Benchmark BVH construction over a synthetic set of triangles.
func Benchmark(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}

	count := ctx.Int("primitives")
	runs := ctx.Int("runs")
	if count < 0 || runs < 1 {
		return errors.New("primitive count must not be negative and at least one run is required")
	}

	bboxes, centers := randomTriangleBounds(count, ctx.Int64("seed"))
	builder, err := bvh.NewBuilder(opts)
	if err != nil {
		return err
	}

	logger.Noticef("building %d BVH trees over %d primitives", runs, count)
	var tree *bvh.Tree
	var total, best time.Duration
	for run := 0; run < runs; run++ {
		if tree, err = builder.Build(bboxes, centers); err != nil {
			return err
		}

		elapsed := builder.LastBuildTime()
		total += elapsed
		if run == 0 || elapsed < best {
			best = elapsed
		}
		logger.Infof("run %d: %d ms", run+1, elapsed.Nanoseconds()/1e6)
	}

	if ctx.Bool("validate") {
		if err = tree.Validate(bboxes, opts.MaxDepth); err != nil {
			return err
		}
		logger.Notice("tree passed validation")
	}

	stats := tree.Stats(opts.TraversalCost)
	stats.BuildTime = best
	logger.Noticef("best of %d runs (avg %d ms):\n%s", runs, (total / time.Duration(runs)).Nanoseconds()/1e6, stats.Table())
	return nil
}

// Generate bounds for count random triangles scattered inside a cube with
// side 100. Triangle edges are at most 1 unit long.
func randomTriangleBounds(count int, seed int64) ([]types.BBox, []types.Vec3) {
	rng := rand.New(rand.NewSource(seed))
	randVec := func(scale float32) types.Vec3 {
		return types.XYZ(rng.Float32()*scale, rng.Float32()*scale, rng.Float32()*scale)
	}

	bboxes := make([]types.BBox, count)
	centers := make([]types.Vec3, count)
	for index := range bboxes {
		v0 := randVec(100)
		v1 := v0.Add(randVec(1))
		v2 := v0.Add(randVec(1))
		bboxes[index] = types.BBoxFromPoints(v0, v1, v2)
		centers[index] = v0.Add(v1).Add(v2).Mul(1.0 / 3.0)
	}
	return bboxes, centers
}
