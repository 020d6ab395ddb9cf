package compiler

import (
	"math"
	"time"

	"github.com/achilleasa/sahbvh/asset/compiler/input"
	"github.com/achilleasa/sahbvh/asset/scene"
	"github.com/achilleasa/sahbvh/bvh"
	"github.com/achilleasa/sahbvh/log"
	"github.com/achilleasa/sahbvh/types"
	"github.com/pkg/errors"
)

type sceneCompiler struct {
	parsedScene    *input.Scene
	optimizedScene *scene.Scene
	builder        *bvh.Builder
	logger         log.Logger

	// Per-mesh BVH statistics in mesh order.
	meshStats []bvh.Stats
}

// Result bundles a compiled scene with the statistics of the BVH built for
// each of its meshes.
type Result struct {
	Scene     *scene.Scene
	TopLevel  bvh.Stats
	MeshStats []bvh.Stats
}

// Compile a scene representation parsed by a scene reader into a two-level
// BVH with a flat, index-based layout.
func Compile(parsedScene *input.Scene, opts bvh.Options) (*Result, error) {
	builder, err := bvh.NewBuilder(opts)
	if err != nil {
		return nil, err
	}

	if total := parsedScene.PrimitiveCount(); total > math.MaxInt32/3 {
		return nil, errors.Errorf("compiler: scene contains %d primitives; at most %d are supported", total, math.MaxInt32/3)
	}

	compiler := &sceneCompiler{
		parsedScene:    parsedScene,
		optimizedScene: &scene.Scene{},
		builder:        builder,
		logger:         log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	topLevel, err := compiler.partitionMeshes()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return &Result{
		Scene:     compiler.optimizedScene,
		TopLevel:  topLevel,
		MeshStats: compiler.meshStats,
	}, nil
}

// Build the top-level BVH over the scene mesh bounding boxes. Top-level leafs
// reference ranges of the scene mesh index list.
func (sc *sceneCompiler) partitionMeshes() (bvh.Stats, error) {
	sc.logger.Infof("building scene BVH tree (%d meshes)", len(sc.parsedScene.Meshes))

	bboxes, centers := sc.parsedScene.Bounds()
	tree, err := sc.builder.Build(bboxes, centers)
	if err != nil {
		return bvh.Stats{}, errors.Wrap(err, "compiler: could not build scene BVH")
	}

	sc.optimizedScene.BvhNodeList = flatten(tree, 0, 0)
	sc.optimizedScene.TopLevelNodes = uint32(len(sc.optimizedScene.BvhNodeList))
	sc.optimizedScene.MeshIndexList = make([]uint32, len(tree.PrimitiveIndices))
	for index, meshIndex := range tree.PrimitiveIndices {
		sc.optimizedScene.MeshIndexList[index] = uint32(meshIndex)
	}

	stats := tree.Stats(sc.builder.Options().TraversalCost)
	stats.BuildTime = sc.builder.LastBuildTime()
	return stats, nil
}

// Partition each mesh into its own BVH and copy its triangles to the flat
// vertex and normal lists using the order of the BVH leafs.
func (sc *sceneCompiler) partitionGeometry() error {
	start := time.Now()
	sc.logger.Notice("partitioning geometry")

	totalVertices := 3 * sc.parsedScene.PrimitiveCount()
	sc.optimizedScene.VertexList = make([]types.Vec3, totalVertices)
	sc.optimizedScene.NormalList = make([]types.Vec3, totalVertices)
	sc.optimizedScene.MeshList = make([]scene.Mesh, len(sc.parsedScene.Meshes))
	sc.meshStats = make([]bvh.Stats, len(sc.parsedScene.Meshes))

	var primOffset uint32 = 0
	for mIndex, pm := range sc.parsedScene.Meshes {
		sc.logger.Infof(`building BVH tree for "%s" (%d primitives)`, pm.Name, len(pm.Primitives))

		bboxes, centers := pm.Bounds()
		tree, err := sc.builder.Build(bboxes, centers)
		if err != nil {
			return errors.Wrapf(err, "compiler: could not build BVH for mesh %q", pm.Name)
		}

		stats := tree.Stats(sc.builder.Options().TraversalCost)
		stats.BuildTime = sc.builder.LastBuildTime()
		sc.meshStats[mIndex] = stats
		sc.logger.Debugf(`BVH for "%s": %d nodes, %d leafs, max depth %d, SAH cost %.3f`, pm.Name, stats.Nodes, stats.Leaves, stats.MaxDepth, stats.Cost)

		// Copy primitive data in leaf order
		vertexOffset := 3 * primOffset
		for _, primIndex := range tree.PrimitiveIndices {
			prim := pm.Primitives[primIndex]
			copy(sc.optimizedScene.VertexList[vertexOffset:vertexOffset+3], prim.Vertices[:])
			copy(sc.optimizedScene.NormalList[vertexOffset:vertexOffset+3], prim.Normals[:])
			vertexOffset += 3
		}

		// Apply offset to bvh nodes and append them to the scene bvh list
		nodeOffset := uint32(len(sc.optimizedScene.BvhNodeList))
		sc.optimizedScene.BvhNodeList = append(sc.optimizedScene.BvhNodeList, flatten(tree, nodeOffset, primOffset)...)
		sc.optimizedScene.MeshList[mIndex] = scene.Mesh{
			Name:           pm.Name,
			BvhRoot:        nodeOffset,
			FirstPrimitive: primOffset,
			PrimitiveCount: uint32(len(pm.Primitives)),
		}

		primOffset += uint32(len(pm.Primitives))
	}

	sc.logger.Noticef("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Convert a BVH tree into packed nodes. Child indices are shifted by
// nodeOffset and leaf primitive ranges by primOffset.
func flatten(tree *bvh.Tree, nodeOffset, primOffset uint32) []scene.BvhNode {
	nodes := make([]scene.BvhNode, tree.NodeCount())
	for index := range nodes {
		src := &tree.Nodes[index]
		dst := &nodes[index]
		dst.SetBBox(src.BBox)

		if src.IsLeaf {
			dst.SetPrimitives(primOffset+uint32(src.FirstChildOrPrimitive), uint32(src.PrimitiveCount))
			continue
		}

		dst.SetChildNodes(uint32(src.FirstChildOrPrimitive), uint32(src.FirstChildOrPrimitive+1))
		dst.OffsetChildNodes(int32(nodeOffset))
	}
	return nodes
}
