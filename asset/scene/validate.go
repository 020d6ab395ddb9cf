package scene

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate walks the top-level BVH and every mesh BVH and reports all
// structural problems it finds: out-of-range child or leaf references,
// child boxes escaping their parents, and leaf ranges crossing mesh bounds.
func (sc *Scene) Validate() error {
	var err error
	if int(sc.TopLevelNodes) > len(sc.BvhNodeList) || sc.TopLevelNodes == 0 {
		return fmt.Errorf("scene: invalid top-level node count %d", sc.TopLevelNodes)
	}

	err = multierr.Append(err, sc.walk(0, 0, sc.TopLevelNodes, func(nodeIndex uint32, first, count uint32) error {
		if int(first+count) > len(sc.MeshIndexList) {
			return fmt.Errorf("scene: top-level leaf %d references meshes [%d, %d) past the mesh index list", nodeIndex, first, first+count)
		}
		for _, meshIndex := range sc.MeshIndexList[first : first+count] {
			if int(meshIndex) >= len(sc.MeshList) {
				return fmt.Errorf("scene: top-level leaf %d references unknown mesh %d", nodeIndex, meshIndex)
			}
			mesh := sc.MeshList[meshIndex]
			if int(mesh.BvhRoot) >= len(sc.BvhNodeList) {
				continue
			}
			if meshBBox := sc.BvhNodeList[mesh.BvhRoot].BBox(); !sc.BvhNodeList[nodeIndex].BBox().Contains(meshBBox) {
				return fmt.Errorf("scene: top-level leaf %d does not enclose mesh %q", nodeIndex, mesh.Name)
			}
		}
		return nil
	}))

	for meshIndex, mesh := range sc.MeshList {
		if mesh.BvhRoot < sc.TopLevelNodes || int(mesh.BvhRoot) >= len(sc.BvhNodeList) {
			err = multierr.Append(err, fmt.Errorf("scene: mesh %d has invalid BVH root %d", meshIndex, mesh.BvhRoot))
			continue
		}
		err = multierr.Append(err, sc.walk(mesh.BvhRoot, sc.TopLevelNodes, uint32(len(sc.BvhNodeList)), func(nodeIndex uint32, first, count uint32) error {
			if first < mesh.FirstPrimitive || first+count > mesh.FirstPrimitive+mesh.PrimitiveCount {
				return fmt.Errorf("scene: leaf %d of mesh %q references primitives [%d, %d) outside the mesh range", nodeIndex, mesh.Name, first, first+count)
			}
			return nil
		}))
	}

	return err
}

// Walk the tree rooted at root checking that all referenced nodes are within
// [minNode, maxNode) and that child boxes are enclosed by their parents.
// Children must have a higher index than their parent so the walk always
// terminates. Leaves are passed to checkLeaf.
func (sc *Scene) walk(root, minNode, maxNode uint32, checkLeaf func(nodeIndex, first, count uint32) error) error {
	var err error

	stack := []uint32{root}
	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := &sc.BvhNodeList[nodeIndex]
		if node.IsLeaf() {
			first, count := node.GetPrimitives()
			err = multierr.Append(err, checkLeaf(nodeIndex, first, count))
			continue
		}

		left, right := node.GetChildNodes()
		for _, child := range []uint32{left, right} {
			if child <= nodeIndex || child < minNode || child >= maxNode {
				err = multierr.Append(err, fmt.Errorf("scene: node %d references invalid child %d", nodeIndex, child))
				continue
			}
			if !node.BBox().Contains(sc.BvhNodeList[child].BBox()) {
				err = multierr.Append(err, fmt.Errorf("scene: node %d does not enclose child %d", nodeIndex, child))
			}
			stack = append(stack, child)
		}
	}

	return err
}
