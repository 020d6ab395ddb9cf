package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/sahbvh/types"
	"github.com/olekukonko/tablewriter"
)

// Bvh nodes are comprised of two Vec3 and two multipurpose int32 parameters
// whose value depends on the node type:
//
// - For internal nodes (top/bottom) BVH they are both >0 and point to the L/R child nodes
// - For top BVH leafs:
//   - left W is <= 0 and points to the first entry in the mesh index list
//   - right W is >=0 and contains the count of leaf meshes
// - For bottom BVH leafs:
//   - left W is <= 0 and point to the first triangle primitive index
//   - right W is >=0 and contains the count of leaf primitives
type BvhNode struct {
	Min   types.Vec3
	LData int32

	Max   types.Vec3
	RData int32
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox types.BBox) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// Get bounding box.
func (n *BvhNode) BBox() types.BBox {
	return types.BBox{Min: n.Min, Max: n.Max}
}

// Set left and right child node indices.
func (n *BvhNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Get left and right child node indices.
func (n *BvhNode) GetChildNodes() (left, right uint32) {
	return uint32(n.LData), uint32(n.RData)
}

// Set primitive index and count.
func (n *BvhNode) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex)
	n.RData = int32(count)
}

// Get primitive index and count.
func (n *BvhNode) GetPrimitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// IsLeaf returns true if this is a leaf node. Child indices are always
// positive as the root of each tree is never referenced as a child.
func (n *BvhNode) IsLeaf() bool {
	return n.LData <= 0
}

// Add offset to indices of child nodes.
func (n *BvhNode) OffsetChildNodes(offset int32) {
	// Ignore leafs
	if n.LData <= 0 {
		return
	}

	n.LData += offset
	n.RData += offset
}

// A compiled mesh.
type Mesh struct {
	Name string

	// The root node of the mesh BVH.
	BvhRoot uint32

	// The range of the triangle list occupied by this mesh.
	FirstPrimitive uint32
	PrimitiveCount uint32
}

// A compiled scene. The node list starts with the top-level BVH over the
// scene meshes followed by the BVH of each mesh.
type Scene struct {
	BvhNodeList []BvhNode

	// The number of nodes in the top-level BVH.
	TopLevelNodes uint32

	MeshList []Mesh

	// Top-level leafs reference ranges of this list, which stores indices
	// into MeshList.
	MeshIndexList []uint32

	// Triangles are stored as an array of structs; 3 entries per triangle.
	// Triangles are ordered so that each bottom BVH leaf references a
	// contiguous range.
	VertexList []types.Vec3
	NormalList []types.Vec3
}

// PrimitiveCount returns the number of triangles in the scene.
func (sc *Scene) PrimitiveCount() int {
	return len(sc.VertexList) / 3
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Geometry", "---", fmt.Sprintf("%d", sc.PrimitiveCount()), fmtSize(sc.VertexList, sc.NormalList)})
	table.Append([]string{"", "Vertices", fmt.Sprintf("%d", len(sc.VertexList)), fmtSize(sc.VertexList)})
	table.Append([]string{"", "Normals", fmt.Sprintf("%d", len(sc.NormalList)), fmtSize(sc.NormalList)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"BVH", "---", fmt.Sprintf("%d", len(sc.BvhNodeList)), fmtSize(sc.BvhNodeList)})
	table.Append([]string{"", "Top level", fmt.Sprintf("%d", sc.TopLevelNodes), fmtSize(sc.BvhNodeList[:sc.TopLevelNodes])})
	table.Append([]string{"", "Meshes", fmt.Sprintf("%d", len(sc.BvhNodeList)-int(sc.TopLevelNodes)), fmtSize(sc.BvhNodeList[sc.TopLevelNodes:])})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Meshes", "---", fmt.Sprintf("%d", len(sc.MeshList)), fmtSize(sc.MeshList, sc.MeshIndexList)})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(sc.VertexList, sc.NormalList, sc.BvhNodeList, sc.MeshList, sc.MeshIndexList), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
