package input

import (
	"github.com/achilleasa/sahbvh/types"
)

// A triangle primitive.
type Primitive struct {
	Vertices [3]types.Vec3
	Normals  [3]types.Vec3

	bbox   types.BBox
	center types.Vec3
}

// NewPrimitive creates a triangle and caches its bounding box and centroid.
func NewPrimitive(vertices, normals [3]types.Vec3) *Primitive {
	return &Primitive{
		Vertices: vertices,
		Normals:  normals,
		bbox:     types.BBoxFromPoints(vertices[:]...),
		center:   vertices[0].Add(vertices[1]).Add(vertices[2]).Mul(1.0 / 3.0),
	}
}

// Get the primitive AABB.
func (prim *Primitive) BBox() types.BBox {
	return prim.bbox
}

// Get the primitive centroid.
func (prim *Primitive) Center() types.Vec3 {
	return prim.center
}

// A mesh is a named list of triangles.
type Mesh struct {
	Name       string
	Primitives []*Primitive

	bbox            types.BBox
	bboxNeedsUpdate bool
}

// Create a new mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:            name,
		Primitives:      make([]*Primitive, 0),
		bboxNeedsUpdate: true,
	}
}

// Append primitives to the mesh.
func (m *Mesh) Append(prims ...*Primitive) {
	m.Primitives = append(m.Primitives, prims...)
	m.bboxNeedsUpdate = true
}

// Get mesh bounding box.
func (m *Mesh) BBox() types.BBox {
	if m.bboxNeedsUpdate {
		m.bbox = types.EmptyBBox()
		for _, prim := range m.Primitives {
			m.bbox.Extend(prim.bbox)
		}
		m.bboxNeedsUpdate = false
	}

	return m.bbox
}

// Bounds returns the per-primitive boxes and centroids in primitive order,
// ready to be handed to a BVH builder.
func (m *Mesh) Bounds() ([]types.BBox, []types.Vec3) {
	bboxes := make([]types.BBox, len(m.Primitives))
	centers := make([]types.Vec3, len(m.Primitives))
	for index, prim := range m.Primitives {
		bboxes[index] = prim.bbox
		centers[index] = prim.center
	}
	return bboxes, centers
}

// The scene contains all meshes processed by the scene compiler.
type Scene struct {
	Meshes []*Mesh
}

// Create a new scene.
func NewScene() *Scene {
	return &Scene{
		Meshes: make([]*Mesh, 0),
	}
}

// PrimitiveCount returns the number of triangles in all scene meshes.
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, mesh := range s.Meshes {
		count += len(mesh.Primitives)
	}
	return count
}

// Bounds returns the box and centroid of each mesh.
func (s *Scene) Bounds() ([]types.BBox, []types.Vec3) {
	bboxes := make([]types.BBox, len(s.Meshes))
	centers := make([]types.Vec3, len(s.Meshes))
	for index, mesh := range s.Meshes {
		bboxes[index] = mesh.BBox()
		centers[index] = bboxes[index].Center()
	}
	return bboxes, centers
}
