package types

import "math"

// An axis-aligned bounding box. An empty box has Min > Max on every axis so
// that extending it with any box or point yields that box or point.
type BBox struct {
	Min Vec3
	Max Vec3
}

// Create an empty bounding box.
func EmptyBBox() BBox {
	return BBox{
		Min: Splat(math.MaxFloat32),
		Max: Splat(-math.MaxFloat32),
	}
}

// Create a bounding box that encloses the given points.
func BBoxFromPoints(points ...Vec3) BBox {
	b := EmptyBBox()
	for _, p := range points {
		b.ExtendPoint(p)
	}
	return b
}

// Grow box so that it also encloses other.
func (b *BBox) Extend(other BBox) {
	b.Min = MinVec3(b.Min, other.Min)
	b.Max = MaxVec3(b.Max, other.Max)
}

// Grow box so that it also encloses point p.
func (b *BBox) ExtendPoint(p Vec3) {
	b.Min = MinVec3(b.Min, p)
	b.Max = MaxVec3(b.Max, p)
}

// Return the union of two boxes.
func (b BBox) Union(other BBox) BBox {
	b.Extend(other)
	return b
}

// Returns true if the box does not enclose any point.
func (b BBox) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Get the box extents along each axis.
func (b BBox) Diagonal() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get half the surface area of the box. Empty boxes have zero area.
func (b BBox) HalfArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	d := b.Diagonal()
	return (d[0]+d[1])*d[2] + d[0]*d[1]
}

// Returns true if other lies entirely inside b. Empty boxes are contained
// by any box.
func (b BBox) Contains(other BBox) bool {
	if other.IsEmpty() {
		return true
	}
	for axis := 0; axis < 3; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}
