package math3d

import "math"

// AABB is an axis-aligned bounding box. The zero value is not empty; use
// EmptyAABB to start a union.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that contains nothing and absorbs any Extend.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: V3(inf, inf, inf),
		Max: V3(-inf, -inf, -inf),
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to contain p.
func (b AABB) Extend(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}
