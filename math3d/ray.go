package math3d

import "math"

// Ray is a half-line from Origin along unit Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectTriangle returns the distance to the triangle (a, b, c) using the
// Möller–Trumbore test. Both faces are hit.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= eps {
		return 0, false
	}
	return t, true
}

// IntersectAABB reports whether the ray hits the box and the entry distance
// (zero when the origin is inside).
func (r Ray) IntersectAABB(b AABB) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for i := range 3 {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// IntersectPlaneY returns the distance to the horizontal plane y = height.
func (r Ray) IntersectPlaneY(height float64) (float64, bool) {
	if math.Abs(r.Direction.Y) < 1e-12 {
		return 0, false
	}
	t := (height - r.Origin.Y) / r.Direction.Y
	if t <= 0 {
		return 0, false
	}
	return t, true
}
