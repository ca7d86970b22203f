package math3d

import "testing"

// Ray tests run once per mesh per pointer move: AABB first, triangles
// only for boxes the ray enters.
func BenchmarkRayAABB(b *testing.B) {
	r := Ray{Origin: V3(3, 20, -1), Direction: V3(0, -1, 0)}
	box := AABB{Min: V3(2, 0, -2), Max: V3(4, 1.5, 0)}
	for b.Loop() {
		_, _ = r.IntersectAABB(box)
	}
}

func BenchmarkRayTriangle(b *testing.B) {
	r := Ray{Origin: V3(0.2, 0.2, 5), Direction: V3(0, 0, -1)}
	p0, p1, p2 := V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0)
	for b.Loop() {
		_, _ = r.IntersectTriangle(p0, p1, p2)
	}
}

func BenchmarkRayGroundPlane(b *testing.B) {
	r := Ray{Origin: V3(18, 14, 18), Direction: V3(-1, -0.8, -1).Normalize()}
	for b.Loop() {
		_, _ = r.IntersectPlaneY(0)
	}
}

// Alert centres and scene bounds fold mesh boxes together.
func BenchmarkAABBUnion(b *testing.B) {
	boxes := make([]AABB, 64)
	for i := range boxes {
		f := float64(i)
		boxes[i] = AABB{Min: V3(f, 0, -f), Max: V3(f+1, 2, -f+1)}
	}
	for b.Loop() {
		u := EmptyAABB()
		for _, box := range boxes {
			u = u.Union(box)
		}
		_ = u.Center()
	}
}

// The HUD read-out rounds the live pose every frame.
func BenchmarkVec3Round(b *testing.B) {
	v := V3(12.3456, 3.14159, -7.777)
	for b.Loop() {
		_ = v.Round(2)
	}
}

func BenchmarkVec3Lerp(b *testing.B) {
	from, to := V3(20, 15, 20), V3(-2.5, 4, 5.5)
	for b.Loop() {
		_ = from.Lerp(to, 0.37)
	}
}
