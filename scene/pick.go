package scene

import (
	"math"

	"github.com/ansipixels/twincam/math3d"
)

// Hit is the nearest intersection of a ray with scene geometry.
type Hit struct {
	Node     *Node
	Point    math3d.Vec3 // surface point, not the node origin
	Distance float64
}

// Pick returns the nearest mesh hit along the ray.
func (s *Scene) Pick(r math3d.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	for _, m := range s.meshes {
		if d, ok := r.IntersectAABB(m.Bounds); !ok || d > best.Distance {
			continue
		}
		for _, t := range m.Triangles {
			if d, ok := r.IntersectTriangle(t[0], t[1], t[2]); ok && d < best.Distance {
				best = Hit{Node: m, Point: r.At(d), Distance: d}
			}
		}
	}
	return best, best.Node != nil
}
