package scene

import "github.com/ansipixels/twincam/math3d"

// boxVertices returns the 8 corners of an axis-aligned box.
func boxVertices(center, half math3d.Vec3) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: center.X - half.X, Y: center.Y - half.Y, Z: center.Z - half.Z},
		{X: center.X + half.X, Y: center.Y - half.Y, Z: center.Z - half.Z},
		{X: center.X + half.X, Y: center.Y + half.Y, Z: center.Z - half.Z},
		{X: center.X - half.X, Y: center.Y + half.Y, Z: center.Z - half.Z},
		{X: center.X - half.X, Y: center.Y - half.Y, Z: center.Z + half.Z},
		{X: center.X + half.X, Y: center.Y - half.Y, Z: center.Z + half.Z},
		{X: center.X + half.X, Y: center.Y + half.Y, Z: center.Z + half.Z},
		{X: center.X - half.X, Y: center.Y + half.Y, Z: center.Z + half.Z},
	}
}

// boxFaces indexes boxVertices, two triangles per side.
var boxFaces = [12][3]int{
	{0, 2, 1}, {0, 3, 2}, // -Z
	{4, 5, 6}, {4, 6, 7}, // +Z
	{0, 1, 5}, {0, 5, 4}, // -Y
	{3, 7, 6}, {3, 6, 2}, // +Y
	{0, 4, 7}, {0, 7, 3}, // -X
	{1, 2, 6}, {1, 6, 5}, // +X
}

// Box returns the 12 triangles of an axis-aligned box of the given size.
func Box(center, size math3d.Vec3) []Triangle {
	v := boxVertices(center, size.Scale(0.5))
	tris := make([]Triangle, len(boxFaces))
	for i, f := range boxFaces {
		tris[i] = Triangle{v[f[0]], v[f[1]], v[f[2]]}
	}
	return tris
}
