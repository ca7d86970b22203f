package render

import (
	"io"
	"testing"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/scene"
)

func benchCamera(w, h int) *Camera {
	cam := NewCamera()
	cam.SetPose(math3d.V3(18, 14, 18), math3d.V3(0, 0, 0))
	cam.SetAspectRatio(float64(w) / float64(2*h))
	return cam
}

func BenchmarkDrawScene(b *testing.B) {
	const w, h = 160, 48
	s := scene.Demo()
	c := NewCanvas(w, h)
	cam := benchCamera(w, h)
	for b.Loop() {
		c.Clear()
		c.DrawScene(s, cam)
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	const w, h = 160, 48
	c := NewCanvas(w, h)
	cam := benchCamera(w, h)
	tri := scene.Triangle{math3d.V3(-4, 0, -4), math3d.V3(4, 0, -4), math3d.V3(0, 3, 2)}
	col := RGB(200, 120, 40)
	for b.Loop() {
		c.drawTriangle(tri, cam, col)
	}
}

func BenchmarkRender(b *testing.B) {
	const w, h = 160, 48
	c := NewCanvas(w, h)
	c.DrawScene(scene.Demo(), benchCamera(w, h))
	for b.Loop() {
		_ = c.Render(io.Discard)
	}
}

func BenchmarkWorldToScreen(b *testing.B) {
	cam := benchCamera(160, 48)
	p := math3d.V3(-6, 3.6, 0.9)
	for b.Loop() {
		_, _, _, _ = cam.WorldToScreen(p, 160, 48)
	}
}
