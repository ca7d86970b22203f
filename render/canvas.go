package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/scene"
)

// Color is a 24-bit terminal colour.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// FromUnit converts 0-1 float channels.
func FromUnit(c [3]float64) Color {
	return Color{
		uint8(math.Round(min(1, max(0, c[0])) * 255)),
		uint8(math.Round(min(1, max(0, c[1])) * 255)),
		uint8(math.Round(min(1, max(0, c[2])) * 255)),
	}
}

// Cell is one terminal character.
type Cell struct {
	Ch     rune
	FG, BG Color
	HasBG  bool
	depth  float64
}

// Canvas is a grid of terminal cells with a depth buffer for geometry.
type Canvas struct {
	Width, Height int
	Background    Color
	cells         []Cell
}

// NewCanvas creates a canvas of w x h cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Background: RGB(20, 22, 28)}
	c.cells = make([]Cell, w*h)
	c.Clear()
	return c
}

// Resize reallocates the canvas.
func (c *Canvas) Resize(w, h int) {
	c.Width, c.Height = w, h
	c.cells = make([]Cell, w*h)
	c.Clear()
}

// Clear resets every cell to the background.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Ch: ' ', BG: c.Background, HasBG: true, depth: math.Inf(1)}
	}
}

// At returns the cell at (x, y).
func (c *Canvas) At(x, y int) Cell {
	return c.cells[y*c.Width+x]
}

// Set writes a glyph regardless of depth.
func (c *Canvas) Set(x, y int, ch rune, fg Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	cell := &c.cells[y*c.Width+x]
	cell.Ch = ch
	cell.FG = fg
}

// Text writes a string starting at (x, y), clipped to the canvas.
func (c *Canvas) Text(x, y int, s string, fg Color) {
	for _, r := range s {
		c.Set(x, y, r, fg)
		x++
	}
}

// Fill paints a background cell if it is nearer than what is there.
func (c *Canvas) fill(x, y int, depth float64, col Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	cell := &c.cells[y*c.Width+x]
	if depth >= cell.depth {
		return
	}
	cell.depth = depth
	cell.BG = col
	cell.Ch = ' '
}

// lightDir is a fixed key light from above and slightly in front.
var lightDir = math3d.V3(0.4, 1, 0.6).Normalize()

// DrawScene rasterizes every mesh with flat per-triangle shading.
// Each node's current material is used, so highlight swaps show up.
func (c *Canvas) DrawScene(s *scene.Scene, cam *Camera) {
	for _, m := range s.Meshes() {
		for _, t := range m.Triangles {
			normal := t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
			diffuse := 0.35 + 0.65*math.Abs(normal.Dot(lightDir))
			c.drawTriangle(t, cam, FromUnit(m.Material.Shade(diffuse)))
		}
	}
}

func (c *Canvas) drawTriangle(t scene.Triangle, cam *Camera, col Color) {
	vp := cam.ViewProjectionMatrix()
	var sx, sy, sz [3]float64
	for i, p := range t {
		clip := vp.MulVec4(math3d.V4FromV3(p, 1))
		if clip.W <= cam.Near {
			// Partially behind the camera; skip rather than clip.
			return
		}
		ndc := clip.PerspectiveDivide()
		sx[i] = (ndc.X + 1) * 0.5 * float64(c.Width)
		sy[i] = (1 - ndc.Y) * 0.5 * float64(c.Height)
		sz[i] = ndc.Z
	}
	minX := max(0, int(math.Floor(min(sx[0], sx[1], sx[2]))))
	maxX := min(c.Width-1, int(math.Ceil(max(sx[0], sx[1], sx[2]))))
	minY := max(0, int(math.Floor(min(sy[0], sy[1], sy[2]))))
	maxY := min(c.Height-1, int(math.Ceil(max(sy[0], sy[1], sy[2]))))

	area := (sx[1]-sx[0])*(sy[2]-sy[0]) - (sx[2]-sx[0])*(sy[1]-sy[0])
	if math.Abs(area) < 1e-9 {
		return
	}
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := ((sx[1]-px)*(sy[2]-py) - (sx[2]-px)*(sy[1]-py)) / area
			w1 := ((sx[2]-px)*(sy[0]-py) - (sx[0]-px)*(sy[2]-py)) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c.fill(x, y, w0*sz[0]+w1*sz[1]+w2*sz[2], col)
		}
	}
}

// Render writes the canvas as 24-bit ANSI, homing the cursor first.
func (c *Canvas) Render(w io.Writer) error {
	var b strings.Builder
	b.Grow(c.Width * c.Height * 20)
	b.WriteString("\x1b[H")
	for y := range c.Height {
		var lastFG, lastBG Color
		first := true
		for x := range c.Width {
			cell := c.cells[y*c.Width+x]
			if first || cell.FG != lastFG {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", cell.FG.R, cell.FG.G, cell.FG.B)
				lastFG = cell.FG
			}
			if first || cell.BG != lastBG {
				fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", cell.BG.R, cell.BG.G, cell.BG.B)
				lastBG = cell.BG
			}
			first = false
			b.WriteRune(cell.Ch)
		}
		b.WriteString("\x1b[0m")
		if y < c.Height-1 {
			b.WriteString("\r\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
