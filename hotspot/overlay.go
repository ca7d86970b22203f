// Package hotspot places clickable markers at viewpoint hotspot positions.
package hotspot

import (
	"math"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/viewpoint"
)

// PulsePeriod is the ring animation period in seconds.
const PulsePeriod = 1.5

// HitRadius is how close (in cells) a click must land to hit a marker.
const HitRadius = 1.5

// Marker is one hotspot of the current catalog.
type Marker struct {
	ID       string
	Name     string
	Icon     string
	Position math3d.Vec3
	Active   bool // dot filled
	Hovered  bool // label visible
}

// ScreenMarker is a marker projected into cell coordinates.
type ScreenMarker struct {
	Marker
	X, Y  int
	Depth float64
}

// Overlay tracks hover and active state for the markers and forwards
// clicks to fly.
type Overlay struct {
	catalog *viewpoint.Catalog
	fly     func(id string)
	active  string
	hovered string
}

// New creates an overlay over catalog.
func New(catalog *viewpoint.Catalog, fly func(id string)) *Overlay {
	return &Overlay{catalog: catalog, fly: fly}
}

// SetCatalog swaps the catalog and drops a hover on a vanished marker.
func (o *Overlay) SetCatalog(c *viewpoint.Catalog) {
	o.catalog = c
	if v, ok := c.Get(o.hovered); !ok || !v.HasHotspot() {
		o.hovered = ""
	}
}

// SetActive mirrors the controller's active viewpoint.
func (o *Overlay) SetActive(id string) { o.active = id }

// Active returns the mirrored active id.
func (o *Overlay) Active() string { return o.active }

// Hover marks id as hovered.
func (o *Overlay) Hover(id string) {
	if v, ok := o.catalog.Get(id); ok && v.HasHotspot() {
		o.hovered = id
	}
}

// Unhover clears the hover if it is still on id.
func (o *Overlay) Unhover(id string) {
	if o.hovered == id {
		o.hovered = ""
	}
}

// Hovered returns the hovered marker id.
func (o *Overlay) Hovered() string { return o.hovered }

// Click flies to the marker's viewpoint.
func (o *Overlay) Click(id string) bool {
	v, ok := o.catalog.Get(id)
	if !ok || !v.HasHotspot() || o.fly == nil {
		return false
	}
	o.fly(id)
	return true
}

// Markers returns one marker per viewpoint with a hotspot, in catalog order.
func (o *Overlay) Markers() []Marker {
	var out []Marker
	for _, v := range o.catalog.All() {
		if !v.HasHotspot() {
			continue
		}
		out = append(out, Marker{
			ID:       v.ID,
			Name:     v.Name,
			Icon:     v.Icon,
			Position: *v.Hotspot,
			Active:   v.ID == o.active,
			Hovered:  v.ID == o.hovered,
		})
	}
	return out
}

// Label returns the text shown next to m: its name while hovered, else "".
func Label(m Marker) string {
	if !m.Hovered {
		return ""
	}
	return m.Name
}

// Pulse returns the ring scale in [1, 2) and opacity in (0, 1] at time t.
// The ring expands and fades, then restarts.
func Pulse(t float64) (scale, alpha float64) {
	phase := math.Mod(t, PulsePeriod) / PulsePeriod
	if phase < 0 {
		phase++
	}
	return 1 + phase, 1 - phase
}

// Project returns the visible markers in screen cells.
func (o *Overlay) Project(cam *render.Camera, width, height int) []ScreenMarker {
	var out []ScreenMarker
	for _, m := range o.Markers() {
		x, y, depth, ok := cam.WorldToScreen(m.Position, width, height)
		if !ok {
			continue
		}
		out = append(out, ScreenMarker{Marker: m, X: int(math.Round(x)), Y: int(math.Round(y)), Depth: depth})
	}
	return out
}

// HitTest returns the nearest marker within HitRadius of the cell (x, y).
// Terminal cells are about twice as tall as wide, so rows count double.
func HitTest(markers []ScreenMarker, x, y int) (string, bool) {
	best, bestDist := "", math.Inf(1)
	p := math3d.V2(float64(x), float64(2*y))
	for _, m := range markers {
		d := p.Distance(math3d.V2(float64(m.X), float64(2*m.Y)))
		if d <= HitRadius && d < bestDist {
			best, bestDist = m.ID, d
		}
	}
	return best, best != ""
}
