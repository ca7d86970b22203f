// Package interact turns pointer rays into hover highlights and semantic
// clicks on the factory scene.
package interact

import (
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/scene"
	"github.com/rs/zerolog"
)

// Cursor is the pointer affordance the host should show.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

// ClickKind says what a click landed on.
type ClickKind int

const (
	ClickNone ClickKind = iota
	ClickObject
	ClickGround
)

func (k ClickKind) String() string {
	switch k {
	case ClickObject:
		return "object"
	case ClickGround:
		return "ground"
	}
	return "none"
}

// PickResult is a click resolved to a named object and a surface point.
type PickResult struct {
	ObjectName    string
	WorldPosition math3d.Vec3
	NodeID        scene.NodeID
}

// DefaultSkipNames are container names exporters put above the real model.
var DefaultSkipNames = []string{
	"Scene", "scene", "Root", "root", "RootNode", "Root Node",
	"Sketchfab_model", "Sketchfab_Scene", "GLTF_SceneRootNode",
	"OSG_Scene", "Collada visual scene group", "AuxScene",
}

// Layer owns the hover material cache. Entries are keyed by node id and
// must be dropped with Forget when a node leaves the scene.
type Layer struct {
	scene *scene.Scene
	log   zerolog.Logger

	hoverColor     [3]float64
	hoverIntensity float64
	skip           map[string]bool
	groundY        float64
	groundExtent   float64

	originals map[scene.NodeID]*scene.Material
	hovered   scene.NodeID // 0 when nothing is hovered
	cursor    Cursor

	isAlert func(scene.NodeID) bool
	onObj   func(PickResult)
	onEmpty func(math3d.Vec3)
}

// Option configures a Layer.
type Option func(*Layer)

// WithHoverColor sets the emissive colour and intensity of the hover clone.
func WithHoverColor(rgb [3]float64, intensity float64) Option {
	return func(l *Layer) {
		l.hoverColor = rgb
		l.hoverIntensity = intensity
	}
}

// WithSkipNames replaces the generic container names ignored by ResolveName.
func WithSkipNames(names ...string) Option {
	return func(l *Layer) {
		l.skip = make(map[string]bool, len(names))
		for _, n := range names {
			l.skip[n] = true
		}
	}
}

// WithGround places the invisible click plane at y = height, extending
// extent units from the origin on x and z.
func WithGround(height, extent float64) Option {
	return func(l *Layer) {
		l.groundY = height
		l.groundExtent = extent
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Layer) { l.log = log }
}

// New creates a layer over s.
func New(s *scene.Scene, opts ...Option) *Layer {
	l := &Layer{
		scene:          s,
		log:            zerolog.Nop(),
		hoverColor:     [3]float64{0.25, 0.55, 1.0},
		hoverIntensity: 0.6,
		groundExtent:   500,
		originals:      make(map[scene.NodeID]*scene.Material),
	}
	WithSkipNames(DefaultSkipNames...)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetAlertFilter installs the predicate for nodes owned by the alert
// animator; hover leaves those alone.
func (l *Layer) SetAlertFilter(fn func(scene.NodeID) bool) {
	l.isAlert = fn
}

// OnObjectClicked registers the object click handler.
func (l *Layer) OnObjectClicked(fn func(PickResult)) {
	l.onObj = fn
}

// OnEmptySpaceClicked registers the ground click handler.
func (l *Layer) OnEmptySpaceClicked(fn func(math3d.Vec3)) {
	l.onEmpty = fn
}

func (l *Layer) alert(n *scene.Node) bool {
	return l.isAlert != nil && l.isAlert(n.ID)
}

// HoverEnter highlights n with an emissive clone of its original material.
// The original is cached once and survives repeated enters.
func (l *Layer) HoverEnter(n *scene.Node) {
	if n == nil || n.Material == nil || l.alert(n) {
		return
	}
	orig, ok := l.originals[n.ID]
	if !ok {
		orig = n.Material
		l.originals[n.ID] = orig
	}
	hl := orig.Clone()
	hl.Emissive = l.hoverColor
	hl.EmissiveIntensity = l.hoverIntensity
	n.Material = hl
	l.cursor = CursorPointer
	l.hovered = n.ID
}

// HoverExit restores n. The hovered record is only cleared when it still
// points at n, so a late exit cannot clobber a newer hover.
func (l *Layer) HoverExit(n *scene.Node) {
	if n == nil || l.alert(n) {
		return
	}
	l.restore(n)
	l.cursor = CursorDefault
	if l.hovered == n.ID {
		l.hovered = 0
	}
}

func (l *Layer) restore(n *scene.Node) {
	if orig, ok := l.originals[n.ID]; ok {
		n.Material = orig
		delete(l.originals, n.ID)
	}
}

// Release restores n's original material ahead of another owner taking
// over its appearance.
func (l *Layer) Release(n *scene.Node) {
	if n == nil {
		return
	}
	l.restore(n)
	if l.hovered == n.ID {
		l.hovered = 0
		l.cursor = CursorDefault
	}
}

// Forget drops cache state for nodes that no longer exist.
func (l *Layer) Forget(ids ...scene.NodeID) {
	for _, id := range ids {
		delete(l.originals, id)
		if l.hovered == id {
			l.hovered = 0
			l.cursor = CursorDefault
		}
	}
}

// Reset restores every cached original.
func (l *Layer) Reset() {
	for id, orig := range l.originals {
		if n, ok := l.scene.Node(id); ok {
			n.Material = orig
		}
	}
	clear(l.originals)
	l.hovered = 0
	l.cursor = CursorDefault
}

// Hovered returns the currently hovered node id, 0 for none.
func (l *Layer) Hovered() scene.NodeID { return l.hovered }

// Cursor returns the pointer affordance.
func (l *Layer) Cursor() Cursor { return l.cursor }

// Cached reports whether an original material is held for id.
func (l *Layer) Cached(id scene.NodeID) bool {
	_, ok := l.originals[id]
	return ok
}

// PointerMove re-picks under the pointer and moves the hover.
func (l *Layer) PointerMove(r math3d.Ray) {
	hit, ok := l.scene.Pick(r)
	var next scene.NodeID
	if ok {
		next = hit.Node.ID
	}
	if next == l.hovered {
		return
	}
	if l.hovered != 0 {
		if prev, found := l.scene.Node(l.hovered); found {
			l.HoverExit(prev)
		} else {
			l.Forget(l.hovered)
		}
	}
	if ok {
		l.HoverEnter(hit.Node)
	}
}

// Click resolves a click ray: geometry first, then the ground plane.
func (l *Layer) Click(r math3d.Ray) ClickKind {
	if hit, ok := l.scene.Pick(r); ok {
		res := PickResult{
			ObjectName:    l.ResolveName(hit.Node),
			WorldPosition: hit.Point,
			NodeID:        hit.Node.ID,
		}
		l.log.Debug().Str("object", res.ObjectName).Str("node", hit.Node.Label()).
			Floats64("at", rounded(res.WorldPosition)).Msg("object clicked")
		if l.onObj != nil {
			l.onObj(res)
		}
		return ClickObject
	}
	t, ok := r.IntersectPlaneY(l.groundY)
	if !ok {
		return ClickNone
	}
	p := r.At(t)
	if p.X < -l.groundExtent || p.X > l.groundExtent || p.Z < -l.groundExtent || p.Z > l.groundExtent {
		return ClickNone
	}
	p.Y = l.groundY
	l.log.Debug().Floats64("at", rounded(p)).Msg("ground clicked")
	if l.onEmpty != nil {
		l.onEmpty(p)
	}
	return ClickGround
}

// ResolveName walks the ancestors of n and returns the last (outermost)
// name that is longer than one character and not a generic container.
// It falls back to n's own name, then to a synthesized id.
func (l *Layer) ResolveName(n *scene.Node) string {
	name := ""
	// The scene root carries the file name and never names an object.
	for a := n.Parent; a != nil && a.Parent != nil; a = a.Parent {
		if len(a.Name) > 1 && !l.skip[a.Name] {
			name = a.Name
		}
	}
	if name != "" {
		return name
	}
	return n.Label()
}

func rounded(v math3d.Vec3) []float64 {
	a := v.Round(2).Array()
	return a[:]
}
