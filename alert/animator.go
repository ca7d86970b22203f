// Package alert strobes the meshes of one alert key.
package alert

import (
	"math"
	"strings"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/scene"
	"github.com/rs/zerolog"
)

// State is the animator state machine.
type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// DefaultFrequency is the strobe rate in Hz.
const DefaultFrequency = 3.0

type target struct {
	node     *scene.Node
	original *scene.Material
	clone    *scene.Material
}

// Animator owns the alert material cache: one armed key at a time, always
// fully restored before the next one is installed.
type Animator struct {
	scene *scene.Scene
	table Table
	log   zerolog.Logger

	frequency float64
	color     [3]float64
	intensity float64
	dim       [3]float64

	state   State
	key     string
	targets map[scene.NodeID]*target
	center  math3d.Vec3

	onResolved func(math3d.Vec3)
	beforeArm  func([]*scene.Node)
}

// Option configures an Animator.
type Option func(*Animator)

// WithFrequency sets the strobe rate in Hz.
func WithFrequency(hz float64) Option {
	return func(a *Animator) {
		if hz > 0 {
			a.frequency = hz
		}
	}
}

// WithColor sets the emissive colour and intensity of the high phase.
func WithColor(rgb [3]float64, intensity float64) Option {
	return func(a *Animator) {
		a.color = rgb
		a.intensity = intensity
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Animator) { a.log = l }
}

// New creates an idle animator.
func New(s *scene.Scene, table Table, opts ...Option) *Animator {
	a := &Animator{
		scene:     s,
		table:     table,
		log:       zerolog.Nop(),
		frequency: DefaultFrequency,
		color:     [3]float64{1, 0.1, 0.05},
		intensity: 1.5,
		dim:       [3]float64{0.2, 0, 0},
		targets:   make(map[scene.NodeID]*target),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnResolved registers fn, fired once per armed target with the centre of
// the union bounding box.
func (a *Animator) OnResolved(fn func(math3d.Vec3)) {
	a.onResolved = fn
}

// BeforeArm registers fn, called with the matched nodes before their
// materials are cloned, so other owners can hand back their overrides.
func (a *Animator) BeforeArm(fn func([]*scene.Node)) {
	a.beforeArm = fn
}

// SetTable swaps the key table. The armed target, if any, is cleared.
func (a *Animator) SetTable(t Table) {
	a.Clear()
	a.table = t
}

// SetKey arms key, restoring the previous target first. The empty key
// clears. Unknown keys and keys without geometry leave the animator idle.
func (a *Animator) SetKey(key string) {
	if strings.EqualFold(key, a.key) {
		return
	}
	a.Clear()
	a.key = key
	if key == "" {
		return
	}
	names, ok := a.table.Lookup(key)
	if !ok {
		a.log.Warn().Str("key", key).Msg("unknown alert key")
		return
	}
	nodes := a.scene.FindMeshes(names...)
	if len(nodes) == 0 {
		a.log.Warn().Str("key", key).Strs("names", names).Msg("alert key matches no geometry")
		return
	}
	if a.beforeArm != nil {
		a.beforeArm(nodes)
	}
	box := math3d.EmptyAABB()
	for _, n := range nodes {
		t := &target{node: n, original: n.Material, clone: n.Material.Clone()}
		n.Material = t.clone
		a.targets[n.ID] = t
		box = box.Union(n.Bounds)
	}
	a.state = Armed
	a.center = box.Center()
	a.log.Info().Str("key", key).Int("meshes", len(nodes)).Msg("alert armed")
	if a.onResolved != nil {
		a.onResolved(a.center)
	}
}

// Tick drives the strobe; elapsed is total seconds since an arbitrary
// origin. The output depends on elapsed alone.
func (a *Animator) Tick(elapsed float64) {
	if a.state != Armed {
		return
	}
	on := High(a.frequency, elapsed)
	for _, t := range a.targets {
		if on {
			t.clone.Emissive = a.color
			t.clone.EmissiveIntensity = a.intensity
		} else {
			t.clone.Emissive = a.dim
			t.clone.EmissiveIntensity = 0
		}
	}
}

// High reports the square wave sin(2π·f·t) > 0.
func High(frequency, t float64) bool {
	return math.Sin(2*math.Pi*frequency*t) > 0
}

// Clear restores every original material. Safe to call at any time.
func (a *Animator) Clear() {
	for id, t := range a.targets {
		// Only put the original back if our clone is still installed.
		if t.node.Material == t.clone {
			t.node.Material = t.original
		}
		delete(a.targets, id)
	}
	if a.state == Armed {
		a.log.Debug().Str("key", a.key).Msg("alert cleared")
	}
	a.state = Idle
	a.key = ""
	a.center = math3d.Vec3{}
}

// Forget drops targets for nodes removed from the scene.
func (a *Animator) Forget(ids ...scene.NodeID) {
	for _, id := range ids {
		delete(a.targets, id)
	}
	if a.state == Armed && len(a.targets) == 0 {
		a.state = Idle
		a.key = ""
	}
}

// IsTarget reports whether id belongs to the armed target.
func (a *Animator) IsTarget(id scene.NodeID) bool {
	_, ok := a.targets[id]
	return ok
}

// State returns the state machine position.
func (a *Animator) State() State { return a.state }

// Key returns the requested key. It stays set when the key did not resolve.
func (a *Animator) Key() string { return a.key }

// Center returns the representative point of the armed target.
func (a *Animator) Center() (math3d.Vec3, bool) {
	return a.center, a.state == Armed
}
