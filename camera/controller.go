// Package camera implements the camera controller: eased flights between
// catalog viewpoints and picked points, active-viewpoint bookkeeping and
// damped free-look.
package camera

import (
	"fmt"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/rs/zerolog"
)

// minPointHeight keeps fly-to-point destinations above the picked surface.
const minPointHeight = 1.5

// fallbackDirection is the view direction used when position == target.
var fallbackDirection = math3d.V3(0, -0.5, -1).Normalize()

// Controller exclusively owns the camera state. Every operation is a silent
// no-op until a render camera is attached.
type Controller struct {
	catalog *viewpoint.Catalog
	cam     *render.Camera
	log     zerolog.Logger

	pose        Pose
	activeID    string // "" is the free camera
	cursor      int
	initialized bool

	flight        *Transition
	duration      float64
	pointDuration float64
	pointDistance float64
	ease          EaseFunc

	fps   int
	orbit orbit

	readout     [3]float64
	haveReadout bool

	activeObs     observers[string]
	moveObs       observers[[3]float64]
	transitionObs observers[string]
	arriveObs     observers[string]
}

// New creates a detached controller over catalog.
func New(catalog *viewpoint.Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog:       catalog,
		log:           zerolog.Nop(),
		duration:      DefaultDuration,
		pointDuration: DefaultPointDuration,
		pointDistance: DefaultPointDistance,
		ease:          EaseInOutCubic,
		fps:           DefaultFPS,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.orbit = newOrbit(c.fps)
	return c
}

// Attach binds the render camera. The first attach places the camera at
// initialID (falling back to the first catalog entry) with a hard cut; later
// attaches only re-bind and push the current pose.
func (c *Controller) Attach(cam *render.Camera, initialID string) {
	if cam == nil {
		return
	}
	c.cam = cam
	if c.initialized {
		c.apply()
		return
	}
	c.initialized = true

	if c.catalog.Len() == 0 {
		c.pose = Pose{Position: cam.Position, Target: cam.Target}
		c.log.Warn().Msg("empty viewpoint catalog, keeping camera pose")
		c.apply()
		return
	}
	i, ok := c.catalog.Index(initialID)
	if !ok {
		if initialID != "" {
			c.log.Debug().Str("id", initialID).Msg("initial viewpoint not found, using first entry")
		}
		i = 0
	}
	v, _ := c.catalog.At(i)
	c.pose = Pose{Position: v.Position, Target: v.Target}
	c.cursor = i
	c.setActive(v.ID)
	c.apply()
}

// Detach makes the controller inert and drops any flight in progress.
func (c *Controller) Detach() {
	c.cam = nil
	c.flight = nil
	c.orbit.stop()
}

// Attached reports whether a render camera is bound.
func (c *Controller) Attached() bool {
	return c.cam != nil
}

// SetCatalog swaps the catalog. The cursor follows the active viewpoint when
// the new catalog still has it; otherwise the camera becomes free and the
// cursor restarts at 0.
func (c *Controller) SetCatalog(catalog *viewpoint.Catalog) {
	c.catalog = catalog
	if i, ok := catalog.Index(c.activeID); ok {
		c.cursor = i
		return
	}
	c.cursor = 0
	c.setActive("")
}

// Catalog returns the current catalog.
func (c *Controller) Catalog() *viewpoint.Catalog {
	return c.catalog
}

// FlyToViewpoint starts a flight to v and marks it active.
func (c *Controller) FlyToViewpoint(v viewpoint.Viewpoint) {
	if c.cam == nil {
		return
	}
	if i, ok := c.catalog.Index(v.ID); ok {
		c.cursor = i
	}
	c.setActive(v.ID)
	c.start(Pose{Position: v.Position, Target: v.Target}, c.duration, v.Name)
	c.log.Debug().Str("id", v.ID).Int("cursor", c.cursor).Msg("fly to viewpoint")
}

// FlyToIndex flies to the catalog entry at i; out of range is ignored.
func (c *Controller) FlyToIndex(i int) {
	v, ok := c.catalog.At(i)
	if !ok {
		return
	}
	c.FlyToViewpoint(v)
}

// Next flies to the entry after the cursor, wrapping around.
func (c *Controller) Next() {
	c.step(1)
}

// Prev flies to the entry before the cursor, wrapping around.
func (c *Controller) Prev() {
	c.step(-1)
}

// Home flies to the first catalog entry.
func (c *Controller) Home() {
	c.FlyToIndex(0)
}

func (c *Controller) step(delta int) {
	i, ok := c.catalog.Wrap(c.cursor + delta)
	if !ok {
		return
	}
	c.FlyToIndex(i)
}

// FlyToPoint flies so that p becomes the look-at target. The camera keeps
// its current viewing direction and backs off pointDistance along it,
// staying at least minPointHeight above p. The active viewpoint is cleared;
// the cursor is kept so cyclic navigation resumes where it left off.
func (c *Controller) FlyToPoint(p math3d.Vec3, label string) {
	if c.cam == nil {
		return
	}
	dir := c.pose.Target.Sub(c.pose.Position).Normalize()
	if dir.LenSq() == 0 {
		dir = fallbackDirection
	}
	dest := p.Sub(dir.Scale(c.pointDistance))
	if dest.Y < p.Y+minPointHeight {
		dest.Y = p.Y + minPointHeight
	}
	if label == "" {
		label = fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
	}
	c.setActive("")
	c.start(Pose{Position: dest, Target: p}, c.pointDuration, label)
	c.log.Debug().Str("label", label).Msg("fly to point")
}

// start replaces any flight in progress; the new one leaves from the live,
// possibly mid-flight, pose.
func (c *Controller) start(to Pose, duration float64, label string) {
	c.orbit.stop()
	c.flight = newTransition(c.pose, to, duration, c.ease, label)
	c.transitionObs.emit(label)
}

// Orbit adds a free-look impulse in radians; ignored during flights.
func (c *Controller) Orbit(dYaw, dPitch float64) {
	if c.cam == nil || c.flight != nil {
		return
	}
	c.orbit.yaw.velocity += dYaw
	c.orbit.pitch.velocity += dPitch
}

// Dolly adds a relative zoom impulse (negative moves closer).
func (c *Controller) Dolly(delta float64) {
	if c.cam == nil || c.flight != nil {
		return
	}
	c.orbit.dolly.velocity += delta
}

// Update advances the controller by dt seconds; call once per frame.
func (c *Controller) Update(dt float64) {
	if c.cam == nil {
		return
	}
	switch {
	case c.flight != nil:
		pose, done := c.flight.Advance(dt)
		c.pose = pose
		if done {
			c.flight = nil
			c.transitionObs.emit("")
			c.arriveObs.emit(c.activeID)
		}
	case c.orbit.moving():
		c.pose.Position = c.orbit.apply(c.pose)
	}
	c.apply()
}

// apply pushes the pose to the render camera and publishes the read-out
// when its rounded value changed.
func (c *Controller) apply() {
	if c.cam == nil {
		return
	}
	c.cam.SetPose(c.pose.Position, c.pose.Target)
	r := c.RoundedPosition()
	if c.haveReadout && r == c.readout {
		return
	}
	c.readout, c.haveReadout = r, true
	c.moveObs.emit(r)
}

func (c *Controller) setActive(id string) {
	if id == c.activeID {
		return
	}
	c.activeID = id
	c.activeObs.emit(id)
}

// Position returns the live camera position at full precision.
func (c *Controller) Position() math3d.Vec3 { return c.pose.Position }

// Target returns the live look-at target at full precision.
func (c *Controller) Target() math3d.Vec3 { return c.pose.Target }

// RoundedPosition returns the position rounded to 2 decimals for display.
func (c *Controller) RoundedPosition() [3]float64 { return c.pose.Position.Round(2).Array() }

// RoundedTarget returns the target rounded to 2 decimals for display.
func (c *Controller) RoundedTarget() [3]float64 { return c.pose.Target.Round(2).Array() }

// ActiveID returns the active viewpoint id, "" for the free camera.
func (c *Controller) ActiveID() string { return c.activeID }

// Cursor returns the catalog index used for relative navigation.
func (c *Controller) Cursor() int { return c.cursor }

// InFlight reports whether a transition is in progress.
func (c *Controller) InFlight() bool { return c.flight != nil }

// Flight returns the transition in progress, or nil.
func (c *Controller) Flight() *Transition { return c.flight }

// OnActiveChange registers fn for active viewpoint changes ("" = free).
func (c *Controller) OnActiveChange(fn func(id string)) (cancel func()) {
	return c.activeObs.add(fn)
}

// OnMove registers fn for rounded position read-out changes.
func (c *Controller) OnMove(fn func(pos [3]float64)) (cancel func()) {
	return c.moveObs.add(fn)
}

// OnTransition registers fn for flight labels; "" means the flight ended.
// It fires after the active id has been updated for the new flight.
func (c *Controller) OnTransition(fn func(label string)) (cancel func()) {
	return c.transitionObs.add(fn)
}

// OnArrive registers fn for completed flights with the active id.
func (c *Controller) OnArrive(fn func(id string)) (cancel func()) {
	return c.arriveObs.add(fn)
}
