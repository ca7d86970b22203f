package camera

import (
	"math"

	"github.com/ansipixels/twincam/math3d"
	"github.com/charmbracelet/harmonica"
)

// orbitAxis tracks the velocity of one free-look axis with spring decay.
type orbitAxis struct {
	velocity float64
	spring   harmonica.Spring
	accel    float64 // internal spring velocity (for animating velocity toward 0)
}

func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// step returns the velocity to apply this frame and decays it toward 0.
func (a *orbitAxis) step() float64 {
	v := a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
	if math.Abs(a.velocity) < 1e-6 && math.Abs(a.accel) < 1e-6 {
		a.velocity, a.accel = 0, 0
	}
	return v
}

func (a *orbitAxis) stop() {
	a.velocity, a.accel = 0, 0
}

// orbit is the damped free-look state: yaw and pitch around the target
// plus a relative dolly.
type orbit struct {
	yaw, pitch, dolly orbitAxis
	fps               int
}

func newOrbit(fps int) orbit {
	return orbit{yaw: newOrbitAxis(fps), pitch: newOrbitAxis(fps), dolly: newOrbitAxis(fps), fps: fps}
}

func (o *orbit) stop() {
	o.yaw.stop()
	o.pitch.stop()
	o.dolly.stop()
}

func (o *orbit) moving() bool {
	return o.yaw.velocity != 0 || o.pitch.velocity != 0 || o.dolly.velocity != 0
}

const (
	minPolar    = 0.05
	maxPolar    = math.Pi/2 - 0.02 // stay above the floor
	minDistance = 1.5
	maxDistance = 80
)

// apply advances the springs one frame and returns the new camera position
// orbiting around target.
func (o *orbit) apply(p Pose) math3d.Vec3 {
	dYaw := o.yaw.step()
	dPitch := o.pitch.step()
	dDolly := o.dolly.step()

	offset := p.Position.Sub(p.Target)
	r := offset.Len()
	if r == 0 {
		return p.Position
	}
	theta := math.Atan2(offset.X, offset.Z) + dYaw
	phi := math.Acos(math.Max(-1, math.Min(1, offset.Y/r))) - dPitch
	phi = math.Max(minPolar, math.Min(maxPolar, phi))
	r = math.Max(minDistance, math.Min(maxDistance, r*(1+dDolly)))

	return p.Target.Add(math3d.V3(
		r*math.Sin(phi)*math.Sin(theta),
		r*math.Cos(phi),
		r*math.Sin(phi)*math.Cos(theta),
	))
}
