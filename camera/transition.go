package camera

import (
	"math"

	"github.com/ansipixels/twincam/math3d"
)

// Pose is a camera position plus look-at target.
type Pose struct {
	Position math3d.Vec3
	Target   math3d.Vec3
}

// EaseFunc maps linear progress in [0, 1] to eased progress in [0, 1].
type EaseFunc func(t float64) float64

// Linear applies no easing.
func Linear(t float64) float64 { return t }

// EaseInOutCubic accelerates then decelerates; the default for flights.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutQuad is a softer in-out curve.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Transition is one in-flight eased interpolation between two poses.
type Transition struct {
	From, To Pose
	Duration float64 // seconds
	Label    string
	elapsed  float64
	ease     EaseFunc
}

func newTransition(from, to Pose, duration float64, ease EaseFunc, label string) *Transition {
	if ease == nil {
		ease = EaseInOutCubic
	}
	return &Transition{From: from, To: to, Duration: duration, Label: label, ease: ease}
}

// Advance moves the transition forward by dt seconds and returns the
// interpolated pose and whether the destination has been reached.
func (t *Transition) Advance(dt float64) (Pose, bool) {
	t.elapsed += dt
	if t.Duration <= 0 || t.elapsed >= t.Duration {
		return t.To, true
	}
	k := t.ease(t.elapsed / t.Duration)
	return Pose{
		Position: t.From.Position.Lerp(t.To.Position, k),
		Target:   t.From.Target.Lerp(t.To.Target, k),
	}, false
}

// Progress returns linear progress in [0, 1].
func (t *Transition) Progress() float64 {
	if t.Duration <= 0 {
		return 1
	}
	return math.Min(1, t.elapsed/t.Duration)
}
