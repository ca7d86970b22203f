package navigator

import (
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/viewpoint"
)

// Handle is how host UI commands the camera.
type Handle interface {
	FlyToViewpoint(v viewpoint.Viewpoint)
	FlyToPoint(p math3d.Vec3, label string)
	// CurrentPosition and CurrentTarget are rounded to 2 decimals.
	CurrentPosition() [3]float64
	CurrentTarget() [3]float64
}

type handle struct {
	s *Shell
}

// Handle returns the imperative handle onto the shell's controller.
func (s *Shell) Handle() Handle {
	return handle{s: s}
}

func (h handle) FlyToViewpoint(v viewpoint.Viewpoint) { h.s.controller.FlyToViewpoint(v) }

func (h handle) FlyToPoint(p math3d.Vec3, label string) { h.s.controller.FlyToPoint(p, label) }

func (h handle) CurrentPosition() [3]float64 { return h.s.controller.RoundedPosition() }

func (h handle) CurrentTarget() [3]float64 { return h.s.controller.RoundedTarget() }
