package camera

import "github.com/rs/zerolog"

// Defaults for flights.
const (
	DefaultDuration      = 1.6 // seconds, discrete navigation
	DefaultPointDuration = 1.2 // seconds, fly-to-point
	DefaultPointDistance = 6.0 // pull-back from a picked point
	DefaultFPS           = 60
)

// Option configures a Controller.
type Option func(*Controller)

// WithDuration sets the viewpoint flight duration in seconds.
func WithDuration(seconds float64) Option {
	return func(c *Controller) { c.duration = seconds }
}

// WithPointDuration sets the fly-to-point duration in seconds.
func WithPointDuration(seconds float64) Option {
	return func(c *Controller) { c.pointDuration = seconds }
}

// WithPointDistance sets how far the camera stays back from a picked point.
func WithPointDistance(d float64) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pointDistance = d
		}
	}
}

// WithEasing replaces the flight easing curve.
func WithEasing(ease EaseFunc) Option {
	return func(c *Controller) {
		if ease != nil {
			c.ease = ease
		}
	}
}

// WithFPS sets the frame rate the orbit springs are tuned for.
func WithFPS(fps int) Option {
	return func(c *Controller) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}
