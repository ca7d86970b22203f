// Package input maps keyboard events onto camera and tour operations.
package input

import (
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/rs/zerolog"
)

// Key names follow the DOM KeyboardEvent.key convention.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeySpace      = " "
	KeyCapture    = "c"
)

// KeyEvent is one key press.
type KeyEvent struct {
	Key string
}

// Result tells the host what happened to an event.
type Result struct {
	Handled bool
	// PreventDefault asks the host to suppress its own handling of the key
	// (scrolling on space).
	PreventDefault bool
}

// Camera is the slice of the camera controller the router drives.
type Camera interface {
	Catalog() *viewpoint.Catalog
	FlyToIndex(i int)
	FlyToViewpoint(v viewpoint.Viewpoint)
	Next()
	Prev()
	Home()
}

// Tour is the pause toggle of the auto-tour.
type Tour interface {
	TogglePause() bool
}

// FocusFunc reports whether a text field currently owns the keyboard.
type FocusFunc func() bool

// Router is the keyboard state machine. It holds interfaces, not copies, so
// every event sees the live catalog and controller.
type Router struct {
	cam     Camera
	tour    Tour
	focus   FocusFunc
	capture func()
	log     zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithFocus installs the text-focus gate.
func WithFocus(f FocusFunc) Option {
	return func(r *Router) { r.focus = f }
}

// WithCapture enables the developer capture key.
func WithCapture(fn func()) Option {
	return func(r *Router) { r.capture = fn }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// NewRouter creates a router over cam and tour (tour may be nil).
func NewRouter(cam Camera, tour Tour, opts ...Option) *Router {
	r := &Router{cam: cam, tour: tour, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HandleKey dispatches one key press.
func (r *Router) HandleKey(ev KeyEvent) Result {
	if r.focus != nil && r.focus() {
		return Result{}
	}
	switch k := ev.Key; {
	case len(k) == 1 && k[0] >= '1' && k[0] <= '9':
		i := int(k[0] - '1')
		if i >= r.cam.Catalog().Len() {
			r.log.Debug().Str("key", k).Msg("no viewpoint for digit")
			return Result{}
		}
		r.cam.FlyToIndex(i)
	case k == KeyArrowRight:
		r.cam.Next()
	case k == KeyArrowLeft:
		r.cam.Prev()
	case k == KeySpace:
		if r.tour != nil {
			r.tour.TogglePause()
		}
		return Result{Handled: true, PreventDefault: true}
	case k == "r" || k == "R":
		r.cam.Home()
	case k == KeyCapture && r.capture != nil:
		r.capture()
	default:
		return Result{}
	}
	return Result{Handled: true}
}

// FlyToViewpointID flies to the entry with id in the catalog current at
// call time. Unknown ids are ignored.
func (r *Router) FlyToViewpointID(id string) {
	v, ok := r.cam.Catalog().Get(id)
	if !ok {
		r.log.Debug().Str("id", id).Msg("unknown viewpoint")
		return
	}
	r.cam.FlyToViewpoint(v)
}
