// Package navigator composes the camera controller, input router, tour,
// interaction layer, alert animator and hotspot overlay behind one shell
// that a host drives with Attach, Tick and input calls.
package navigator

import (
	"time"

	"github.com/ansipixels/twincam/alert"
	"github.com/ansipixels/twincam/camera"
	"github.com/ansipixels/twincam/hotspot"
	"github.com/ansipixels/twincam/input"
	"github.com/ansipixels/twincam/interact"
	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/scene"
	"github.com/ansipixels/twincam/timer"
	"github.com/ansipixels/twincam/tour"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Config is the host-facing configuration surface.
type Config struct {
	InitialViewpoint string
	TourEnabled      bool
	TourInterval     time.Duration
	DevCapture       bool
	FlyToAlerts      bool

	FlightDuration float64 // seconds, 0 for the controller default
	PointDuration  float64
	PointDistance  float64
	AlertFrequency float64 // Hz, 0 for the animator default
	FPS            int
}

// Callbacks are the outbound notifications. Any of them may be nil.
type Callbacks struct {
	OnActiveViewpointChange func(id string) // "" for the free camera
	OnCameraMove            func(pos [3]float64)
	OnObjectClicked         func(p interact.PickResult)
	OnEmptySpaceClicked     func(p math3d.Vec3)
	OnGeometryCount         func(n int)
	OnAlertResolved         func(center math3d.Vec3)
}

// Inspector is the popup opened by an object click.
type Inspector struct {
	Object   string
	Position [3]float64
	NodeID   scene.NodeID
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger shared by all components.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithMeterProvider records metrics on mp instead of the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Shell) { s.meterProvider = mp }
}

// Shell owns one camera controller and everything wired around it.
type Shell struct {
	scene   *scene.Scene
	catalog *viewpoint.Catalog
	cfg     Config
	cb      Callbacks
	log     zerolog.Logger

	meterProvider metric.MeterProvider
	metrics       *metrics

	controller *camera.Controller
	queue      *timer.Queue
	tour       *tour.Scheduler
	router     *input.Router
	layer      *interact.Layer
	alerts     *alert.Animator
	hotspots   *hotspot.Overlay

	scope    scope
	attached bool
	elapsed  float64

	textFocus  bool
	transition string
	inspector  *Inspector
	captured   string
	captures   int
}

// New builds a detached shell. The returned error only reports metric
// instrument creation failures.
func New(sc *scene.Scene, catalog *viewpoint.Catalog, table alert.Table, cfg Config, cb Callbacks, opts ...Option) (*Shell, error) {
	s := &Shell{
		scene:   sc,
		catalog: catalog,
		cfg:     cfg,
		cb:      cb,
		log:     zerolog.Nop(),
		queue:   timer.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	m, err := newMetrics(s.meterProvider)
	if err != nil {
		return nil, err
	}
	s.metrics = m

	camOpts := []camera.Option{camera.WithLogger(s.log.With().Str("component", "camera").Logger())}
	if cfg.FlightDuration > 0 {
		camOpts = append(camOpts, camera.WithDuration(cfg.FlightDuration))
	}
	if cfg.PointDuration > 0 {
		camOpts = append(camOpts, camera.WithPointDuration(cfg.PointDuration))
	}
	if cfg.PointDistance > 0 {
		camOpts = append(camOpts, camera.WithPointDistance(cfg.PointDistance))
	}
	if cfg.FPS > 0 {
		camOpts = append(camOpts, camera.WithFPS(cfg.FPS))
	}
	s.controller = camera.New(catalog, camOpts...)

	s.tour = tour.New(s.queue, s.controller, s.log.With().Str("component", "tour").Logger())
	s.tour.OnTick(s.metrics.tour)

	s.layer = interact.New(sc, interact.WithLogger(s.log.With().Str("component", "interact").Logger()))

	alertOpts := []alert.Option{alert.WithLogger(s.log.With().Str("component", "alert").Logger())}
	if cfg.AlertFrequency > 0 {
		alertOpts = append(alertOpts, alert.WithFrequency(cfg.AlertFrequency))
	}
	s.alerts = alert.New(sc, table, alertOpts...)
	s.alerts.BeforeArm(func(nodes []*scene.Node) {
		for _, n := range nodes {
			s.layer.Release(n)
		}
	})
	s.alerts.OnResolved(s.alertResolved)
	s.layer.SetAlertFilter(s.alerts.IsTarget)

	s.hotspots = hotspot.New(catalog, s.flyToViewpointID)
	return s, nil
}

// Attach binds the render camera and installs the router, tour timer and
// scene listeners. Attaching an attached shell only re-binds the camera.
func (s *Shell) Attach(cam *render.Camera) {
	if cam == nil {
		return
	}
	if s.attached {
		s.controller.Attach(cam, s.cfg.InitialViewpoint)
		return
	}
	s.attached = true
	s.bind()
	s.controller.Attach(cam, s.cfg.InitialViewpoint)
	s.hotspots.SetActive(s.controller.ActiveID())
	n := s.scene.MeshCount()
	s.log.Info().Int("meshes", n).Int("triangles", s.scene.TriangleCount()).
		Int("viewpoints", s.catalog.Len()).Msg("navigator attached")
	if s.cb.OnGeometryCount != nil {
		s.cb.OnGeometryCount(n)
	}
}

// bind registers everything that lives for one catalog configuration.
func (s *Shell) bind() {
	s.scope.add(s.controller.OnActiveChange(func(id string) {
		s.hotspots.SetActive(id)
		if s.cb.OnActiveViewpointChange != nil {
			s.cb.OnActiveViewpointChange(id)
		}
	}))
	s.scope.add(s.controller.OnMove(func(pos [3]float64) {
		if s.cb.OnCameraMove != nil {
			s.cb.OnCameraMove(pos)
		}
	}))
	s.scope.add(s.controller.OnTransition(func(label string) {
		s.transition = label
		if label == "" {
			return
		}
		kind := "point"
		if s.controller.ActiveID() != "" {
			kind = "viewpoint"
		}
		s.metrics.flight(kind)
	}))
	s.scope.add(s.controller.OnArrive(func(id string) {
		s.log.Debug().Str("active", id).Floats64("position", s.position()).Msg("arrived")
	}))

	routerOpts := []input.Option{
		input.WithFocus(func() bool { return s.textFocus }),
		input.WithLogger(s.log.With().Str("component", "input").Logger()),
	}
	if s.cfg.DevCapture {
		routerOpts = append(routerOpts, input.WithCapture(func() { s.Capture() }))
	}
	s.router = input.NewRouter(s.controller, s.tour, routerOpts...)
	s.scope.add(func() { s.router = nil })

	s.tour.Configure(s.cfg.TourEnabled, s.cfg.TourInterval, s.catalog)
	s.scope.add(s.tour.Stop)

	s.layer.OnObjectClicked(s.objectClicked)
	s.layer.OnEmptySpaceClicked(s.emptyClicked)
	s.scope.add(func() {
		s.layer.OnObjectClicked(nil)
		s.layer.OnEmptySpaceClicked(nil)
	})
}

// Detach retires every listener and timer, restores all material
// overrides and makes the controller inert. Safe to call repeatedly.
func (s *Shell) Detach() {
	if !s.attached {
		return
	}
	s.attached = false
	s.scope.close()
	s.controller.Detach()
	s.alerts.Clear()
	s.layer.Reset()
	s.transition = ""
	s.inspector = nil
	s.log.Info().Msg("navigator detached")
}

// Attached reports whether a camera is bound.
func (s *Shell) Attached() bool { return s.attached }

// SetCatalog swaps the catalog. A different catalog is a full
// reconfiguration: the old listeners and tour timer are retired before
// new ones are installed.
func (s *Shell) SetCatalog(c *viewpoint.Catalog) {
	if c == s.catalog {
		return
	}
	s.catalog = c
	s.controller.SetCatalog(c)
	s.hotspots.SetCatalog(c)
	s.hotspots.SetActive(s.controller.ActiveID())
	if s.attached {
		s.scope.close()
		s.bind()
	}
	s.log.Info().Int("viewpoints", c.Len()).Msg("catalog replaced")
}

// Catalog returns the current catalog.
func (s *Shell) Catalog() *viewpoint.Catalog { return s.catalog }

// SetTour reconfigures the auto-tour, replacing its timer.
func (s *Shell) SetTour(enabled bool, interval time.Duration) {
	s.cfg.TourEnabled = enabled
	s.cfg.TourInterval = interval
	if s.attached {
		s.tour.Configure(enabled, interval, s.catalog)
	}
}

// TourEnabled reports the configured tour flag.
func (s *Shell) TourEnabled() bool { return s.tour.Enabled() }

// TourInterval returns the configured tour interval.
func (s *Shell) TourInterval() time.Duration { return s.cfg.TourInterval }

// TourPaused reports the live pause flag.
func (s *Shell) TourPaused() bool { return s.tour.Paused() }

// Timers returns the number of live timers.
func (s *Shell) Timers() int { return s.queue.Len() }

// Tick advances one frame: timers, camera, alert strobe.
func (s *Shell) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt.Seconds()
	s.queue.Advance(dt)
	s.controller.Update(dt.Seconds())
	s.alerts.Tick(s.elapsed)
}

// Elapsed returns the seconds accumulated by Tick.
func (s *Shell) Elapsed() float64 { return s.elapsed }

// HandleKey routes a key press. Nothing is handled while detached.
func (s *Shell) HandleKey(ev input.KeyEvent) input.Result {
	if s.router == nil {
		return input.Result{}
	}
	return s.router.HandleKey(ev)
}

// SetTextFocus tells the shell whether a text field owns the keyboard.
func (s *Shell) SetTextFocus(focused bool) { s.textFocus = focused }

// TextFocus reports the text focus flag.
func (s *Shell) TextFocus() bool { return s.textFocus }

// PointerMove updates the hover highlight.
func (s *Shell) PointerMove(r math3d.Ray) {
	if !s.attached {
		return
	}
	s.layer.PointerMove(r)
}

// Cursor returns the pointer affordance.
func (s *Shell) Cursor() interact.Cursor { return s.layer.Cursor() }

// Click resolves a click on the scene.
func (s *Shell) Click(r math3d.Ray) interact.ClickKind {
	if !s.attached {
		return interact.ClickNone
	}
	kind := s.layer.Click(r)
	s.metrics.pick(kind.String())
	return kind
}

func (s *Shell) objectClicked(p interact.PickResult) {
	s.inspector = &Inspector{Object: p.ObjectName, Position: p.WorldPosition.Round(2).Array(), NodeID: p.NodeID}
	s.controller.FlyToPoint(p.WorldPosition, p.ObjectName)
	if s.cb.OnObjectClicked != nil {
		s.cb.OnObjectClicked(p)
	}
}

func (s *Shell) emptyClicked(p math3d.Vec3) {
	s.inspector = nil
	s.controller.FlyToPoint(p, "")
	if s.cb.OnEmptySpaceClicked != nil {
		s.cb.OnEmptySpaceClicked(p)
	}
}

// Orbit forwards a free-look impulse.
func (s *Shell) Orbit(dYaw, dPitch float64) { s.controller.Orbit(dYaw, dPitch) }

// Dolly forwards a zoom impulse.
func (s *Shell) Dolly(delta float64) { s.controller.Dolly(delta) }

// Hotspots returns the overlay for drawing and hit testing.
func (s *Shell) Hotspots() *hotspot.Overlay { return s.hotspots }

// ClickHotspot flies to the viewpoint behind marker id.
func (s *Shell) ClickHotspot(id string) bool {
	return s.hotspots.Click(id)
}

func (s *Shell) flyToViewpointID(id string) {
	if s.router == nil {
		return
	}
	s.router.FlyToViewpointID(id)
}

// SetAlertKey arms (or with "" clears) the alert strobe.
func (s *Shell) SetAlertKey(key string) { s.alerts.SetKey(key) }

// AlertKey returns the requested alert key.
func (s *Shell) AlertKey() string { return s.alerts.Key() }

// AlertState returns the animator state.
func (s *Shell) AlertState() alert.State { return s.alerts.State() }

func (s *Shell) alertResolved(center math3d.Vec3) {
	s.metrics.alert(s.alerts.Key())
	if s.cb.OnAlertResolved != nil {
		s.cb.OnAlertResolved(center)
	}
	if s.cfg.FlyToAlerts {
		s.controller.FlyToPoint(center, "Alert: "+s.alerts.Key())
	}
}

// RemoveNode deletes a node subtree and drops every cache entry for it.
func (s *Shell) RemoveNode(id scene.NodeID) {
	removed := s.scene.Remove(id)
	if len(removed) == 0 {
		return
	}
	s.layer.Forget(removed...)
	s.alerts.Forget(removed...)
	if s.inspector != nil {
		for _, r := range removed {
			if r == s.inspector.NodeID {
				s.inspector = nil
				break
			}
		}
	}
	if s.attached && s.cb.OnGeometryCount != nil {
		s.cb.OnGeometryCount(s.scene.MeshCount())
	}
}

// TransitionLabel is the label of the flight in progress, "" when idle.
func (s *Shell) TransitionLabel() string { return s.transition }

// Inspector returns the open inspector popup.
func (s *Shell) Inspector() (Inspector, bool) {
	if s.inspector == nil {
		return Inspector{}, false
	}
	return *s.inspector, true
}

// CloseInspector dismisses the popup.
func (s *Shell) CloseInspector() { s.inspector = nil }

// ActiveID returns the active viewpoint id.
func (s *Shell) ActiveID() string { return s.controller.ActiveID() }

// ActiveName returns the display name of the active viewpoint.
func (s *Shell) ActiveName() string {
	if v, ok := s.catalog.Get(s.controller.ActiveID()); ok {
		return v.Name
	}
	return "Free camera"
}

func (s *Shell) position() []float64 {
	p := s.controller.RoundedPosition()
	return p[:]
}
