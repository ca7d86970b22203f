package camera

import (
	"testing"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStops() *viewpoint.Catalog {
	return viewpoint.MustCatalog(
		viewpoint.Viewpoint{ID: "overview", Position: math3d.V3(10, 10, 10), Target: math3d.V3(0, 0, 0)},
		viewpoint.Viewpoint{ID: "kr300", Position: math3d.V3(-5, 4, 5), Target: math3d.V3(-6, 1, 0)},
		viewpoint.Viewpoint{ID: "kr120", Position: math3d.V3(6, 4, 5), Target: math3d.V3(6, 1, -1)},
	)
}

func attached(t *testing.T, cat *viewpoint.Catalog, initial string, opts ...Option) (*Controller, *render.Camera) {
	t.Helper()
	c := New(cat, opts...)
	cam := render.NewCamera()
	c.Attach(cam, initial)
	return c, cam
}

// settle runs frames until the flight ends.
func settle(c *Controller) {
	for range 1000 {
		if !c.InFlight() {
			return
		}
		c.Update(1.0 / 60)
	}
}

func TestInitialPlacement(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		wantID  string
		wantIdx int
	}{
		{"named", "kr120", "kr120", 2},
		{"unknown falls back to first", "nope", "overview", 0},
		{"empty falls back to first", "", "overview", 0},
	}
	cat := threeStops()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cam := attached(t, cat, tt.initial)
			v, _ := cat.Get(tt.wantID)
			assert.Equal(t, tt.wantID, c.ActiveID())
			assert.Equal(t, tt.wantIdx, c.Cursor())
			assert.False(t, c.InFlight(), "initial placement is a hard cut")
			assert.Equal(t, v.Position, cam.Position)
			assert.Equal(t, v.Target, cam.Target)
		})
	}
}

func TestInitialPlacementRunsOnce(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview")
	c.Next()
	settle(c)
	require.Equal(t, "kr300", c.ActiveID())

	cam := render.NewCamera()
	c.Attach(cam, "overview")
	assert.Equal(t, "kr300", c.ActiveID())
	assert.Equal(t, c.Position(), cam.Position, "re-attach pushes the live pose")
}

func TestDetachedIsInert(t *testing.T) {
	c := New(threeStops())
	moved := 0
	c.OnMove(func([3]float64) { moved++ })

	c.FlyToIndex(1)
	c.Next()
	c.FlyToPoint(math3d.V3(1, 0, 1), "")
	c.Orbit(0.5, 0.1)
	c.Update(0.1)

	assert.False(t, c.InFlight())
	assert.Equal(t, "", c.ActiveID())
	assert.Zero(t, moved)

	c2, _ := attached(t, threeStops(), "")
	c2.Next()
	c2.Detach()
	assert.False(t, c2.InFlight(), "detach drops the flight")
	assert.False(t, c2.Attached())
}

func TestArrowRightScenario(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview")
	require.Equal(t, 0, c.Cursor())

	c.Next()
	assert.Equal(t, "kr300", c.ActiveID())
	assert.Equal(t, 1, c.Cursor())

	c.Next()
	c.Next()
	assert.Equal(t, "overview", c.ActiveID())
	assert.Equal(t, 0, c.Cursor())

	c.Prev()
	assert.Equal(t, "kr120", c.ActiveID())
	assert.Equal(t, 2, c.Cursor())
}

func TestCyclicNavigationReturnsToStart(t *testing.T) {
	vs := viewpoint.Default().All()
	for n := 1; n <= len(vs); n++ {
		cat := viewpoint.MustCatalog(vs[:n]...)
		for start := range n {
			c, _ := attached(t, cat, vs[start].ID)
			for range n {
				c.Next()
			}
			assert.Equal(t, vs[start].ID, c.ActiveID(), "n=%d start=%d", n, start)
			assert.Equal(t, start, c.Cursor())
		}
	}
}

func TestLastCallWins(t *testing.T) {
	cat := threeStops()
	c, cam := attached(t, cat, "overview")
	a, _ := cat.At(1)
	b, _ := cat.At(2)

	arrivals := []string{}
	c.OnArrive(func(id string) { arrivals = append(arrivals, id) })

	c.FlyToViewpoint(a)
	c.Update(0.3)
	mid := c.Position()
	c.FlyToViewpoint(b)
	assert.Equal(t, mid, c.Flight().From.Position, "new flight leaves from the live pose")

	settle(c)
	assert.Equal(t, []string{"kr120"}, arrivals)
	assert.Equal(t, b.Position, cam.Position)
	assert.Equal(t, b.Target, cam.Target)
}

func TestActiveIDInvariant(t *testing.T) {
	cat := threeStops()
	c, _ := attached(t, cat, "overview")
	changes := []string{}
	c.OnActiveChange(func(id string) { changes = append(changes, id) })

	v, _ := cat.At(1)
	c.FlyToViewpoint(v)
	assert.Equal(t, "kr300", c.ActiveID())

	c.FlyToPoint(math3d.V3(3, 0, 3), "")
	assert.Equal(t, "", c.ActiveID())
	assert.Equal(t, 1, c.Cursor(), "cursor survives fly-to-point")

	c.Next()
	assert.Equal(t, "kr120", c.ActiveID(), "navigation resumes from the last viewpoint")
	assert.Equal(t, []string{"kr300", "", "kr120"}, changes)
}

func TestFlyToPointOffset(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview", WithPointDistance(4))
	labels := []string{}
	c.OnTransition(func(l string) { labels = append(labels, l) })

	p := math3d.V3(3.2, 0, -1.4)
	c.FlyToPoint(p, "")
	settle(c)

	assert.Equal(t, p, c.Target())
	assert.InDelta(t, 4, c.Position().Distance(p), 1e-9)
	assert.GreaterOrEqual(t, c.Position().Y, p.Y+minPointHeight)
	assert.Equal(t, []string{"(3.20, 0.00, -1.40)", ""}, labels)
}

func TestFlyToPointLiftsLowCamera(t *testing.T) {
	cat := viewpoint.MustCatalog(viewpoint.Viewpoint{
		ID: "floor", Position: math3d.V3(0, 0.2, 10), Target: math3d.V3(0, 0.2, 0),
	})
	c, _ := attached(t, cat, "")
	c.FlyToPoint(math3d.V3(0, 0, 0), "bench")
	settle(c)
	assert.InDelta(t, minPointHeight, c.Position().Y, 1e-9)
}

func TestRoundingIsDisplayOnly(t *testing.T) {
	cat := viewpoint.MustCatalog(viewpoint.Viewpoint{ID: "a", Target: math3d.V3(0, 0, -1)})
	c, _ := attached(t, cat, "a", WithDuration(0), WithPointDuration(0), WithPointDistance(1))

	moves := 0
	c.OnMove(func([3]float64) { moves++ })

	// Each step is far below display precision but must still accumulate.
	const steps = 1000
	for range steps {
		next := c.Target().Add(math3d.V3(0.001, 0, 0))
		c.FlyToPoint(next, "step")
		c.Update(0)
	}
	assert.InDelta(t, 1.0, c.Target().X, 1e-9)
	assert.Equal(t, [3]float64{1, 0, -1}, c.RoundedTarget())
	assert.Less(t, moves, steps, "read-out only fires when the rounded value changes")
}

func TestEmptyCatalog(t *testing.T) {
	empty := viewpoint.MustCatalog()
	c, cam := attached(t, empty, "anything")
	start := cam.Position

	c.Next()
	c.Prev()
	c.Home()
	c.FlyToIndex(0)
	c.Update(1)

	assert.False(t, c.InFlight())
	assert.Equal(t, "", c.ActiveID())
	assert.Equal(t, start, cam.Position)
}

func TestDigitOutOfRange(t *testing.T) {
	c, _ := attached(t, threeStops(), "")
	c.FlyToIndex(8)
	c.FlyToIndex(-1)
	assert.False(t, c.InFlight())
	assert.Equal(t, "overview", c.ActiveID())
}

func TestSetCatalog(t *testing.T) {
	c, _ := attached(t, threeStops(), "kr120")

	reordered := viewpoint.MustCatalog(
		viewpoint.Viewpoint{ID: "kr120"},
		viewpoint.Viewpoint{ID: "overview"},
	)
	c.SetCatalog(reordered)
	assert.Equal(t, "kr120", c.ActiveID())
	assert.Equal(t, 0, c.Cursor())

	c.SetCatalog(viewpoint.MustCatalog(viewpoint.Viewpoint{ID: "elsewhere"}))
	assert.Equal(t, "", c.ActiveID())
	assert.Equal(t, 0, c.Cursor())
}

func TestOrbitIgnoredDuringFlight(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview")
	c.Next()
	c.Orbit(1, 0)
	settle(c)
	v, _ := c.Catalog().Get("kr300")
	assert.Equal(t, v.Position, c.Position())

	dist := c.Position().Distance(c.Target())
	c.Orbit(0.2, 0)
	for range 120 {
		c.Update(1.0 / 60)
	}
	assert.NotEqual(t, v.Position, c.Position())
	assert.InDelta(t, dist, c.Position().Distance(c.Target()), 1e-6, "orbit keeps the distance")
	assert.Equal(t, "kr300", c.ActiveID())
}

func TestObserverCancel(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview")
	n := 0
	cancel := c.OnActiveChange(func(string) { n++ })
	c.Next()
	cancel()
	cancel()
	c.Next()
	assert.Equal(t, 1, n)
}

func TestObserverCancelDuringEmit(t *testing.T) {
	c, _ := attached(t, threeStops(), "overview")
	var got []string
	var cancelA func()
	cancelA = c.OnActiveChange(func(string) {
		got = append(got, "A")
		cancelA()
	})
	c.OnActiveChange(func(string) { got = append(got, "B") })
	c.OnActiveChange(func(string) { got = append(got, "C") })

	c.Next()
	assert.Equal(t, []string{"A", "B", "C"}, got, "self-cancel skips nobody and repeats nobody")

	got = nil
	c.Next()
	assert.Equal(t, []string{"B", "C"}, got)
}

func TestObserverCancelsLaterObserver(t *testing.T) {
	var o observers[string]
	var got []string
	var cancelB func()
	o.add(func(string) {
		got = append(got, "A")
		cancelB()
	})
	cancelB = o.add(func(string) { got = append(got, "B") })
	o.add(func(string) { got = append(got, "C") })

	o.emit("x")
	assert.Equal(t, []string{"A", "C"}, got)
}
