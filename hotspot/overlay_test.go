package hotspot

import (
	"testing"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/render"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkersFollowCatalogAndActive(t *testing.T) {
	o := New(viewpoint.Default(), nil)
	o.SetActive("kr120")
	ms := o.Markers()
	require.Len(t, ms, 5, "overview has no hotspot")
	for _, m := range ms {
		assert.NotEqual(t, "overview", m.ID)
		assert.Equal(t, m.ID == "kr120", m.Active, m.ID)
	}
}

func TestLabelOnlyOnHover(t *testing.T) {
	o := New(viewpoint.Default(), nil)
	o.Hover("storage")
	o.Hover("overview")
	for _, m := range o.Markers() {
		if m.ID == "storage" {
			assert.Equal(t, "Storage Racks", Label(m))
		} else {
			assert.Empty(t, Label(m))
		}
	}
	o.Unhover("kr300")
	assert.Equal(t, "storage", o.Hovered(), "stale unhover is ignored")
	o.Unhover("storage")
	assert.Empty(t, o.Hovered())
}

func TestClickDelegates(t *testing.T) {
	var flown []string
	o := New(viewpoint.Default(), func(id string) { flown = append(flown, id) })
	assert.True(t, o.Click("conveyor"))
	assert.False(t, o.Click("overview"))
	assert.False(t, o.Click("nope"))
	assert.Equal(t, []string{"conveyor"}, flown)
}

func TestPulse(t *testing.T) {
	s, a := Pulse(0)
	assert.Equal(t, 1.0, s)
	assert.Equal(t, 1.0, a)
	s, a = Pulse(PulsePeriod / 2)
	assert.InDelta(t, 1.5, s, 1e-9)
	assert.InDelta(t, 0.5, a, 1e-9)
	s2, _ := Pulse(PulsePeriod*3 + PulsePeriod/2)
	assert.InDelta(t, s, s2, 1e-9)
}

func TestProjectAndHitTest(t *testing.T) {
	cat := viewpoint.MustCatalog(viewpoint.Viewpoint{
		ID:      "center",
		Hotspot: func() *math3d.Vec3 { v := math3d.V3(0, 0, 0); return &v }(),
	})
	o := New(cat, nil)
	cam := render.NewCamera()
	cam.SetPose(math3d.V3(0, 0, 10), math3d.V3(0, 0, 0))
	cam.SetAspectRatio(80.0 / 24.0)

	sm := o.Project(cam, 80, 24)
	require.Len(t, sm, 1)
	assert.InDelta(t, 40, sm[0].X, 1)
	assert.InDelta(t, 12, sm[0].Y, 1)

	id, ok := HitTest(sm, sm[0].X+1, sm[0].Y)
	assert.True(t, ok)
	assert.Equal(t, "center", id)
	_, ok = HitTest(sm, sm[0].X, sm[0].Y+2)
	assert.False(t, ok)

	cam.SetPose(math3d.V3(0, 0, -10), math3d.V3(0, 0, -20))
	assert.Empty(t, o.Project(cam, 80, 24), "behind the camera")
}
