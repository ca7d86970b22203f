package alert

import (
	"testing"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyWithoutGeometryStaysIdle(t *testing.T) {
	s := scene.New("Scene")
	s.AddMesh(nil, "KR300_Base", scene.Box(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1)), nil)
	a := New(s, DefaultTable())
	fired := 0
	a.OnResolved(func(math3d.Vec3) { fired++ })

	a.SetKey("kuka-kr120-right")
	assert.Equal(t, Idle, a.State())
	assert.Equal(t, "kuka-kr120-right", a.Key())
	a.Tick(0.1)
	assert.Zero(t, fired)

	a.SetKey("no-such-key")
	assert.Equal(t, Idle, a.State())
	assert.Zero(t, fired)
}

func TestArmResolvesCenterOnce(t *testing.T) {
	s := scene.Demo()
	a := New(s, DefaultTable())
	var centers []math3d.Vec3
	a.OnResolved(func(c math3d.Vec3) { centers = append(centers, c) })

	a.SetKey("storage-rack")
	a.SetKey("storage-rack")
	for i := range 30 {
		a.Tick(float64(i) / 60)
	}
	require.Len(t, centers, 1)
	assert.True(t, centers[0].ApproxEqual(math3d.V3(12, 2, -12), 1e-9), "got %v", centers[0])
	assert.Equal(t, Armed, a.State())
	for _, n := range s.FindMeshes("Rack_A", "Rack_B") {
		assert.True(t, a.IsTarget(n.ID))
	}
}

func TestStrobeIsPureInTime(t *testing.T) {
	s := scene.Demo()
	a := New(s, DefaultTable(), WithColor([3]float64{1, 0, 0}, 2))
	a.SetKey("kuka-kr300")
	arm := s.FindMeshes("KR300_Arm")[0]

	tests := []struct {
		t    float64
		high bool
	}{
		{1.0 / 12, true},  // quarter period
		{3.0 / 12, false}, // three quarters
		{0, false},        // sin(0) is not > 0
		{1 + 1.0/12, true},
	}
	for _, tt := range tests {
		a.Tick(tt.t)
		if tt.high {
			assert.Equal(t, 2.0, arm.Material.EmissiveIntensity, "t=%v", tt.t)
			assert.Equal(t, [3]float64{1, 0, 0}, arm.Material.Emissive)
		} else {
			assert.Zero(t, arm.Material.EmissiveIntensity, "t=%v", tt.t)
		}
	}
}

func TestClearRestoresOriginals(t *testing.T) {
	s := scene.Demo()
	nodes := s.FindMeshes(DefaultTable()["kuka-kr300"]...)
	originals := make([]*scene.Material, len(nodes))
	for i, n := range nodes {
		originals[i] = n.Material
	}

	a := New(s, DefaultTable())
	a.SetKey("kuka-kr300")
	a.Tick(1.0 / 12)
	for i, n := range nodes {
		assert.NotSame(t, originals[i], n.Material)
	}
	assert.Zero(t, originals[0].EmissiveIntensity, "originals are not mutated")

	a.Clear()
	a.Clear()
	for i, n := range nodes {
		assert.Same(t, originals[i], n.Material)
		assert.False(t, a.IsTarget(n.ID))
	}
	assert.Equal(t, Idle, a.State())
	_, ok := a.Center()
	assert.False(t, ok)
}

func TestAlertExclusivity(t *testing.T) {
	s := scene.Demo()
	table := DefaultTable()
	first := s.FindMeshes(table["kuka-kr300"]...)
	second := s.FindMeshes(table["conveyor-main"]...)
	firstOrig := map[scene.NodeID]*scene.Material{}
	for _, n := range first {
		firstOrig[n.ID] = n.Material
	}

	a := New(s, table)
	a.SetKey("kuka-kr300")
	a.Tick(1.0 / 12)

	// At the moment the second target is installed, the first one must
	// already be back to its original materials.
	a.BeforeArm(func([]*scene.Node) {
		for _, n := range first {
			assert.Same(t, firstOrig[n.ID], n.Material)
			assert.False(t, a.IsTarget(n.ID))
		}
	})
	a.SetKey("conveyor-main")
	a.Tick(1.0 / 12)

	for _, n := range first {
		assert.Same(t, firstOrig[n.ID], n.Material)
	}
	for _, n := range second {
		assert.True(t, a.IsTarget(n.ID))
		assert.Positive(t, n.Material.EmissiveIntensity)
	}
}

func TestSwitchToUnresolvedKeyStillRestores(t *testing.T) {
	s := scene.Demo()
	a := New(s, DefaultTable())
	a.SetKey("storage-rack")
	rack := s.FindMeshes("Rack_A")[0]
	armed := rack.Material

	a.SetKey("missing")
	assert.NotSame(t, armed, rack.Material)
	assert.Equal(t, Idle, a.State())
}

func TestForgetRemovedNodes(t *testing.T) {
	s := scene.Demo()
	a := New(s, DefaultTable())
	a.SetKey("storage-rack")
	for _, n := range s.FindMeshes("Rack_A", "Rack_B") {
		a.Forget(s.Remove(n.ID)...)
	}
	assert.Equal(t, Idle, a.State())
}

func TestHigh(t *testing.T) {
	assert.True(t, High(3, 0.05))
	assert.False(t, High(3, 0.2))
}

func TestKeysMatchCaseInsensitively(t *testing.T) {
	s := scene.Demo()
	// Loaders lowercase map keys; the original spelling must still arm.
	table := Table{"storage-rack": {"Rack_A", "Rack_B"}}
	a := New(s, table)
	fired := 0
	a.OnResolved(func(math3d.Vec3) { fired++ })

	a.SetKey("Storage-Rack")
	assert.Equal(t, Armed, a.State())
	a.SetKey("STORAGE-RACK")
	assert.Equal(t, 1, fired, "same key in another case is not a re-arm")
}

func TestTableLookup(t *testing.T) {
	table := Table{"press-jam": {"Press_Ram"}, "Press-Jam": {"Press_Body"}}
	names, ok := table.Lookup("Press-Jam")
	require.True(t, ok)
	assert.Equal(t, []string{"Press_Body"}, names, "exact match wins")
	names, ok = table.Lookup("PRESS-JAM")
	require.True(t, ok)
	assert.Len(t, names, 1)
	_, ok = table.Lookup("press")
	assert.False(t, ok)
}
