package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ansipixels/twincam/math3d"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := New()
	require.NoError(t, Load(v, ""))
	s, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 30, s.FPS)
	assert.False(t, s.Tour.Enabled)
	assert.Equal(t, 8*time.Second, s.Tour.Interval)
	assert.Equal(t, 1.6, s.Flight.Duration)
	assert.Equal(t, 1.2, s.Flight.PointDuration)
	assert.Equal(t, 6.0, s.Flight.PointDistance)
	assert.Equal(t, 3.0, s.Alert.Frequency)
	assert.True(t, s.FlyToAlerts)

	cat, err := s.Catalog()
	require.NoError(t, err)
	assert.Equal(t, viewpoint.Default().Len(), cat.Len())
	assert.Contains(t, s.AlertTable(), "kuka-kr120-right")
}

const sample = `
logLevel: debug
tour:
  enabled: true
  interval: 5s
flight:
  pointDistance: 4
viewpoints:
  - id: overview
    name: Hall
    position: [20, 15, 20]
    target: [0, 0, 0]
    category: overview
  - id: press
    name: Press
    position: [3, 2, 1]
    target: [3, 0, -2]
    hotspot: [3, 1.5, -2]
    category: equipment
alerts:
  press-jam: [Press_Body, Press_Ram]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twincam.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	v := New()
	require.NoError(t, Load(v, writeConfig(t, sample)))
	s, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, s.Tour.Enabled)
	assert.Equal(t, 5*time.Second, s.Tour.Interval)
	assert.Equal(t, 4.0, s.Flight.PointDistance)
	assert.Equal(t, 1.6, s.Flight.Duration, "unset keys keep defaults")

	cat, err := s.Catalog()
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	press, ok := cat.Get("press")
	require.True(t, ok)
	assert.Equal(t, math3d.V3(3, 2, 1), press.Position)
	require.True(t, press.HasHotspot())
	assert.Equal(t, math3d.V3(3, 1.5, -2), *press.Hotspot)
	assert.Equal(t, viewpoint.CategoryEquipment, press.Category)

	assert.Equal(t, []string{"Press_Body", "Press_Ram"}, s.AlertTable()["press-jam"])
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("TWINCAM_TOUR_INTERVAL", "12s")
	t.Setenv("TWINCAM_LOGLEVEL", "warn")
	v := New()
	require.NoError(t, Load(v, writeConfig(t, sample)))
	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, s.Tour.Interval)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestTourIntervalUnits(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want time.Duration
		bad  bool
	}{
		{"duration string", "interval: 90s", 90 * time.Second, false},
		{"bare integer is seconds", "interval: 8", 8 * time.Second, false},
		{"bare float is seconds", "interval: 2.5", 2500 * time.Millisecond, false},
		{"quoted number is seconds", `interval: "4"`, 4 * time.Second, false},
		{"zero disables", "interval: 0", 0, false},
		{"sub-millisecond rejected", "interval: 8ns", 0, true},
		{"negative rejected", "interval: -3", 0, true},
		{"garbage rejected", "interval: soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			require.NoError(t, Load(v, writeConfig(t, "tour:\n  enabled: true\n  "+tt.yaml+"\n")))
			s, err := Decode(v)
			if tt.bad {
				require.ErrorIs(t, err, ErrBadInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Tour.Interval)
		})
	}
}

func TestTourIntervalFromEnvSeconds(t *testing.T) {
	t.Setenv("TWINCAM_TOUR_INTERVAL", "12")
	v := New()
	require.NoError(t, Load(v, ""))
	s, err := Decode(v)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, s.Tour.Interval)
}

func TestMixedCaseAlertKeys(t *testing.T) {
	v := New()
	require.NoError(t, Load(v, writeConfig(t, "alerts:\n  Press-Jam: [Press_Body]\n")))
	s, err := Decode(v)
	require.NoError(t, err)
	names, ok := s.AlertTable().Lookup("Press-Jam")
	require.True(t, ok, "keys stay reachable by their file spelling")
	assert.Equal(t, []string{"Press_Body"}, names)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	err := Load(New(), "/nonexistent/twincam.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"short vector", "viewpoints:\n  - id: a\n    position: [1, 2]\n    target: [0, 0, 0]\n", ErrBadVector},
		{"duplicate id", "viewpoints:\n  - id: a\n    position: [1, 2, 3]\n    target: [0, 0, 0]\n  - id: a\n    position: [1, 2, 3]\n    target: [0, 0, 0]\n", viewpoint.ErrDuplicateID},
		{"bad category", "viewpoints:\n  - id: a\n    position: [1, 2, 3]\n    target: [0, 0, 0]\n    category: lobby\n", viewpoint.ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			require.NoError(t, Load(v, writeConfig(t, tt.body)))
			s, err := Decode(v)
			require.NoError(t, err)
			_, err = s.Catalog()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEntryRoundTrip(t *testing.T) {
	for _, vp := range viewpoint.Default().All() {
		got, err := EntryFromViewpoint(vp).Viewpoint()
		require.NoError(t, err)
		assert.Equal(t, vp, got)
	}
}
