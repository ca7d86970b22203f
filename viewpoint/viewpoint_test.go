package viewpoint

import (
	"testing"

	"github.com/ansipixels/twincam/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		vs   []Viewpoint
		want error
	}{
		{"empty id", []Viewpoint{{ID: ""}}, ErrEmptyID},
		{"duplicate", []Viewpoint{{ID: "a"}, {ID: "a"}}, ErrDuplicateID},
		{"bad category", []Viewpoint{{ID: "a", Category: "lobby"}}, ErrUnknownCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.vs...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCatalogLookup(t *testing.T) {
	c, err := NewCatalog(Viewpoint{ID: "overview"}, Viewpoint{ID: "kr300"}, Viewpoint{ID: "kr120"})
	require.NoError(t, err)

	i, ok := c.Index("kr120")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	_, ok = c.At(3)
	assert.False(t, ok)
}

func TestWrap(t *testing.T) {
	c := MustCatalog(Viewpoint{ID: "a"}, Viewpoint{ID: "b"}, Viewpoint{ID: "c"})
	for in, want := range map[int]int{-1: 2, 0: 0, 3: 0, 4: 1, -4: 2} {
		got, ok := c.Wrap(in)
		assert.True(t, ok)
		assert.Equal(t, want, got, "Wrap(%d)", in)
	}

	empty := MustCatalog()
	_, ok := empty.Wrap(1)
	assert.False(t, ok, "empty catalog has no index")

	var nilCatalog *Catalog
	assert.Equal(t, 0, nilCatalog.Len())
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 3)
	first, _ := c.At(0)
	assert.Equal(t, "overview", first.ID)
	assert.False(t, first.HasHotspot())
	kr, ok := c.Get("kr300")
	require.True(t, ok)
	assert.True(t, kr.HasHotspot())
}

func TestCatalogHotspotsAreCopied(t *testing.T) {
	h := math3d.V3(1, 2, 3)
	c, err := NewCatalog(Viewpoint{ID: "press", Hotspot: &h})
	require.NoError(t, err)

	h.X = 99
	got, _ := c.Get("press")
	assert.Equal(t, 1.0, got.Hotspot.X, "construction copies the hotspot")

	got.Hotspot.Y = 99
	at, _ := c.At(0)
	at.Hotspot.Z = 99
	all := c.All()
	all[0].Hotspot.X = 99

	again, _ := c.Get("press")
	assert.Equal(t, math3d.V3(1, 2, 3), *again.Hotspot)
}
