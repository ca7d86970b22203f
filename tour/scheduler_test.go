package tour

import (
	"testing"
	"time"

	"github.com/ansipixels/twincam/timer"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type counter struct{ n int }

func (c *counter) Next() { c.n++ }

func setup() (*Scheduler, *timer.Queue, *counter) {
	q := timer.New()
	c := &counter{}
	return New(q, c, zerolog.Nop()), q, c
}

func TestTickAdvances(t *testing.T) {
	s, q, c := setup()
	s.Configure(true, 8*time.Second, viewpoint.Default())
	for range 3 {
		q.Advance(8 * time.Second)
	}
	assert.Equal(t, 3, c.n)
}

func TestAtMostOneTimer(t *testing.T) {
	s, q, c := setup()
	cat := viewpoint.Default()
	for _, iv := range []time.Duration{time.Second, 2 * time.Second, 3 * time.Second} {
		s.Configure(true, iv, cat)
		assert.Equal(t, 1, q.Len())
	}
	s.Configure(true, 3*time.Second, viewpoint.MustCatalog(viewpoint.Viewpoint{ID: "x"}))
	assert.Equal(t, 1, q.Len())

	q.Advance(3 * time.Second)
	assert.Equal(t, 1, c.n, "only the latest timer fires")

	s.Stop()
	s.Stop()
	assert.Zero(t, q.Len())
}

func TestNoTimerWhenDisabled(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		interval time.Duration
		catalog  *viewpoint.Catalog
	}{
		{"disabled", false, time.Second, viewpoint.Default()},
		{"zero interval", true, 0, viewpoint.Default()},
		{"empty catalog", true, time.Second, viewpoint.MustCatalog()},
		{"nil catalog", true, time.Second, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, q, _ := setup()
			s.Configure(true, time.Second, viewpoint.Default())
			s.Configure(tt.enabled, tt.interval, tt.catalog)
			assert.Zero(t, q.Len())
			assert.False(t, s.Running())
		})
	}
}

func TestPauseSkipsTicksOnly(t *testing.T) {
	s, q, c := setup()
	s.Configure(true, time.Second, viewpoint.Default())

	q.Advance(500 * time.Millisecond)
	assert.True(t, s.TogglePause())
	assert.Equal(t, 1, q.Len(), "pausing keeps the timer")
	assert.Zero(t, c.n, "pause is not retroactive")

	q.Advance(3 * time.Second)
	assert.Zero(t, c.n)

	assert.False(t, s.TogglePause())
	q.Advance(time.Second)
	assert.Equal(t, 1, c.n)
	assert.True(t, s.Enabled())
}
