package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEveryFiresPerInterval(t *testing.T) {
	q := New()
	n := 0
	q.Every(time.Second, func() { n++ })

	q.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, n)
	q.Advance(time.Millisecond)
	assert.Equal(t, 1, n)
	q.Advance(3 * time.Second)
	assert.Equal(t, 2, n, "a late queue fires once, not once per missed interval")
	q.Advance(999 * time.Millisecond)
	assert.Equal(t, 2, n, "rescheduled from the late call")
	q.Advance(time.Millisecond)
	assert.Equal(t, 3, n)
}

func TestTinyIntervalDoesNotBurst(t *testing.T) {
	q := New()
	n := 0
	q.Every(8*time.Nanosecond, func() { n++ })
	q.Advance(33 * time.Millisecond)
	assert.Equal(t, 1, n)
	q.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, n)
}

func TestDeadlineOrder(t *testing.T) {
	q := New()
	var got []string
	q.Every(3*time.Second, func() { got = append(got, "slow") })
	q.Every(time.Second, func() { got = append(got, "fast") })
	q.Advance(time.Second)
	q.Advance(time.Second)
	q.Advance(time.Second)
	assert.Equal(t, []string{"fast", "fast", "slow", "fast"}, got)

	got = nil
	q.Advance(5 * time.Second)
	assert.Equal(t, []string{"fast", "slow"}, got, "earliest deadline first")
}

func TestStopOtherFromCallback(t *testing.T) {
	q := New()
	var got []string
	var second *Handle
	q.Every(time.Second, func() {
		got = append(got, "first")
		second.Stop()
	})
	second = q.Every(time.Second, func() { got = append(got, "second") })
	q.Advance(time.Second)
	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, 1, q.Len())
}

func TestStop(t *testing.T) {
	q := New()
	n := 0
	h := q.Every(time.Second, func() { n++ })
	assert.Equal(t, 1, q.Len())
	assert.True(t, h.Active())

	h.Stop()
	h.Stop()
	q.Advance(5 * time.Second)
	assert.Zero(t, n)
	assert.Zero(t, q.Len())
	assert.False(t, h.Active())
}

func TestStopFromCallback(t *testing.T) {
	q := New()
	n := 0
	var h *Handle
	h = q.Every(time.Second, func() {
		n++
		h.Stop()
	})
	q.Advance(10 * time.Second)
	assert.Equal(t, 1, n)
	assert.Zero(t, q.Len())
}

func TestInvalidInterval(t *testing.T) {
	q := New()
	assert.Nil(t, q.Every(0, func() {}))
	assert.Nil(t, q.Every(-time.Second, func() {}))
	assert.Nil(t, q.Every(time.Second, nil))
	assert.Zero(t, q.Len())
	var h *Handle
	h.Stop()
}

func TestStopAll(t *testing.T) {
	q := New()
	q.Every(time.Second, func() {})
	q.Every(2*time.Second, func() {})
	q.StopAll()
	assert.Zero(t, q.Len())
}
