// Package tour cycles the camera through the viewpoint catalog on a timer.
package tour

import (
	"time"

	"github.com/ansipixels/twincam/timer"
	"github.com/ansipixels/twincam/viewpoint"
	"github.com/rs/zerolog"
)

// Advancer moves the camera to the next catalog entry.
type Advancer interface {
	Next()
}

// Scheduler owns at most one repeating timer. Enabled (configured by the
// host) decides whether the timer exists; Paused (toggled live) decides
// whether a tick does anything.
type Scheduler struct {
	queue    *timer.Queue
	target   Advancer
	log      zerolog.Logger
	handle   *timer.Handle
	enabled  bool
	paused   bool
	interval time.Duration
	onTick   func()
}

// New creates an idle scheduler.
func New(queue *timer.Queue, target Advancer, log zerolog.Logger) *Scheduler {
	return &Scheduler{queue: queue, target: target, log: log}
}

// OnTick registers fn to run after every tick that advanced the camera.
func (s *Scheduler) OnTick(fn func()) {
	s.onTick = fn
}

// Configure retires the current timer and, when the tour is enabled with a
// positive interval over a non-empty catalog, installs exactly one new one.
// The paused flag survives reconfiguration.
func (s *Scheduler) Configure(enabled bool, interval time.Duration, catalog *viewpoint.Catalog) {
	s.Stop()
	s.enabled = enabled
	s.interval = interval
	if !enabled || interval <= 0 || catalog.Len() == 0 {
		return
	}
	s.handle = s.queue.Every(interval, s.tick)
	s.log.Debug().Dur("interval", interval).Int("stops", catalog.Len()).Msg("auto-tour armed")
}

func (s *Scheduler) tick() {
	if s.paused {
		s.log.Debug().Msg("auto-tour paused, skipping tick")
		return
	}
	s.target.Next()
	if s.onTick != nil {
		s.onTick()
	}
}

// TogglePause flips the paused flag without touching the timer and returns
// the new value. It takes effect on the next tick.
func (s *Scheduler) TogglePause() bool {
	s.paused = !s.paused
	s.log.Info().Bool("paused", s.paused).Msg("auto-tour toggled")
	return s.paused
}

// Paused reports the live pause flag.
func (s *Scheduler) Paused() bool { return s.paused }

// Enabled reports the configured flag.
func (s *Scheduler) Enabled() bool { return s.enabled }

// Interval returns the configured interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Running reports whether a timer is installed.
func (s *Scheduler) Running() bool { return s.handle.Active() }

// Stop retires the timer. Idempotent.
func (s *Scheduler) Stop() {
	s.handle.Stop()
	s.handle = nil
}
