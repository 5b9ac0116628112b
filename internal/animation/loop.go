package animation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"solar-system/internal/kinematics"
	"solar-system/internal/logger"
	"solar-system/internal/viewport"
)

// SlowFrame is the frame time above which a warning is logged (at most every slowLogEvery).
const (
	SlowFrame    = 100 * time.Millisecond
	slowLogEvery = 5 * time.Second
)

// Host is the window side of the loop. All methods are called on the loop goroutine.
type Host interface {
	// ShouldClose reports a close request (window button, ESC).
	ShouldClose() bool
	// PollResize returns the current window size and whether it changed since the last call.
	PollResize() (w, h int, changed bool)
	// Frame updates camera controls and draws one frame of the already-updated system.
	Frame(t float64) error
}

// Observer receives the wall time of each rendered frame (e.g. metrics).
type Observer func(d time.Duration)

// Loop drives the system at the host's refresh rate: resize, positions, controls, render.
// Exactly one tick runs at a time; there is no pause state.
type Loop struct {
	System    *kinematics.System
	Viewport  *viewport.Adapter
	Host      Host
	Log       *logger.Logger
	TimeScale float32
	Now       func() time.Time
	Observe   Observer

	epoch  time.Time
	frames uint64
	slow   rate.Sometimes
}

// New returns a loop with a wall clock and time scale 1.
func New(sys *kinematics.System, vp *viewport.Adapter, host Host, log *logger.Logger) *Loop {
	return &Loop{
		System:    sys,
		Viewport:  vp,
		Host:      host,
		Log:       log,
		TimeScale: 1,
		Now:       time.Now,
		slow:      rate.Sometimes{Interval: slowLogEvery},
	}
}

// Frames returns how many ticks have completed.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Elapsed returns the animation time for the current wall clock, in seconds since Run started.
// It stays float64 so that per-frame steps keep their size after days of uptime.
func (l *Loop) Elapsed() float64 {
	return l.Now().Sub(l.epoch).Seconds() * float64(l.TimeScale)
}

// Run ticks until the host asks to close (returns nil), ctx is done (returns ctx.Err()),
// or a frame fails (returns that error; the loop does not retry).
func (l *Loop) Run(ctx context.Context) error {
	l.epoch = l.Now()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Host.ShouldClose() {
			l.Log.Infof("window closed after %d frames", l.frames)
			return nil
		}
		if err := l.Tick(); err != nil {
			l.Log.Errorf("%v", err)
			return err
		}
	}
}

// Tick runs one frame: apply a pending resize, move every body to the current time, then
// let the host update controls and render.
func (l *Loop) Tick() error {
	if w, h, changed := l.Host.PollResize(); changed && l.Viewport != nil {
		if l.Viewport.Resize(w, h) {
			l.Log.Infof("viewport resized to %dx%d", w, h)
		}
	}
	t := l.Elapsed()
	l.System.Update(t)

	start := l.Now()
	if err := l.Host.Frame(t); err != nil {
		return fmt.Errorf("animation: frame %d: %w", l.frames, err)
	}
	d := l.Now().Sub(start)
	if l.Observe != nil {
		l.Observe(d)
	}
	if d > SlowFrame {
		l.slow.Do(func() {
			l.Log.Warnf("slow frame %d: %s", l.frames, d)
		})
	}
	l.frames++
	return nil
}
