// Package anim drives paint.Steppers one step per frame and schedules
// delayed work.
package anim

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"PollockBoard/internal/paint"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// Loop holds the animations in flight. Each Tick steps every animation
// once; animations that report Done are dropped. Animations are
// independent and only share the surface they paint on.
type Loop struct {
	mu      sync.Mutex
	active  []paint.Stepper
	pending []paint.Stepper
	logger  *log.Logger
}

var _ paint.Scheduler = (*Loop)(nil)

// NewLoop returns an empty loop.
func NewLoop(logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{logger: logger}
}

// Schedule adds s to the loop. It takes its first step on the next Tick,
// so scheduling from inside a Step is safe.
func (l *Loop) Schedule(s paint.Stepper) {
	if s == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, s)
}

// Tick advances every animation by one step and returns how many painted.
func (l *Loop) Tick() int {
	l.mu.Lock()
	l.active = append(l.active, l.pending...)
	l.pending = nil
	active := l.active
	l.active = nil
	l.mu.Unlock()

	stepped := 0
	kept := active[:0]
	for _, s := range active {
		if s.Step() == paint.Continue {
			stepped++
			kept = append(kept, s)
		}
	}

	l.mu.Lock()
	l.active = append(kept, l.active...)
	l.mu.Unlock()
	return stepped
}

// Len returns the number of animations in flight, including those that
// have not taken their first step yet.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active) + len(l.pending)
}

// Run ticks the loop at fps until ctx is done. post runs each frame on the
// goroutine that owns the surface and is responsible for repainting; a nil
// post ticks on the calling goroutine.
func (l *Loop) Run(ctx context.Context, fps int, post func(frame func())) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if post == nil {
		post = func(frame func()) { frame() }
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	l.logger.Debug("frame loop started", "fps", fps)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped", "in_flight", l.Len())
			return
		case <-ticker.C:
			if l.Len() == 0 {
				continue
			}
			post(func() { l.Tick() })
		}
	}
}

// Immediate runs every Stepper to completion as soon as it is scheduled.
type Immediate struct{}

func (Immediate) Schedule(s paint.Stepper) {
	if s != nil {
		paint.RunToCompletion(s)
	}
}
