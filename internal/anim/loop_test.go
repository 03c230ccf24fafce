package anim

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"PollockBoard/internal/paint"
)

// countdown paints n steps and then reports done.
type countdown struct {
	n     int
	steps int
}

func (c *countdown) Step() paint.StepResult {
	if c.n == 0 {
		return paint.Done
	}
	c.n--
	c.steps++
	return paint.Continue
}

// spawner schedules a child on its first step.
type spawner struct {
	loop  *Loop
	child paint.Stepper
	done  bool
}

func (s *spawner) Step() paint.StepResult {
	if s.done {
		return paint.Done
	}
	s.loop.Schedule(s.child)
	s.done = true
	return paint.Continue
}

func quietLoop() *Loop {
	return NewLoop(log.New(io.Discard))
}

func TestLoopStepsEachAnimationOncePerTick(t *testing.T) {
	l := quietLoop()
	a, b := &countdown{n: 2}, &countdown{n: 4}
	l.Schedule(a)
	l.Schedule(b)

	want := []int{2, 2, 1, 1, 0}
	for i, w := range want {
		if got := l.Tick(); got != w {
			t.Fatalf("tick %d stepped %d, want %d", i, got, w)
		}
	}
	if a.steps != 2 || b.steps != 4 {
		t.Errorf("steps = %d, %d; want 2, 4", a.steps, b.steps)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d after all animations finished", l.Len())
	}
}

func TestLoopScheduleDuringTick(t *testing.T) {
	l := quietLoop()
	child := &countdown{n: 1}
	l.Schedule(&spawner{loop: l, child: child})

	if got := l.Tick(); got != 1 {
		t.Fatalf("first tick stepped %d, want 1", got)
	}
	if child.steps != 0 {
		t.Fatal("child stepped in the tick that scheduled it")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	l.Tick()
	if child.steps != 1 {
		t.Errorf("child steps = %d, want 1", child.steps)
	}
}

func TestLoopIgnoresNil(t *testing.T) {
	l := quietLoop()
	l.Schedule(nil)
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
}

func TestLoopRunStopsWithContext(t *testing.T) {
	l := quietLoop()
	l.Schedule(&countdown{n: 3})

	ctx, cancel := context.WithCancel(context.Background())
	var frames atomic.Int32
	done := make(chan struct{})
	go func() {
		l.Run(ctx, 200, func(frame func()) {
			frames.Add(1)
			frame()
		})
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for l.Len() > 0 {
		select {
		case <-deadline:
			t.Fatal("animation did not finish")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
	if frames.Load() < 3 {
		t.Errorf("posted %d frames, want at least 3", frames.Load())
	}
}

func TestImmediateRunsToCompletion(t *testing.T) {
	c := &countdown{n: 7}
	Immediate{}.Schedule(c)
	if c.steps != 7 {
		t.Errorf("steps = %d, want 7", c.steps)
	}
}

func TestManualTimer(t *testing.T) {
	var m ManualTimer
	var fired []string
	m.AfterFunc(600*time.Millisecond, func() { fired = append(fired, "c") })
	m.AfterFunc(0, func() { fired = append(fired, "a") })
	m.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "b") })

	pending := m.Pending()
	if len(pending) != 3 || pending[0] != 0 || pending[1] != 300*time.Millisecond || pending[2] != 600*time.Millisecond {
		t.Fatalf("Pending() = %v", pending)
	}
	if n := m.Advance(0); n != 1 {
		t.Fatalf("Advance(0) ran %d", n)
	}
	if n := m.Advance(299 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(299ms) ran %d", n)
	}
	if n := m.Advance(time.Second); n != 2 {
		t.Fatalf("Advance(1s) ran %d", n)
	}
	if got := len(fired); got != 3 || fired[0] != "a" || fired[1] != "b" || fired[2] != "c" {
		t.Errorf("fired %v, want [a b c]", fired)
	}
}

func TestRealTimerPosts(t *testing.T) {
	posted := make(chan struct{}, 1)
	ran := make(chan struct{}, 1)
	RealTimer{Post: func(f func()) {
		posted <- struct{}{}
		f()
	}}.AfterFunc(time.Millisecond, func() { ran <- struct{}{} })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}
	if len(posted) != 1 {
		t.Error("callback did not go through Post")
	}
}

func TestLoopDrivesDrips(t *testing.T) {
	l := quietLoop()
	s := &nopSurface{}
	p := paint.NewPainter(s, paint.NewSeededRand(3), l)
	p.Pour(paint.Pt(50, 50), paint.HSL(0, 80, 50))

	if l.Len() != 8 {
		t.Fatalf("Len() = %d after pour, want 8", l.Len())
	}
	for i := 0; i < 1000 && l.Len() > 0; i++ {
		l.Tick()
	}
	if l.Len() != 0 {
		t.Fatalf("%d drips still running after 1000 frames", l.Len())
	}
	if s.n == 0 {
		t.Error("drips never painted")
	}
}

type nopSurface struct{ n int }

func (s *nopSurface) SetFill(paint.Color)                                {}
func (s *nopSurface) SetAlpha(float64)                                   {}
func (s *nopSurface) FillEllipse(paint.Point, float64, float64, float64) { s.n++ }
func (s *nopSurface) FillCircle(paint.Point, float64)                    { s.n++ }
func (s *nopSurface) FillPolygon([]paint.Point)                          { s.n++ }
func (s *nopSurface) Bounds() (float64, float64)                         { return 100, 100 }
