// Package painttest provides test doubles for the paint package: a Surface
// that records every call and a Scheduler that collects Steppers.
package painttest

import (
	"fmt"
	"math"
	"sync"

	"PollockBoard/internal/paint"
)

// Kind identifies a recorded primitive.
type Kind int

const (
	Ellipse Kind = iota
	Circle
	Polygon
)

func (k Kind) String() string {
	switch k {
	case Ellipse:
		return "ellipse"
	case Circle:
		return "circle"
	default:
		return "polygon"
	}
}

// Op is one primitive draw call together with the paint state it used.
type Op struct {
	Kind     Kind
	Center   paint.Point
	RX, RY   float64
	Rotation float64
	Points   []paint.Point
	Fill     paint.Color
	Alpha    float64
	// Explicit is true when both SetFill and SetAlpha were called since the
	// previous primitive.
	Explicit bool
}

// Finite reports whether every coordinate and radius of the op is finite.
func (o Op) Finite() bool {
	for _, v := range []float64{o.Center.X, o.Center.Y, o.RX, o.RY, o.Rotation, o.Alpha} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, p := range o.Points {
		if !p.Finite() {
			return false
		}
	}
	return true
}

func (o Op) String() string {
	return fmt.Sprintf("%s at (%.1f, %.1f) r=(%.2f, %.2f) alpha=%.2f", o.Kind, o.Center.X, o.Center.Y, o.RX, o.RY, o.Alpha)
}

// Recorder is a paint.Surface that keeps every call in memory.
type Recorder struct {
	Width, Height float64

	mu       sync.Mutex
	ops      []Op
	fill     paint.Color
	alpha    float64
	fillSet  bool
	alphaSet bool
}

var _ paint.Surface = (*Recorder)(nil)

// NewRecorder returns a Recorder reporting the given bounds.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) SetFill(c paint.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fill, r.fillSet = c, true
}

func (r *Recorder) SetAlpha(a float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alpha, r.alphaSet = a, true
}

func (r *Recorder) FillEllipse(center paint.Point, rx, ry, rotation float64) {
	r.record(Op{Kind: Ellipse, Center: center, RX: rx, RY: ry, Rotation: rotation})
}

func (r *Recorder) FillCircle(center paint.Point, radius float64) {
	r.record(Op{Kind: Circle, Center: center, RX: radius, RY: radius})
}

func (r *Recorder) FillPolygon(points []paint.Point) {
	pts := make([]paint.Point, len(points))
	copy(pts, points)
	var c paint.Point
	for _, p := range pts {
		c.X += p.X / float64(len(pts))
		c.Y += p.Y / float64(len(pts))
	}
	r.record(Op{Kind: Polygon, Center: c, Points: pts})
}

func (r *Recorder) Bounds() (float64, float64) {
	return r.Width, r.Height
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op.Fill, op.Alpha = r.fill, r.alpha
	op.Explicit = r.fillSet && r.alphaSet
	r.fillSet, r.alphaSet = false, false
	r.ops = append(r.ops, op)
}

// Ops returns a copy of the recorded primitives.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Len returns the number of recorded primitives.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// Reset forgets every recorded primitive.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
	r.fillSet, r.alphaSet = false, false
}
