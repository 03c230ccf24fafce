package state

import (
	"PollockBoard/internal/paint"
)

// StrokeKind records what the pointer last left behind.
type StrokeKind string

const (
	KindDrip   StrokeKind = "drip"
	KindSplash StrokeKind = "splash"
	KindStroke StrokeKind = "stroke"
)

// StrokePoint is the last pointer position and its paint context.
type StrokePoint struct {
	X, Y    float64
	Color   paint.Color
	Size    float64
	Opacity float64
	Kind    StrokeKind
}

// Point returns the position as a paint.Point.
func (p StrokePoint) Point() paint.Point {
	return paint.Pt(p.X, p.Y)
}

// DrawSession is the pointer drawing state. Handlers take a session and
// return the updated one; nothing else holds on to it.
type DrawSession struct {
	ID         string
	Active     bool
	Last       *StrokePoint
	LastEffect paint.Effect
	Color      paint.Color
}

// Effect returns the effect pointer moves repeat, splash until a key has
// been used.
func (s DrawSession) Effect() paint.Effect {
	if s.LastEffect == "" {
		return paint.EffectSplash
	}
	return s.LastEffect
}

// Invocation is one effect painted in response to input.
type Invocation struct {
	Seq     uint64
	Session string
	Source  Source
	Effect  paint.Effect
	Origin  paint.Point
	Color   paint.Color
}

// Source says which input produced an invocation.
type Source string

const (
	SourcePointer  Source = "pointer"
	SourceKey      Source = "key"
	SourceSequence Source = "sequence"
	SourceRemote   Source = "remote"
)
