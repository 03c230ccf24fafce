// Package input turns pointer, key and command-sequence input into painted
// effects. The drawing session is a value owned by the caller: every
// handler takes the current session and returns the next one.
package input

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/log"

	"PollockBoard/internal/paint"
	"PollockBoard/internal/state"
)

// Brush selects what dragging the pointer paints.
type Brush string

const (
	// BrushEffect repeats the last used effect at every pointer move.
	BrushEffect Brush = "effect"
	// BrushStroke paints brush strokes between consecutive pointer positions.
	BrushStroke Brush = "stroke"
)

// ParseBrush validates a configured brush name. Empty means BrushEffect.
func ParseBrush(s string) (Brush, error) {
	switch Brush(s) {
	case "", BrushEffect:
		return BrushEffect, nil
	case BrushStroke:
		return BrushStroke, nil
	}
	return "", fmt.Errorf("unknown brush %q", s)
}

// KeyEvent is a printable key press.
type KeyEvent struct {
	Rune rune
	// Repeat is set for auto-repeat presses of a held key.
	Repeat bool
	// FromTextInput is set when the key was typed into a text field.
	FromTextInput bool
	// Source defaults to state.SourceKey.
	Source state.Source
}

// Clearer is implemented by surfaces that can be reset to blank.
type Clearer interface {
	Clear()
}

// Controller dispatches input to the effect library.
type Controller struct {
	dispatcher *paint.Dispatcher
	brush      Brush
	logger     *log.Logger

	// Observer, when set, sees every invocation after it is painted.
	Observer func(state.Invocation)
}

// NewController returns a controller painting through d.
func NewController(d *paint.Dispatcher, brush Brush, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	if brush == "" {
		brush = BrushEffect
	}
	return &Controller{dispatcher: d, brush: brush, logger: logger}
}

// Table returns the key bindings keys resolve through.
func (c *Controller) Table() *paint.Table {
	return c.dispatcher.Table()
}

func (c *Controller) painter() *paint.Painter {
	return c.dispatcher.Painter()
}

func (c *Controller) rand() paint.Rand {
	if p := c.painter(); p != nil && p.Rand != nil {
		return p.Rand
	}
	return paint.DefaultRand
}

// Press starts a drawing session at the given point.
func (c *Controller) Press(s state.DrawSession, at paint.Point) state.DrawSession {
	s.ID = state.NewSessionID()
	s.Active = true
	if s.Color == (paint.Color{}) {
		s.Color = paint.RandomColor(c.rand())
	}
	s.Last = &state.StrokePoint{X: at.X, Y: at.Y, Color: s.Color, Size: 5, Opacity: 0.5, Kind: state.KindStroke}
	c.logger.Debug("pointer down", "session", s.ID, "x", at.X, "y", at.Y)
	return s
}

// Move paints at the new pointer position with a freshly picked color.
// Outside an active session it does nothing.
func (c *Controller) Move(s state.DrawSession, at paint.Point) state.DrawSession {
	if !s.Active || s.Last == nil {
		return s
	}
	col := paint.RandomColor(c.rand())
	s.Color = col

	kind := state.KindSplash
	if c.brush == BrushStroke {
		c.painter().Stroke(s.Last.Point(), at, col)
		kind = state.KindStroke
		c.emit(state.Invocation{Session: s.ID, Source: state.SourcePointer, Effect: "stroke", Origin: at, Color: col})
	} else {
		e := s.Effect()
		c.dispatch(state.Invocation{Session: s.ID, Source: state.SourcePointer, Effect: e, Origin: at, Color: col})
		if dripsOnly(e) {
			kind = state.KindDrip
		}
	}

	s.Last = &state.StrokePoint{X: at.X, Y: at.Y, Color: col, Size: 5, Opacity: 0.5, Kind: kind}
	return s
}

// Release ends the drawing session.
func (c *Controller) Release(s state.DrawSession) state.DrawSession {
	if s.Active {
		c.logger.Debug("pointer up", "session", s.ID)
	}
	s.Active = false
	return s
}

// Key paints the effect bound to the key at a random point in a random
// color. Unbound keys paint a random effect. Auto-repeats and keys typed
// into text fields are ignored, as are non-printable keyboard keys.
// Sequence commands are always painted, whatever the character.
func (c *Controller) Key(s state.DrawSession, ev KeyEvent) state.DrawSession {
	src := ev.Source
	if src == "" {
		src = state.SourceKey
	}
	if ev.Repeat || ev.FromTextInput {
		return s
	}
	if src == state.SourceKey && !unicode.IsPrint(ev.Rune) {
		return s
	}
	p := c.painter()
	if p == nil || p.Surface == nil {
		return s
	}
	r := c.rand()
	w, h := p.Surface.Bounds()
	at := paint.Pt(r.Float64()*w, r.Float64()*h)
	col := paint.RandomColor(r)
	e := c.dispatcher.Resolve(string(ev.Rune))

	c.dispatch(state.Invocation{Session: s.ID, Source: src, Effect: e, Origin: at, Color: col})
	s.LastEffect = e
	return s
}

// Clear resets the surface to blank when it supports it.
func (c *Controller) Clear() {
	p := c.painter()
	if p == nil || p.Surface == nil {
		return
	}
	if cl, ok := p.Surface.(Clearer); ok {
		cl.Clear()
		c.logger.Info("canvas cleared")
	}
}

func (c *Controller) dispatch(inv state.Invocation) {
	c.dispatcher.Dispatch(inv.Effect, inv.Origin, inv.Color)
	c.emit(inv)
}

func (c *Controller) emit(inv state.Invocation) {
	inv = state.Emit(inv)
	if c.Observer != nil {
		c.Observer(inv)
	}
}

// dripsOnly reports whether e paints nothing but drips.
func dripsOnly(e paint.Effect) bool {
	switch e {
	case paint.EffectDrip, paint.EffectPour, paint.EffectSpiral, paint.EffectWave,
		paint.EffectBubble, paint.EffectRain, paint.EffectHelix, paint.EffectNebula, paint.EffectCrystal:
		return true
	}
	return false
}
