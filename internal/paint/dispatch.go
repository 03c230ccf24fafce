package paint

import "github.com/charmbracelet/log"

// Dispatcher turns keys into painted effects.
type Dispatcher struct {
	table   *Table
	painter *Painter
	logger  *log.Logger
}

// NewDispatcher binds a table to a painter. A nil table uses DefaultTable.
func NewDispatcher(t *Table, p *Painter, logger *log.Logger) *Dispatcher {
	if t == nil {
		t = DefaultTable()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{table: t, painter: p, logger: logger}
}

// Table returns the key table.
func (d *Dispatcher) Table() *Table { return d.table }

// Painter returns the painter effects are dispatched to.
func (d *Dispatcher) Painter() *Painter { return d.painter }

// Resolve maps key to an effect. Unbound keys are redirected to a random
// effect; this never fails.
func (d *Dispatcher) Resolve(key string) Effect {
	e, bound := d.table.resolve(key, d.painter.rand())
	if !bound {
		d.logger.Debug("key not bound, picked random effect", "key", key, "effect", e)
	}
	return e
}

// Dispatch paints effect e at the given point. Names without a generator
// paint a splash.
func (d *Dispatcher) Dispatch(e Effect, at Point, c Color) {
	gen, ok := generators[e]
	if !ok {
		d.logger.Debug("unknown effect, painting splash", "effect", e)
		e, gen = EffectSplash, (*Painter).Splash
	}
	if !d.painter.ready() {
		d.logger.Debug("no surface, dropping effect", "effect", e)
		return
	}
	d.logger.Debug("dispatch", "effect", e, "x", at.X, "y", at.Y, "color", c)
	gen(d.painter, at, c)
}
