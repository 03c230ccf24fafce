package paint

// Painter runs the effect generators against a surface. It holds no
// drawing state of its own, so one Painter can serve any number of
// overlapping effects.
type Painter struct {
	Surface Surface
	Rand    Rand
	// Frames animates drips. When nil each drip is painted to completion
	// before the generator returns.
	Frames Scheduler
}

// NewPainter returns a Painter over s. A nil r falls back to DefaultRand.
func NewPainter(s Surface, r Rand, frames Scheduler) *Painter {
	if r == nil {
		r = DefaultRand
	}
	return &Painter{Surface: s, Rand: r, Frames: frames}
}

// ready reports whether there is anything to paint on.
func (p *Painter) ready() bool {
	return p != nil && p.Surface != nil
}

func (p *Painter) rand() Rand {
	if p == nil || p.Rand == nil {
		return DefaultRand
	}
	return p.Rand
}

func (p *Painter) schedule(s Stepper) {
	if p.Frames == nil {
		RunToCompletion(s)
		return
	}
	p.Frames.Schedule(s)
}
