package paint

import "math"

// minRadius keeps drip and splash radii strictly positive.
const minRadius = 0.1

// Drip is a falling, wobbling teardrop painted one ellipse per step. The
// fall accelerates: momentum grows by gravity each step and the vertical
// advance grows with it, so a drip stops when it has travelled its length
// rather than after a fixed number of stamps.
type Drip struct {
	surface Surface
	rand    Rand

	origin   Point
	color    Color
	length   float64
	width    float64
	gravity  float64
	waviness float64

	currentY float64
	momentum float64
	steps    int
}

// NewDrip prepares a drip at origin. Nothing is painted until Step.
func NewDrip(s Surface, r Rand, origin Point, c Color) *Drip {
	return &Drip{
		surface:  s,
		rand:     r,
		origin:   origin,
		color:    c,
		length:   between(r, 30, 230),
		width:    between(r, 1, 13),
		gravity:  between(r, 0.5, 2),
		waviness: between(r, 0.05, 0.25),
		currentY: origin.Y,
	}
}

// Step paints one ellipse and advances the drip.
func (d *Drip) Step() StepResult {
	if d.surface == nil || !d.origin.Finite() || d.currentY >= d.origin.Y+d.length {
		return Done
	}

	d.momentum += d.gravity
	wobble := math.Sin(d.currentY*d.waviness) * (d.width + d.momentum)
	rx, ry := dripRadii(d.width, d.momentum)

	d.surface.SetFill(d.color)
	d.surface.SetAlpha(between(d.rand, 0.05, 0.45))
	d.surface.FillEllipse(Pt(d.origin.X+wobble, d.currentY), rx, ry, 0)

	d.currentY += d.gravity + d.rand.Float64()*d.momentum
	d.steps++
	return Continue
}

// Steps returns how many ellipses the drip has painted.
func (d *Drip) Steps() int { return d.steps }

// Length is the distance the drip falls before it stops.
func (d *Drip) Length() float64 { return d.length }

// Gravity is the per-step momentum increment.
func (d *Drip) Gravity() float64 { return d.gravity }

// dripRadii widens the drop horizontally and flattens it vertically as
// momentum builds, never below minRadius.
func dripRadii(width, momentum float64) (rx, ry float64) {
	rx = math.Max((width+momentum)/2, minRadius)
	ry = math.Max((width-momentum/2)/2, minRadius)
	return rx, ry
}

// Drip starts a drip at the given point.
func (p *Painter) Drip(at Point, c Color) {
	if !p.ready() {
		return
	}
	p.schedule(NewDrip(p.Surface, p.rand(), at, c))
}
