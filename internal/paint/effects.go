package paint

import "math"

// Pour lets eight drips fall from a short band around at.
func (p *Painter) Pour(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	for i := 0; i < 8; i++ {
		p.Drip(at.Add(between(r, -50, 50), between(r, 0, 30)), c)
	}
}

// Explosion throws eight splashes 45 degrees apart.
func (p *Painter) Explosion(at Point, c Color) {
	if !p.ready() {
		return
	}
	power := between(p.rand(), 50, 200)
	for i := 0; i < 8; i++ {
		p.Splash(at.Polar(2*math.Pi*float64(i)/8, power), c)
	}
}

// Spiral drips along an outward spiral of 100 samples.
func (p *Painter) Spiral(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	const samples = 100
	turns := between(r, 2, 5)
	radius := between(r, 2, 5)
	for i := 0; i < samples; i++ {
		t := float64(i) / samples
		radius++
		p.Drip(at.Polar(t*2*math.Pi*turns, radius), c)
	}
}

// Wave drips along a sine curve, one sample every two pixels.
func (p *Painter) Wave(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	width := between(r, 200, 500)
	amplitude := between(r, 30, 80)
	frequency := between(r, 0.02, 0.05)
	for i := 0.0; i < width; i += 2 {
		p.Drip(at.Add(i, math.Sin(i*frequency)*amplitude), c)
	}
}

// Bubble drips along concentric, slightly wobbly rings.
func (p *Painter) Bubble(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	size := between(r, 20, 80)
	rings := intBetween(r, 5, 10)
	for i := 0; i < rings; i++ {
		radius := size * float64(i) / float64(rings)
		n := int(10 + radius)
		for j := 0; j < n; j++ {
			a := 2 * math.Pi * float64(j) / float64(n)
			p.Drip(at.Polar(a, radius+between(r, 0, 5)), c)
		}
	}
}

// Lightning splashes along a jagged bolt running 300px down from at.
func (p *Painter) Lightning(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	const (
		drop      = 300
		maxOffset = 50
		substeps  = 10
	)
	segments := intBetween(r, 8, 14)
	cur := at
	for i := 0; i < segments; i++ {
		next := cur.Add(between(r, -maxOffset, maxOffset), drop/float64(segments))
		for j := 0; j < substeps; j++ {
			p.Splash(cur.Lerp(next, float64(j)/substeps), c)
		}
		cur = next
	}
}

// Firework sets off three explosions, each in its own color. The color
// argument is ignored.
func (p *Painter) Firework(at Point, _ Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	for i := 0; i < 3; i++ {
		p.Explosion(at.Add(between(r, -100, 100), between(r, -100, 100)), RandomColor(r))
	}
}

// Rain drops ten drips of different colors from the top edge, spread over
// the whole width of the surface.
func (p *Painter) Rain(at Point, _ Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	w, _ := p.Surface.Bounds()
	for i := 0; i < 10; i++ {
		x := at.X
		if w > 0 {
			x = between(r, 0, w)
		}
		p.Drip(Pt(x, 0), RandomColor(r))
	}
}

// Tornado splashes along a widening spiral arm.
func (p *Painter) Tornado(at Point, c Color) {
	if !p.ready() {
		return
	}
	for i := 0; i < 20; i++ {
		p.Splash(at.Polar(float64(i)*0.5, 50+float64(i)*5), c)
	}
}

// Helix drips along four turns of a spiral growing to 105px.
func (p *Painter) Helix(at Point, c Color) {
	if !p.ready() {
		return
	}
	const samples = 50
	for i := 0; i < samples; i++ {
		t := float64(i) / samples
		p.Drip(at.Polar(t*8*math.Pi, 5+t*100), c)
	}
}

// Meteor scatters thirty splashes within 200px.
func (p *Painter) Meteor(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	for i := 0; i < 30; i++ {
		p.Splash(at.Polar(between(r, 0, 2*math.Pi), between(r, 0, 200)), c)
	}
}

// Nebula scatters forty drips of different colors within 150px.
func (p *Painter) Nebula(at Point, _ Color) {
	p.cloud(at, 40, 150)
}

// Crystal scatters forty drips of different colors within 100px.
func (p *Painter) Crystal(at Point, _ Color) {
	p.cloud(at, 40, 100)
}

func (p *Painter) cloud(at Point, n int, spread float64) {
	if !p.ready() {
		return
	}
	r := p.rand()
	for i := 0; i < n; i++ {
		p.Drip(at.Polar(between(r, 0, 2*math.Pi), between(r, 0, spread)), RandomColor(r))
	}
}

// Burst rings at with evenly spaced splashes.
func (p *Painter) Burst(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	n := intBetween(r, 10, 20)
	for i := 0; i < n; i++ {
		p.Splash(at.Polar(2*math.Pi*float64(i)/float64(n), between(r, 40, 100)), c)
	}
}
