package paint

import "math"

const (
	strokeStamps    = 25
	strokeDripOdds  = 0.15
	numStrokeStyles = 3
)

// Stroke paints a brush mark from one point to the next in one of three
// randomly chosen styles: dynamic ellipses, broken dots or a scatter of
// three dots across the direction of travel.
func (p *Painter) Stroke(from, to Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	s := p.Surface

	style := intBetween(r, 0, numStrokeStyles)
	base := between(r, 3, 7)
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)

	for i := 0; i < strokeStamps; i++ {
		at := from.Lerp(to, float64(i)/strokeStamps)
		alpha := between(r, 0.1, 0.5)
		size := base * between(r, 0.5, 1.5)

		switch style {
		case 0:
			s.SetFill(c)
			s.SetAlpha(alpha)
			s.FillEllipse(at.Add(between(r, -2, 2), between(r, -2, 2)), size*2, size/2, angle)
		case 1:
			s.SetFill(c)
			s.SetAlpha(alpha)
			s.FillCircle(at.Polar(angle, between(r, -3, 3)), size)
		default:
			for j := 0; j < 3; j++ {
				s.SetFill(c)
				s.SetAlpha(alpha)
				s.FillCircle(at.Polar(angle+math.Pi/2, between(r, -4, 4)), size*0.7)
			}
		}

		if chance(r, strokeDripOdds) {
			p.Drip(at, c)
		}
	}
}
