package paint

import "math"

// SplashStyle selects how every drop of one splash is shaped.
type SplashStyle int

const (
	// SplashStreaks are thin ellipses stretched along the throw direction.
	SplashStreaks SplashStyle = iota
	// SplashBlots are irregular polygons.
	SplashBlots
	// SplashDots are round drops.
	SplashDots
	// SplashDrops are round drops, slightly larger on average.
	SplashDrops

	numSplashStyles = 4
)

// dropSize returns the size range of a drop for the style.
func (s SplashStyle) dropSize() (lo, hi float64) {
	switch s {
	case SplashStreaks:
		return 1, 4
	case SplashBlots:
		return 3, 11
	case SplashDots:
		return 0.5, 6.5
	default:
		return 2, 7
	}
}

const (
	splashHaloAlpha = 0.1
	splashHaloScale = 0.7
	splashDripOdds  = 0.3
)

// Splash scatters drops radially around at. One style governs every drop
// of the call; some drops start drips and a faint halo covers the centre.
func (p *Painter) Splash(at Point, c Color) {
	if !p.ready() {
		return
	}
	r := p.rand()
	s := p.Surface

	style := SplashStyle(intBetween(r, 0, numSplashStyles))
	drops := intBetween(r, 15, 55)
	force := between(r, 30, 130)
	lo, hi := style.dropSize()

	for i := 0; i < drops; i++ {
		angle := 2 * math.Pi * float64(i) / float64(drops)
		drop := at.Polar(angle, force*between(r, 0.5, 1.5))
		size := between(r, lo, hi)

		alpha := between(r, 0.1, 0.6)

		s.SetFill(c)
		s.SetAlpha(alpha)
		switch style {
		case SplashStreaks:
			s.FillEllipse(drop, size*3, math.Max(size/2, minRadius), angle)
		case SplashBlots:
			s.FillPolygon(blot(r, drop, size))
		default:
			s.FillCircle(drop, size)
		}

		// Second stamp on top thickens the drop.
		s.SetFill(c)
		s.SetAlpha(alpha)
		s.FillCircle(drop, size)

		if chance(r, splashDripOdds) {
			p.Drip(drop, c)
		}
	}

	s.SetFill(c)
	s.SetAlpha(splashHaloAlpha)
	s.FillCircle(at, force*splashHaloScale)
}

// blot samples an irregular outline around center.
func blot(r Rand, center Point, size float64) []Point {
	n := intBetween(r, 5, 9)
	pts := make([]Point, 0, n)
	for j := 0; j < n; j++ {
		a := 2 * math.Pi * float64(j) / float64(n)
		pts = append(pts, center.Polar(a, size*between(r, 0.8, 1.2)))
	}
	return pts
}
