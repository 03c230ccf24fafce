package paint

import (
	"math"
	"testing"
)

type countingSurface struct {
	ellipses int
	minRX    float64
	minRY    float64
}

func (s *countingSurface) SetFill(Color)              {}
func (s *countingSurface) SetAlpha(float64)           {}
func (s *countingSurface) FillCircle(Point, float64)  {}
func (s *countingSurface) FillPolygon([]Point)        {}
func (s *countingSurface) Bounds() (float64, float64) { return 800, 600 }

func (s *countingSurface) FillEllipse(_ Point, rx, ry, _ float64) {
	if s.ellipses == 0 || rx < s.minRX {
		s.minRX = rx
	}
	if s.ellipses == 0 || ry < s.minRY {
		s.minRY = ry
	}
	s.ellipses++
}

func TestDripRadii(t *testing.T) {
	tests := []struct {
		name            string
		width, momentum float64
		wantRX, wantRY  float64
	}{
		{"at rest", 10, 0, 5, 5},
		{"some momentum", 10, 4, 7, 4},
		{"flattened", 2, 8, 5, minRadius},
		{"negative width", -5, 1, minRadius, minRadius},
		{"huge momentum", 1, 1e6, 500000.5, minRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := dripRadii(tt.width, tt.momentum)
			if math.Abs(rx-tt.wantRX) > 1e-9 || math.Abs(ry-tt.wantRY) > 1e-9 {
				t.Errorf("dripRadii(%v, %v) = (%v, %v), want (%v, %v)", tt.width, tt.momentum, rx, ry, tt.wantRX, tt.wantRY)
			}
		})
	}
}

func TestDripTerminatesWithinBound(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s := &countingSurface{}
		d := NewDrip(s, NewSeededRand(seed), Pt(100, 50), HSL(10, 80, 50))

		steps := RunToCompletion(d)

		bound := int(math.Ceil(d.Length() / 0.5))
		if steps == 0 || steps > bound {
			t.Fatalf("seed %d: %d steps, want 1..%d", seed, steps, bound)
		}
		if steps != d.Steps() || steps != s.ellipses {
			t.Fatalf("seed %d: steps=%d Steps()=%d ellipses=%d", seed, steps, d.Steps(), s.ellipses)
		}
		if s.minRX < minRadius || s.minRY < minRadius {
			t.Fatalf("seed %d: radius below clamp: rx=%v ry=%v", seed, s.minRX, s.minRY)
		}
		if d.Step() != Done {
			t.Fatalf("seed %d: finished drip stepped again", seed)
		}
	}
}

func TestDripParameterRanges(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		d := NewDrip(&countingSurface{}, NewSeededRand(seed), Pt(0, 0), Color{})
		if d.length < 30 || d.length >= 230 {
			t.Errorf("length %v out of [30,230)", d.length)
		}
		if d.gravity < 0.5 || d.gravity >= 2 {
			t.Errorf("gravity %v out of [0.5,2)", d.gravity)
		}
		if d.width < 1 || d.width >= 13 {
			t.Errorf("width %v out of [1,13)", d.width)
		}
	}
}

func TestDripNonFiniteOrigin(t *testing.T) {
	s := &countingSurface{}
	for _, at := range []Point{Pt(math.NaN(), 0), Pt(0, math.Inf(1)), Pt(math.Inf(-1), math.NaN())} {
		d := NewDrip(s, NewSeededRand(1), at, Color{})
		if got := d.Step(); got != Done {
			t.Errorf("Step() at %v = %v, want done", at, got)
		}
	}
	if s.ellipses != 0 {
		t.Errorf("painted %d ellipses for non-finite origins", s.ellipses)
	}
}

func TestDripWithoutSurface(t *testing.T) {
	d := NewDrip(nil, NewSeededRand(1), Pt(1, 1), Color{})
	if d.Step() != Done {
		t.Error("drip without a surface should be done immediately")
	}
}
