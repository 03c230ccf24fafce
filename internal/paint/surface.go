package paint

// Surface is the raster the generators paint on. Paint state is explicit:
// every primitive must be preceded by SetFill and SetAlpha from the same
// caller, nothing is assumed to persist between generators.
type Surface interface {
	SetFill(c Color)
	SetAlpha(a float64)
	FillEllipse(center Point, rx, ry, rotation float64)
	FillCircle(center Point, r float64)
	FillPolygon(points []Point)
	Bounds() (width, height float64)
}

// StepResult tells a scheduler whether a Stepper wants another frame.
type StepResult int

const (
	Continue StepResult = iota
	Done
)

func (r StepResult) String() string {
	if r == Done {
		return "done"
	}
	return "continue"
}

// Stepper is an animation that paints a little on each frame.
type Stepper interface {
	Step() StepResult
}

// Scheduler drives Steppers, one Step per frame, until they report Done.
type Scheduler interface {
	Schedule(s Stepper)
}

// maxSteps guards RunToCompletion against a Stepper that never finishes.
const maxSteps = 1 << 16

// RunToCompletion steps s until it is done and returns the number of steps
// that painted.
func RunToCompletion(s Stepper) int {
	n := 0
	for n < maxSteps && s.Step() == Continue {
		n++
	}
	return n
}
