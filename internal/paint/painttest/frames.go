package painttest

import "PollockBoard/internal/paint"

// Frames is a paint.Scheduler that only collects Steppers, so a test can
// look at what an effect painted synchronously before any animation runs.
type Frames struct {
	Steppers []paint.Stepper
}

func (f *Frames) Schedule(s paint.Stepper) {
	f.Steppers = append(f.Steppers, s)
}

// Drain runs every collected Stepper to completion and returns the total
// number of steps.
func (f *Frames) Drain() int {
	n := 0
	for _, s := range f.Steppers {
		n += paint.RunToCompletion(s)
	}
	f.Steppers = nil
	return n
}

// Seeded returns a deterministic paint.Rand for tests.
func Seeded(seed uint64) paint.Rand {
	return paint.NewSeededRand(seed)
}
