package input

import (
	"time"

	"github.com/charmbracelet/log"

	"PollockBoard/internal/anim"
)

// DefaultDelay separates consecutive commands of a sequence.
const DefaultDelay = 300 * time.Millisecond

// Sequencer replays a typed command string one character at a time.
type Sequencer struct {
	Delay  time.Duration
	Timer  anim.Timer
	logger *log.Logger
}

// NewSequencer returns a sequencer firing through timer. A zero delay uses
// DefaultDelay.
func NewSequencer(delay time.Duration, timer anim.Timer, logger *log.Logger) *Sequencer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if timer == nil {
		timer = anim.RealTimer{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Sequencer{Delay: delay, Timer: timer, logger: logger}
}

// Play schedules fire for the i-th character of seq at i*Delay and returns
// the number of characters scheduled. Play does not wait; commands from an
// earlier sequence may still be running.
func (q *Sequencer) Play(seq string, fire func(r rune)) int {
	n := 0
	for _, r := range seq {
		q.Timer.AfterFunc(time.Duration(n)*q.Delay, func() { fire(r) })
		n++
	}
	if n > 0 {
		q.logger.Debug("sequence scheduled", "commands", n, "span", time.Duration(n-1)*q.Delay)
	}
	return n
}
