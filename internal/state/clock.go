package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	processID = uuid.NewString()
	sequence  uint64
)

func nextSeq() uint64 {
	return atomic.AddUint64(&sequence, 1)
}

// ProcessID identifies this run of the application.
func ProcessID() string {
	return processID
}

// NewSessionID returns a fresh drawing session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// Emit stamps inv with the next sequence number. A missing session falls
// back to the process ID.
func Emit(inv Invocation) Invocation {
	inv.Seq = nextSeq()
	if inv.Session == "" {
		inv.Session = processID
	}
	return inv
}
