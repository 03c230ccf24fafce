package state

import (
	"testing"

	"PollockBoard/internal/paint"
)

func TestEmitStampsInvocations(t *testing.T) {
	a := Emit(Invocation{Effect: paint.EffectSplash})
	b := Emit(Invocation{Effect: paint.EffectDrip, Session: "pointer-session"})

	if b.Seq <= a.Seq {
		t.Errorf("sequence numbers not increasing: %d then %d", a.Seq, b.Seq)
	}
	if a.Session != ProcessID() {
		t.Errorf("Session = %q, want process ID %q", a.Session, ProcessID())
	}
	if b.Session != "pointer-session" {
		t.Errorf("Session = %q, want the given session", b.Session)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		if ids[id] {
			t.Fatalf("duplicate session ID %s", id)
		}
		ids[id] = true
	}
	if ProcessID() == "" || ids[ProcessID()] {
		t.Error("process ID should be set and distinct")
	}
}

func TestDrawSessionEffect(t *testing.T) {
	var s DrawSession
	if got := s.Effect(); got != paint.EffectSplash {
		t.Errorf("Effect() = %q, want splash", got)
	}
	s.LastEffect = paint.EffectHelix
	if got := s.Effect(); got != paint.EffectHelix {
		t.Errorf("Effect() = %q, want helix", got)
	}
}
