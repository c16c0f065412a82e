package state

import "sync/atomic"

// the four states a Deferred can be in. The order matters: Done is the only
// terminal value, and every other value can still transition somewhere.
const (
	Pending int32 = iota
	Running
	Paused
	Done
)

func String(s int32) string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Done:
		return "done"
	default:
		return "<unknown state>"
	}
}

// Word is the atomic state word embedded in every Deferred.
// The zero Word is Pending, so a Deferred's zero value starts out pending
// without any explicit initialization.
type Word struct {
	v atomic.Int32
}

// Load returns the current state.
func (w *Word) Load() int32 {
	return w.v.Load()
}

// CAS attempts to move the state from old to new, returning whether it won
// the race. Multiple goroutines may call CAS concurrently; exactly one wins
// any given transition.
func (w *Word) CAS(old, new int32) bool {
	return w.v.CompareAndSwap(old, new)
}

// TryRun moves Pending or Paused to Running, the state a caller must be in
// to begin draining the callback chain. It returns false if some other
// goroutine already holds Running or the Deferred is Done.
func (w *Word) TryRun() bool {
	return w.v.CompareAndSwap(Pending, Running) || w.v.CompareAndSwap(Paused, Running)
}

// TryPause moves Running to Paused. Only the goroutine currently draining
// the chain may call this, and only while it holds Running.
func (w *Word) TryPause() bool {
	return w.v.CompareAndSwap(Running, Paused)
}

// TryDone moves Running to Done.
func (w *Word) TryDone() bool {
	return w.v.CompareAndSwap(Running, Done)
}

// ForceRunning stores Running unconditionally. It exists only for the one
// transition the append path makes non-CAS: moving a Done Deferred back to
// Running to drain a newly appended link. That transition is already
// serialized by the Deferred's own mutex, so no caller can observe a lost
// update; CAS would just be a slower way to write the same bit.
func (w *Word) ForceRunning() {
	w.v.Store(Running)
}

// InitDone stores Done unconditionally. Used only by the "ready" factory
// constructors, before the Deferred has been handed to any caller - there's
// no concurrent access yet for a CAS to protect against.
func (w *Word) InitDone() {
	w.v.Store(Done)
}

// IsDone reports whether the state is Done.
func (w *Word) IsDone() bool {
	return w.v.Load() == Done
}

// IsPaused reports whether the state is Paused.
func (w *Word) IsPaused() bool {
	return w.v.Load() == Paused
}
