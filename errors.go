package async

import "fmt"

// ProgrammingError signals a misuse of the Deferred API: double-Complete,
// self-reference, a nil link, chain overflow, a negative Join timeout, or a
// resume attempted while the Deferred wasn't Paused. It is always raised via
// panic, never returned as an error - these are invariant violations in the
// caller's code, not carried outcomes the chain can recover from.
type ProgrammingError struct {
	Op  string
	Msg string
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("async: %s: %s", e.Op, e.Msg)
}

func newProgrammingError(op, msg string) *ProgrammingError {
	return &ProgrammingError{Op: op, Msg: msg}
}

// ErrChainOverflow is the ProgrammingError raised when a Deferred's chain
// would grow past maxChainPairs. It's exposed separately from the generic
// ProgrammingError message so callers that recover a panic can identify
// this specific cause with errors.Is.
var ErrChainOverflow = newProgrammingError("AddCallbacks", "chain overflow")

// ErrJoinTimeout is returned by Join and JoinUninterruptible when their
// deadline elapses before the Deferred settles. It is a carried outcome of
// the join call, not of the Deferred itself - the Deferred keeps running.
var ErrJoinTimeout = fmt.Errorf("async: join timed out before the deferred settled")
