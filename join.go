package async

import (
	"context"
	"time"
)

// oneYear is the threshold past which a Join timeout is accepted but
// logged as suspicious - almost certainly a units mistake (milliseconds
// passed where a Duration was expected, say), but not something the core
// rejects outright.
const oneYear = 365 * 24 * time.Hour

// Join blocks the calling goroutine until d is done, or until ctx is
// canceled, or until timeout elapses, whichever comes first. A timeout of 0
// means no deadline. A negative timeout is a programming error.
//
// It returns d's success value, or a nil value and d's carried error if d
// completed with an error-kind value. If ctx is canceled first, it returns
// ctx.Err(). If the timeout elapses first, it returns ErrJoinTimeout.
//
// ctx cancellation is this package's analog of interrupting the waiting
// thread: it only ever affects this call's wait, never d itself, which goes
// on draining regardless of who's still waiting on it.
func (d *Deferred) Join(ctx context.Context, timeout time.Duration) (any, error) {
	checkTimeout(timeout)

	select {
	case <-d.done:
		return outcome(d)
	default:
	}

	var timeoutCh <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timeoutCh = t.C
	}

	select {
	case <-d.done:
		return outcome(d)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeoutCh:
		return nil, ErrJoinTimeout
	}
}

// JoinUninterruptible is like Join but accepts no context: there is nothing
// for a caller to cancel, only the timeout (if any) can end the wait early.
// A timeout of 0 means this call blocks until d is done, with no deadline
// at all.
func (d *Deferred) JoinUninterruptible(timeout time.Duration) (any, error) {
	checkTimeout(timeout)

	select {
	case <-d.done:
		return outcome(d)
	default:
	}

	if timeout <= 0 {
		<-d.done
		return outcome(d)
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-d.done:
		return outcome(d)
	case <-t.C:
		return nil, ErrJoinTimeout
	}
}

func checkTimeout(timeout time.Duration) {
	if timeout < 0 {
		panic(newProgrammingError("Join", "negative timeout"))
	}
	if timeout > oneYear {
		debugf("join timeout %s exceeds one year; proceeding anyway", timeout)
	}
}

func outcome(d *Deferred) (any, error) {
	if err, ok := d.result.(error); ok {
		return nil, err
	}
	return d.result, nil
}
