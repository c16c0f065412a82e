package async

import (
	"fmt"
	"sync"

	"github.com/OpenTSDB/async/internal/state"
)

// maxChainPairs bounds the number of (onSuccess, onError) pairs a single
// Deferred's chain may hold at once. The reference implementation this
// package is grounded on uses the same bound.
const maxChainPairs = 16383

const maxChainEntries = maxChainPairs * 2

const initialChainCap = 8

// Link is a unary transformation registered on a Deferred. It receives the
// chain's current carried value and returns the next one.
//
// A Link observes an error-kind value (one satisfying the error interface)
// exactly when it is invoked as an error-path link; returning a non-error
// value moves the chain back onto the success path for the next link.
// Returning an error-kind value moves the chain onto the error path.
// Returning a *Deferred suspends the chain until that Deferred settles; the
// link that follows never sees the *Deferred itself, only its eventual
// value.
type Link func(v any) any

func identity(v any) any { return v }

// Deferred is an asynchronous-result holder with a dynamically appended,
// ordered callback chain. The zero value is not usable; construct one with
// New, OfValue, or OfError.
type Deferred struct {
	st state.Word

	// mu guards chain, cursor, and end. It is the deferred's "intrinsic
	// lock" from the design this package follows: the append path and the
	// drain path are serialized through it, never through the state word
	// alone.
	mu     sync.Mutex
	chain  []Link
	cursor int
	end    int

	// result is read or written only by whichever goroutine currently holds
	// Running, or by a goroutine that has just CAS'd Done->Running to steal
	// it (see suspendOn). The state word's atomic transitions bracket every
	// access and establish the happens-before edge that makes this safe.
	result any

	// done is closed exactly once - on the Deferred's first transition to
	// Done - regardless of how many times drain later re-runs because a
	// caller kept appending callbacks after it settled. Join and its
	// variants wait on it instead of polling.
	done      chan struct{}
	closeDone sync.Once
}

// New returns a pending Deferred with an empty chain.
func New() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// OfValue returns a Deferred that is already done, carrying v as its
// current carried value. If v is itself an error-kind value, it is carried
// exactly as OfError would carry it: error-path links run on it and Join
// returns it as the error.
func OfValue(v any) *Deferred {
	d := &Deferred{done: make(chan struct{}), result: v}
	d.st.InitDone()
	d.closeDone.Do(func() { close(d.done) })
	return d
}

// OfError returns a Deferred that is already done, carrying err as its
// error value.
func OfError(err error) *Deferred {
	d := &Deferred{done: make(chan struct{}), result: err}
	d.st.InitDone()
	d.closeDone.Do(func() { close(d.done) })
	return d
}

// IsErrorKind reports whether v is an error-kind carried value: a non-nil
// value satisfying the error interface. It mirrors the instanceof check the
// reference implementation uses to decide which path of the chain a value
// belongs on.
func IsErrorKind(v any) bool {
	if v == nil {
		return false
	}
	_, ok := v.(error)
	return ok
}

// String renders a cheap, one-line summary of the deferred's current state
// and, once resolved, its result. It never walks the chain, so it's safe to
// call from a debugger or a log line without touching the lock.
func (d *Deferred) String() string {
	s := d.st.Load()
	if s != state.Done {
		return "Deferred(" + state.String(s) + ")"
	}
	return "Deferred(done, result=" + fmtResult(d.result) + ")"
}

func fmtResult(v any) string {
	if v == nil {
		return "<nil>"
	}
	if err, ok := v.(error); ok {
		return "error(" + err.Error() + ")"
	}
	return fmt.Sprintf("%v", v)
}

// AddCallbacks appends a (onSuccess, onError) pair to the chain. If the
// Deferred is already done, the pair is not stored in the chain array at
// all: it is invoked immediately, on the caller's goroutine, and the caller
// keeps draining anything that was or is concurrently appended until the
// chain empties again.
func (d *Deferred) AddCallbacks(onSuccess, onError Link) *Deferred {
	if onSuccess == nil || onError == nil {
		panic(newProgrammingError("AddCallbacks", "nil link"))
	}

	d.mu.Lock()
	if d.st.Load() != state.Done {
		if !d.appendLocked(onSuccess, onError) {
			d.mu.Unlock()
			panic(ErrChainOverflow)
		}
		d.mu.Unlock()
		return d
	}

	// The deferred is done. This Done->Running transition is a plain store,
	// not a CAS: it's already serialized by mu, so no concurrent caller can
	// observe or cause a lost update here.
	d.st.ForceRunning()
	d.mu.Unlock()

	next := invokeSelected(d.result, onSuccess, onError)
	if inner, ok := next.(*Deferred); ok {
		d.suspendOn(inner)
		return d
	}
	d.result = next
	d.drain()
	return d
}

// OnSuccess appends cb on the success path; the error path is left
// untouched by an identity link.
func (d *Deferred) OnSuccess(cb Link) *Deferred {
	return d.AddCallbacks(cb, identity)
}

// OnError appends eb on the error path; the success path is left untouched
// by an identity link.
func (d *Deferred) OnError(eb Link) *Deferred {
	return d.AddCallbacks(identity, eb)
}

// OnBoth appends the same link on both paths.
func (d *Deferred) OnBoth(cb Link) *Deferred {
	return d.AddCallbacks(cb, cb)
}

// Chain appends a link, on both paths, that completes other with the
// current carried value and returns that value unchanged. It's useful for
// fanning one deferred's result out to several independent followers
// without routing them all through Group:
//
//	src := async.New()
//	a, b := async.New(), async.New()
//	src.Chain(a)
//	src.Chain(b)
//	src.Complete(1) // both a and b complete with 1
//
// Chaining a Deferred to itself is a programming error.
func (d *Deferred) Chain(other *Deferred) *Deferred {
	if other == d {
		panic(newProgrammingError("Chain", "deferred cannot be chained to itself"))
	}
	link := func(v any) any {
		other.Complete(v)
		return v
	}
	return d.AddCallbacks(link, link)
}

// Complete posts the initial carried value and drains the chain. Calling
// Complete a second time on the same Deferred is a programming error. If v
// is itself a *Deferred, the chain suspends until that Deferred settles
// before any link of this chain runs - completing with a deferred is a
// deliberate extension over primitives that forbid it.
func (d *Deferred) Complete(v any) {
	if inner, ok := v.(*Deferred); ok && inner == d {
		panic(newProgrammingError("Complete", "deferred cannot be completed with itself"))
	}

	if !d.st.CAS(state.Pending, state.Running) {
		panic(newProgrammingError("Complete", "deferred already completed"))
	}

	if inner, ok := v.(*Deferred); ok {
		d.suspendOn(inner)
		return
	}

	d.result = v
	d.drain()
}

// invokeSelected runs whichever of ok/errLink applies to the current
// carried value v.
func invokeSelected(v any, ok, errLink Link) any {
	if IsErrorKind(v) {
		return errLink(v)
	}
	return ok(v)
}

// drain runs the chain to exhaustion. The caller must already hold Running
// (or have just transitioned into it) before calling drain; drain itself
// only ever moves Running->Paused (via suspendOn) or Running->Done.
func (d *Deferred) drain() {
	for {
		d.mu.Lock()
		ok, errLink, has := d.popLocked()
		if !has {
			// The emptiness check and the Running->Done transition happen
			// under the same lock acquisition as each other, so a
			// concurrent AddCallbacks either appends before we get here (in
			// which case popLocked above would have found it) or blocks on
			// mu until after we've moved to Done and released it - at which
			// point it takes the "already done" path and drains the link
			// itself. There is no window where an append is silently lost.
			if !d.st.TryDone() {
				d.mu.Unlock()
				panic(newProgrammingError("drain", "unexpected state at chain end"))
			}
			d.mu.Unlock()
			d.closeDone.Do(func() { close(d.done) })
			return
		}
		d.mu.Unlock()

		next := invokeSelected(d.result, ok, errLink)

		if inner, isInner := next.(*Deferred); isInner {
			d.suspendOn(inner)
			return
		}
		d.result = next
	}
}

// popLocked removes and returns the next pair, dropping the chain's
// references to it immediately so any resources the links were holding can
// be released as soon as they've run. Callers must hold mu.
func (d *Deferred) popLocked() (ok, errLink Link, has bool) {
	if d.cursor >= d.end {
		return nil, nil, false
	}
	ok, errLink = d.chain[d.cursor], d.chain[d.cursor+1]
	d.chain[d.cursor], d.chain[d.cursor+1] = nil, nil
	d.cursor += 2
	return ok, errLink, true
}

// appendLocked stores a pair at the tail of the chain, growing (and, if
// needed, compacting the live window to index 0) as it goes. It reports
// false if doing so would exceed maxChainPairs; the chain is left
// unmodified in that case. Callers must hold mu.
func (d *Deferred) appendLocked(ok, errLink Link) bool {
	if d.end+2 > cap(d.chain) {
		live := d.end - d.cursor
		if live > 0 && d.cursor > 0 {
			copy(d.chain[:live], d.chain[d.cursor:d.end])
		}
		d.cursor = 0
		d.end = live

		if d.end+2 > maxChainEntries {
			return false
		}

		newCap := cap(d.chain) * 2
		if newCap == 0 {
			newCap = initialChainCap
		}
		for newCap < d.end+2 {
			newCap *= 2
		}
		if newCap > maxChainEntries {
			newCap = maxChainEntries
		}

		grown := make([]Link, d.end, newCap)
		copy(grown, d.chain[:d.end])
		d.chain = grown
	}

	d.chain = d.chain[:d.end+2]
	d.chain[d.end] = ok
	d.chain[d.end+1] = errLink
	d.end += 2
	return true
}
