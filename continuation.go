package async

import "github.com/OpenTSDB/async/internal/state"

// suspendOn implements the continuation protocol for a link (or the initial
// value passed to Complete) that yielded inner instead of a plain value.
// The caller must currently hold Running on d.
//
// Fast path: if inner is already done, its result is stolen without
// allocating a resume link, and d's drain loop simply continues with that
// value - no pause is observed from the outside.
//
// Slow path: d moves to Paused and a resume link is attached to inner; that
// link fires, on whichever goroutine eventually completes inner, once
// inner's own chain reaches it.
func (d *Deferred) suspendOn(inner *Deferred) {
	if inner == d {
		panic(newProgrammingError("Complete", "deferred cannot depend on itself"))
	}

	if v, ok := stealIfDone(inner); ok {
		d.result = v
		d.drain()
		return
	}

	if !d.st.TryPause() {
		panic(newProgrammingError("Complete", "resume attempted while not running"))
	}
	d.attachResume(inner)
}

// stealIfDone attempts the fast-path CAS: Done->Running on inner. On
// success, the caller has exclusive access to inner.result for exactly long
// enough to copy it out, after which inner is put back to Done.
func stealIfDone(inner *Deferred) (any, bool) {
	if !inner.st.CAS(state.Done, state.Running) {
		return nil, false
	}
	v := inner.result
	if !inner.st.TryDone() {
		panic(newProgrammingError("Complete", "unexpected state while stealing inner result"))
	}
	return v, true
}

// attachResume registers the link that will resume d once inner settles. d
// must currently be Paused.
func (d *Deferred) attachResume(inner *Deferred) {
	var resume Link
	resume = func(v any) any {
		if nested, ok := v.(*Deferred); ok {
			if nested == d {
				panic(newProgrammingError("Complete", "deferred cannot depend on itself"))
			}
			// inner itself suspended on yet another deferred before handing
			// us a plain value; keep waiting, now on that one instead.
			d.attachResume(nested)
			return v
		}

		if !d.st.CAS(state.Paused, state.Running) {
			panic(newProgrammingError("Complete", "resume attempted while not paused"))
		}
		d.result = v
		d.drain()
		return v
	}
	inner.AddCallbacks(resume, resume)
}
