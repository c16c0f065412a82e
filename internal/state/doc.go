// Package state holds the atomic state word shared by every Deferred.
//
// The value is a single int32 that takes exactly four values over the
// lifetime of a Deferred:
//
//	pending -> running -> done
//	running -> paused  -> running (zero or more times, via continuation)
//	done    -> running -> done    (transiently, see below)
//
// Conditional transitions go through compare-and-swap; ForceRunning and
// InitDone are the two plain stores.
//
// pending is the state of a Deferred that hasn't been given a result yet.
// running is the state while the callback chain is being drained. paused is
// the state while a callback's returned Deferred hasn't settled yet. done is
// the settled state: it never goes back to pending or paused, but it briefly
// becomes running again when a link is appended to a done Deferred
// (ForceRunning) or when another Deferred copies out its result (a CAS from
// done to running and back).
//
// Unlike the status word this package is modeled after, there's no lock
// section and no fate/chain-mode bookkeeping: a Deferred has no goroutines of
// its own competing for a callback slot, so the only coordination needed is
// "did I win the transition", which a plain CAS answers directly.
package state
