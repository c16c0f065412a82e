// Copyright (c) 2010 StumbleUpon, Inc.  All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//   - Redistributions of source code must retain the above copyright notice,
//     this list of conditions and the following disclaimer.
//   - Redistributions in binary form must reproduce the above copyright notice,
//     this list of conditions and the following disclaimer in the documentation
//     and/or other materials provided with the distribution.
//   - Neither the name of StumbleUpon nor the names of its contributors
//     may be used to endorse or promote products derived from this software
//     without specific prior written permission.
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED.  IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package async provides Deferred, an asynchronous-result holder with a
// dynamically appended callback chain, and Group, which demultiplexes many
// Deferreds into one.
//
// A Deferred starts out pending. Callers append links to it with
// AddCallbacks (or its OnSuccess/OnError/OnBoth/Chain shorthands) at any
// time, including after the Deferred has already completed. Exactly one
// caller drives a Deferred to completion with Complete; from that point on,
// whichever goroutine holds the Deferred drains its chain synchronously,
// link by link, passing the transformed value (or error) from one link to
// the next.
//
// A link may itself return another *Deferred. When that happens the chain
// suspends transparently until the inner Deferred settles, then resumes
// with the inner's value substituted for the inner Deferred itself - the
// next link never observes a *Deferred as its input.
//
// The package creates no goroutines and starts no timers on its own. The
// only blocking operation is Join (and its uninterruptible variant), and
// even those only block the calling goroutine.
//
// # States and fates
//
// A Deferred's state is one of pending, running, paused, or done. Pending
// is the state before the first Complete call. Running is the state while
// a goroutine is draining the chain. Paused is the state while the chain is
// suspended on an inner Deferred. Done is the settled state - once reached,
// the Deferred never returns to pending or paused, though appending a new
// link to a done Deferred transiently revisits running for exactly as long
// as it takes to drain what was just appended, and a Deferred waiting on
// this one briefly holds it in running while copying out its result.
package async
