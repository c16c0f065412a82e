package async

import (
	"fmt"
	"strings"
	"sync"
)

// GroupedError is the error-kind value a group's parent Deferred carries
// when at least one child completed with an error. It holds every child's
// outcome (in the order of the group's outcome list) and the first error
// among them.
type GroupedError struct {
	Outcomes []any
	First    error
}

func (e *GroupedError) Error() string {
	return fmt.Sprintf("async: %d of %d grouped deferreds failed, first error: %s",
		countErrors(e.Outcomes), len(e.Outcomes), e.First)
}

func (e *GroupedError) Unwrap() error { return e.First }

func countErrors(outcomes []any) int {
	n := 0
	for _, o := range outcomes {
		if IsErrorKind(o) {
			n++
		}
	}
	return n
}

// GroupOption configures a Group or GroupInOrder call.
type GroupOption func(*groupOpts)

type groupOpts struct {
	onComplete func(outcomes []any, err error)
}

// WithCompletionHook registers a function invoked right before the group's
// parent Deferred completes, with the same outcomes (and, if any child
// failed, the same *GroupedError) the parent is about to carry. It's meant
// for observability - counting, logging - and runs synchronously on
// whichever goroutine completes the last child.
func WithCompletionHook(fn func(outcomes []any, err error)) GroupOption {
	return func(o *groupOpts) { o.onComplete = fn }
}

func buildGroupOpts(opts []GroupOption) groupOpts {
	var o groupOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Group returns a Deferred that completes once every child has, carrying a
// list of their outcomes in the order the children reported in (completion
// order, not necessarily the order of children). If any child carries an
// error, the parent carries a *GroupedError instead.
//
// If children is empty, the returned Deferred is already done, carrying an
// empty outcome list.
func Group(children ...*Deferred) *Deferred {
	return newGroup(children, false, nil)
}

// GroupInOrder is like Group, but outcomes[i] always corresponds to
// children[i], regardless of the order the children actually complete in.
func GroupInOrder(children ...*Deferred) *Deferred {
	return newGroup(children, true, nil)
}

// GroupWith and GroupInOrderWith are Group and GroupInOrder with
// GroupOptions attached.
func GroupWith(children []*Deferred, opts ...GroupOption) *Deferred {
	return newGroup(children, false, opts)
}

func GroupInOrderWith(children []*Deferred, opts ...GroupOption) *Deferred {
	return newGroup(children, true, opts)
}

// group owns the parent Deferred and the shared outcome bookkeeping for one
// Group/GroupInOrder call. An unordered group attaches one notifier link
// instance to every child, the way the design this is grounded on shares a
// single notifier object across a group's children; an ordered group
// attaches a distinct closure per index instead.
type group struct {
	parent *Deferred
	opts   groupOpts

	mu        sync.Mutex
	outcomes  []any
	remaining int
}

func newGroup(children []*Deferred, ordered bool, opts []GroupOption) *Deferred {
	parent := New()
	g := &group{
		parent:    parent,
		opts:      buildGroupOpts(opts),
		outcomes:  make([]any, len(children)),
		remaining: len(children),
	}

	if len(children) == 0 {
		g.finalize()
		return parent
	}

	if ordered {
		for i, child := range children {
			idx := i
			notify := func(v any) any {
				g.record(idx, v)
				return v
			}
			child.AddCallbacks(notify, notify)
		}
		return parent
	}

	var mu sync.Mutex
	next := 0
	notify := func(v any) any {
		mu.Lock()
		idx := next
		next++
		mu.Unlock()
		g.record(idx, v)
		return v
	}
	for _, child := range children {
		child.AddCallbacks(notify, notify)
	}
	return parent
}

// record stores one child's outcome and finalizes the group once every
// child has reported in.
func (g *group) record(idx int, v any) {
	var done bool
	g.mu.Lock()
	g.outcomes[idx] = v
	g.remaining--
	done = g.remaining == 0
	g.mu.Unlock()

	if done {
		g.finalize()
	}
}

// finalize scans the recorded outcomes and completes the parent exactly
// once, either with the outcome list or with a *GroupedError wrapping it.
func (g *group) finalize() {
	var first error
	for _, o := range g.outcomes {
		if err, ok := o.(error); ok {
			first = err
			break
		}
	}

	if first != nil {
		ge := &GroupedError{Outcomes: g.outcomes, First: first}
		if g.opts.onComplete != nil {
			g.opts.onComplete(g.outcomes, ge)
		}
		g.parent.Complete(ge)
		return
	}

	if g.opts.onComplete != nil {
		g.opts.onComplete(g.outcomes, nil)
	}
	g.parent.Complete(g.outcomes)
}

func (g *group) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "group(remaining=%d/%d)", g.remaining, len(g.outcomes))
	return b.String()
}
