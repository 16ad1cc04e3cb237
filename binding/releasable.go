// Package binding implements the reactive observer graph of spec §4.A: a
// cell-based Binding, derived ComputedBinding values, FollowStream pull
// streams, and a BindRef erased read-only handle, with the precise release
// semantics spec §3.6/§4.A requires — a computed's dependency edges are
// fully released before it re-evaluates, and weak references let a
// dropped computed's notifier become a no-op rather than a leak.
//
// Grounded on the release-scope pattern of the pack's reactive-signal
// teacher (other_examples/183c2a55_vango-go-vango__pkg-vango-owner.go.go:
// Owner/dispose/cleanup bookkeeping) and on the exact release-before-
// reevaluate / notify-outside-lock contract described in
// original_source/ui/src/binding.rs and ui/src/binding/computed.rs.
package binding

import "sync/atomic"

// Releasable is returned by WhenChanged; releasing it stops the
// corresponding notifier from firing. Release is idempotent.
type Releasable interface {
	Release()
	InUse() bool
}

// releasableNotifiable is the concrete Releasable every WhenChanged call
// returns: an atomic in-use flag guarding a notify closure, so Release can
// be called from any goroutine without racing the notifier itself.
type releasableNotifiable struct {
	inUse  atomic.Bool
	notify func()
}

func newReleasable(notify func()) *releasableNotifiable {
	r := &releasableNotifiable{notify: notify}
	r.inUse.Store(true)
	return r
}

// MarkAsChanged invokes the notifier iff it is still in use.
func (r *releasableNotifiable) MarkAsChanged() {
	if r.inUse.Load() {
		r.notify()
	}
}

func (r *releasableNotifiable) Release() {
	r.inUse.Store(false)
}

func (r *releasableNotifiable) InUse() bool {
	return r.inUse.Load()
}

// releaseAll releases every handle in a slice, used when a computed drops
// its previous dependency handles before it re-evaluates.
func releaseAll(handles []Releasable) {
	for _, h := range handles {
		h.Release()
	}
}
