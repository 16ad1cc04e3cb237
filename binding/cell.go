package binding

import "sync"

// Binding is a mutable reactive cell holding a value of type T, grounded on
// original_source/ui/src/binding.rs's Binding<T>: Get reads the current
// value and, if called while a ComputedBinding is evaluating, registers the
// caller as a dependent; Set compares the new value against the current one
// with == and, iff different, stores it and notifies every
// currently-registered dependent exactly once, outside the cell's own lock.
// T is constrained to comparable so Set can make that comparison directly.
type Binding[T comparable] struct {
	mu        sync.Mutex
	value     T
	notifiers []*releasableNotifiable
}

// NewBinding creates a Binding holding the given initial value.
func NewBinding[T comparable](initial T) *Binding[T] {
	return &Binding[T]{value: initial}
}

// Get returns the current value, tracking this binding as a dependency of
// whatever ComputedBinding is currently evaluating (if any).
func (b *Binding[T]) Get() T {
	track(func(notify func()) Releasable { return b.WhenChanged(notify) })

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Set compares v against the current value with == and, iff different,
// stores it and notifies every live dependent. A no-op Set (same value)
// leaves notifiers untouched. Notification happens after the lock is
// released, so a dependent's callback can safely call back into this
// binding (e.g. re-Get it) without deadlocking.
func (b *Binding[T]) Set(v T) {
	b.mu.Lock()
	if b.value == v {
		b.mu.Unlock()
		return
	}
	b.value = v
	live := make([]*releasableNotifiable, 0, len(b.notifiers))
	kept := b.notifiers[:0]
	for _, n := range b.notifiers {
		if n.InUse() {
			live = append(live, n)
			kept = append(kept, n)
		}
	}
	b.notifiers = kept
	b.mu.Unlock()

	for _, n := range live {
		n.MarkAsChanged()
	}
}

// WhenChanged registers notify to be called (at most once per Set) for as
// long as the returned Releasable stays in use. This is the low-level
// dependency-registration primitive Get, ComputedBinding and FollowStream
// build on.
func (b *Binding[T]) WhenChanged(notify func()) Releasable {
	r := newReleasable(notify)

	b.mu.Lock()
	b.notifiers = append(b.notifiers, r)
	b.mu.Unlock()

	return r
}
