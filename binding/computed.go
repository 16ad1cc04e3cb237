package binding

import (
	"sync"
	"weak"
)

// ComputedBinding is a derived reactive value, grounded on
// original_source/ui/src/binding/computed.rs: its value is lazily
// (re)computed by calling evaluate inside a tracking context, caching both
// the result and the dependency set so a later notification from any of
// those dependencies invalidates the cache without re-running evaluate
// early.
//
// The notifier a ComputedBinding hands its dependencies holds only a weak
// reference (weak.Pointer) back to the computed's shared core, so a
// computed that has gone out of scope while its dependencies are still
// live does not get kept alive purely by those dependency edges, and a
// notification arriving after the computed was collected is a safe no-op
// rather than a dangling callback — the "weak computed reference" contract
// from spec §4.A/§9.
type ComputedBinding[T any] struct {
	core *computedCore[T]
}

type computedCore[T any] struct {
	mu        sync.Mutex
	evaluate  func() T
	valid     bool
	value     T
	deps      []Releasable
	notifiers []*releasableNotifiable
}

// Computed creates a ComputedBinding whose value is produced by evaluate,
// which may call Get on any number of Binding or ComputedBinding values;
// those become its tracked dependencies.
func Computed[T any](evaluate func() T) *ComputedBinding[T] {
	core := &computedCore[T]{evaluate: evaluate}
	return &ComputedBinding[T]{core: core}
}

// Get returns the cached value, recomputing it first if a dependency has
// changed since the last computation, then tracks this ComputedBinding as
// a dependency of whatever outer computed is currently evaluating.
func (c *ComputedBinding[T]) Get() T {
	track(func(notify func()) Releasable { return c.core.whenChanged(notify) })
	return c.core.resolve()
}

func (core *computedCore[T]) resolve() T {
	core.mu.Lock()
	if core.valid {
		v := core.value
		core.mu.Unlock()
		return v
	}
	core.mu.Unlock()

	return core.reevaluate()
}

func (core *computedCore[T]) reevaluate() T {
	// Release the previous dependency edges before re-running the
	// evaluator: spec §4.A requires a computed never hold stale edges
	// while recomputing, so a dependency dropped this round cannot
	// trigger a spurious future notification.
	core.mu.Lock()
	oldDeps := core.deps
	core.deps = nil
	core.mu.Unlock()
	releaseAll(oldDeps)

	weakCore := weak.Make(core)
	notify := func() {
		if c := weakCore.Value(); c != nil {
			c.invalidate()
		}
	}

	var value T
	deps := withContextCapture(notify, core.evaluate, &value)

	core.mu.Lock()
	core.deps = deps
	core.value = value
	core.valid = true
	v := core.value
	core.mu.Unlock()

	return v
}

// withContextCapture runs evaluate inside a tracking context (like
// withContext) and additionally captures evaluate's return value into out,
// avoiding a second closure allocation in reevaluate.
func withContextCapture[T any](notify func(), evaluate func() T, out *T) []Releasable {
	return withContext(notify, func() {
		*out = evaluate()
	})
}

func (core *computedCore[T]) invalidate() {
	core.mu.Lock()
	wasValid := core.valid
	core.valid = false
	live := make([]*releasableNotifiable, 0, len(core.notifiers))
	kept := core.notifiers[:0]
	for _, n := range core.notifiers {
		if n.InUse() {
			live = append(live, n)
			kept = append(kept, n)
		}
	}
	core.notifiers = kept
	core.mu.Unlock()

	if !wasValid {
		return
	}
	for _, n := range live {
		n.MarkAsChanged()
	}
}

func (core *computedCore[T]) whenChanged(notify func()) Releasable {
	r := newReleasable(notify)
	core.mu.Lock()
	core.notifiers = append(core.notifiers, r)
	core.mu.Unlock()
	return r
}
