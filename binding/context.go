package binding

import "sync"

// trackingContext is the ambient dependency-collection scope a Computed
// installs while it runs its evaluator function, mirroring
// BindingContext::bind in original_source/ui/src/binding.rs. It is
// process-global and stack-shaped (nested contexts push/pop), matching the
// original's thread-local design under this codebase's concurrency model
// (spec §5: the binding graph is driven from a single owning thread/desync
// queue at a time) — see SPEC_FULL.md §4.A.
type trackingContext struct {
	notify func()
	deps   []Releasable
}

var (
	contextMu    sync.Mutex
	contextStack []*trackingContext
)

// withContext runs fn with a fresh tracking context installed, then returns
// the Releasable handles collected for every dependency read during fn.
// This is the "install a new BindingContext, run f, collect the context's
// accumulated dependencies" step of spec §4.A's computed Get().
func withContext(notify func(), fn func()) []Releasable {
	ctx := &trackingContext{notify: notify}

	contextMu.Lock()
	contextStack = append(contextStack, ctx)
	contextMu.Unlock()

	defer func() {
		contextMu.Lock()
		contextStack = contextStack[:len(contextStack)-1]
		contextMu.Unlock()
	}()

	fn()
	return ctx.deps
}

// track registers source as a dependency of the innermost active tracking
// context, if any, returning the Releasable so the caller (a cell's Get)
// doesn't need its own bookkeeping. Called from Binding.Get and
// ComputedBinding.Get.
func track(whenChanged func(notify func()) Releasable) {
	contextMu.Lock()
	if len(contextStack) == 0 {
		contextMu.Unlock()
		return
	}
	ctx := contextStack[len(contextStack)-1]
	contextMu.Unlock()

	r := whenChanged(ctx.notify)

	contextMu.Lock()
	ctx.deps = append(ctx.deps, r)
	contextMu.Unlock()
}
