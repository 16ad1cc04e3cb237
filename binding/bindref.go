package binding

// BindRef is a type-erased read-only handle onto a Binding or
// ComputedBinding, grounded on original_source/ui/src/binding.rs's
// `BindRef<T>` — used where a function wants to accept "anything bindable"
// without committing to whether the caller passed a plain cell or a
// derived value.
type BindRef[T any] interface {
	Get() T
}

// *Binding[T] and *ComputedBinding[T] satisfy BindRef[T] directly, since
// both already expose Get() T; these compile-time assertions document the
// erasure point other packages rely on.
var (
	_ BindRef[int] = (*Binding[int])(nil)
	_ BindRef[int] = (*ComputedBinding[int])(nil)
)

// RefOf wraps any BindRef-shaped value in a concrete BindRef, erasing the
// caller's choice of Binding vs. ComputedBinding at the type level.
func RefOf[T any](b BindRef[T]) BindRef[T] { return b }
