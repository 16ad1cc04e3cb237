package binding

import "context"

// BindStream turns a source of values into a Binding, the mirror image of
// Follow: where Follow turns a Binding into a pull stream, BindStream
// stores each value produced by its next function with Set, replacing the
// previous one. There is no fold function: a value is never combined with
// the one before it.
type BindStream[T comparable] struct {
	target *Binding[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// BindStreamFrom starts a goroutine that repeatedly calls next and stores
// every value it produces into the returned Binding, until ctx is
// cancelled or next returns an error.
func BindStreamFrom[T comparable](ctx context.Context, initial T, next func(context.Context) (T, error)) *BindStream[T] {
	target := NewBinding(initial)
	runCtx, cancel := context.WithCancel(ctx)
	bs := &BindStream[T]{target: target, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(bs.done)
		for {
			v, err := next(runCtx)
			if err != nil {
				return
			}
			target.Set(v)
		}
	}()

	return bs
}

// Binding returns the Binding this stream feeds.
func (bs *BindStream[T]) Binding() *Binding[T] { return bs.target }

// Stop cancels the feeding goroutine and waits for it to exit.
func (bs *BindStream[T]) Stop() {
	bs.cancel()
	<-bs.done
}
