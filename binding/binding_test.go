package binding

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBindingGetSet(t *testing.T) {
	b := NewBinding(1)
	require.Equal(t, 1, b.Get())
	b.Set(2)
	require.Equal(t, 2, b.Get())
}

func TestBindingWhenChangedFiresOnSet(t *testing.T) {
	b := NewBinding(0)
	fired := 0
	r := b.WhenChanged(func() { fired++ })
	b.Set(1)
	require.Equal(t, 1, fired)
	b.Set(2)
	require.Equal(t, 2, fired)

	r.Release()
	b.Set(3)
	require.Equal(t, 2, fired, "no further notifications after Release")
}

func TestSetSameValueDoesNotNotify(t *testing.T) {
	b := NewBinding(1)
	fired := 0
	r := b.WhenChanged(func() { fired++ })
	defer r.Release()

	b.Set(1)
	require.Equal(t, 0, fired, "Set with an unchanged value must not notify")

	b.Set(2)
	require.Equal(t, 1, fired)
}

func TestFollowStreamPollPendingAfterSameValueSet(t *testing.T) {
	b := NewBinding(1)
	fs := Follow[int](b)
	defer fs.Close()

	_, ok := fs.Poll()
	require.True(t, ok, "first poll always yields the current value")

	b.Set(1)
	_, ok = fs.Poll()
	require.False(t, ok, "a same-value Set must leave the stream's next poll pending (no change)")
}

func TestComputedRecomputesOnDependencyChange(t *testing.T) {
	src := NewBinding(10)
	evalCount := 0
	c := Computed(func() int {
		evalCount++
		return src.Get() * 2
	})

	require.Equal(t, 20, c.Get())
	require.Equal(t, 1, evalCount)

	// Cached: a second Get without a change must not re-evaluate.
	require.Equal(t, 20, c.Get())
	require.Equal(t, 1, evalCount)

	src.Set(11)
	require.Equal(t, 22, c.Get())
	require.Equal(t, 2, evalCount)
}

func TestComputedChainInvalidatesTransitively(t *testing.T) {
	a := NewBinding(1)
	b := Computed(func() int { return a.Get() + 1 })
	c := Computed(func() int { return b.Get() * 10 })

	require.Equal(t, 20, c.Get())
	a.Set(5)
	require.Equal(t, 60, c.Get())
}

func TestComputedReleasesDependenciesBeforeReevaluating(t *testing.T) {
	a := NewBinding(true)
	x := NewBinding(1)
	y := NewBinding(100)

	c := Computed(func() int {
		if a.Get() {
			return x.Get()
		}
		return y.Get()
	})

	require.Equal(t, 1, c.Get())

	// Switch branches: c should stop depending on x and start depending
	// on y. Changing x afterwards must not invalidate c's cache.
	a.Set(false)
	require.Equal(t, 100, c.Get())

	cachedBefore := c.core.valid
	require.True(t, cachedBefore)
	x.Set(999)
	require.True(t, c.core.valid, "stale dependency must not invalidate after branch switch")
	require.Equal(t, 100, c.Get())
}

func TestComputedWeakNotifierIsNoOpAfterCollection(t *testing.T) {
	src := NewBinding(1)
	c := Computed(func() int { return src.Get() * 2 })
	require.Equal(t, 2, c.Get())

	c = nil
	runtime.GC()
	runtime.GC()

	// Must not panic even though the computed core may have been
	// collected; the weak-backed notifier degrades to a no-op.
	src.Set(2)
}

func TestFollowStreamPollAndNext(t *testing.T) {
	b := NewBinding(1)
	fs := Follow[int](b)
	defer fs.Close()

	v, ok := fs.Poll()
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = fs.Poll()
	require.False(t, ok, "no pending value until Set")

	go func() {
		time.Sleep(10 * time.Millisecond)
		b.Set(2)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := fs.Next(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestFollowStreamNextRespectsContextCancel(t *testing.T) {
	b := NewBinding(1)
	fs := Follow[int](b)
	defer fs.Close()
	_, _ = fs.Poll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := fs.Next(ctx)
	require.Error(t, err)
}

func TestBindStreamFeedsBinding(t *testing.T) {
	values := []int{1, 2, 3}
	i := 0
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bs := BindStreamFrom(ctx, 0, func(ctx context.Context) (int, error) {
		if i >= len(values) {
			<-ctx.Done()
			return 0, ctx.Err()
		}
		v := values[i]
		i++
		return v, nil
	})
	defer bs.Stop()

	require.Eventually(t, func() bool {
		return bs.Binding().Get() == 3
	}, time.Second, time.Millisecond)
}

func TestBindRefErasesConcreteType(t *testing.T) {
	b := NewBinding(7)
	c := Computed(func() int { return b.Get() + 1 })

	refs := []BindRef[int]{RefOf[int](b), RefOf[int](c)}
	require.Equal(t, 7, refs[0].Get())
	require.Equal(t, 8, refs[1].Get())
}
