package animation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/storage/memstore"
)

func sampleDrawing() canvas.Drawing {
	rec := canvas.NewRecorder()
	rec.Layer(1)
	rec.NewPath()
	rec.MoveTo(0, 0)
	rec.LineTo(1, 1)
	rec.Fill()
	return rec.Finish()
}

// TestStreamLayerCacheRoundTrip exercises spec §8.3 scenario 3: store then
// retrieve returns the same drawing; invalidate clears it; a different time
// was never populated.
func TestStreamLayerCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))

	cache := NewStreamLayerCache(backend, 64)
	drawing := sampleDrawing()

	require.NoError(t, cache.Store(ctx, 1, 0, "onionskin", drawing))

	got, ok, err := cache.Retrieve(ctx, 1, 0, "onionskin")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, drawing, got)

	_, ok, err = cache.Retrieve(ctx, 1, time.Second, "onionskin")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Invalidate(ctx, 1))
	_, ok, err = cache.Retrieve(ctx, 1, 0, "onionskin")
	require.NoError(t, err)
	require.False(t, ok)
}

// TestStreamLayerCacheEvictsOldestOverBudget exercises Config's cache
// budget: once stored entries exceed the byte budget, the
// least-recently-used one is evicted from the backend.
func TestStreamLayerCacheEvictsOldestOverBudget(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))

	drawing := sampleDrawing()
	entrySize := int64(len(canvas.EncodeDrawing(drawing)))

	cache := NewStreamLayerCache(backend, 64)
	cache.budget = entrySize * 3 / 2 // room for one entry, not two

	require.NoError(t, cache.Store(ctx, 1, 0, "a", drawing))
	require.NoError(t, cache.Store(ctx, 1, time.Second, "b", drawing))

	_, ok, err := cache.Retrieve(ctx, 1, 0, "a")
	require.NoError(t, err)
	require.False(t, ok, "oldest entry must be evicted once the budget is exceeded")

	_, ok, err = cache.Retrieve(ctx, 1, time.Second, "b")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRetrieveOrGenerateOnlyCallsGenerateOnMiss(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))
	cache := NewStreamLayerCache(backend, 64)

	calls := 0
	generate := func() (canvas.Drawing, error) {
		calls++
		return sampleDrawing(), nil
	}

	first, err := cache.RetrieveOrGenerate(ctx, 1, 0, "frame", generate)
	require.NoError(t, err)
	second, err := cache.RetrieveOrGenerate(ctx, 1, 0, "frame", generate)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, first, second)
}
