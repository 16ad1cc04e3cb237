package animation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/storage/memstore"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

func TestRenderLayerWalksRenderOrderIntoADrawing(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))
	core := New(backend)
	defer core.Close()

	require.NoError(t, core.addKeyFrame(ctx, 1, 0))
	shapeID := vector.Assigned(1)
	err := core.EditKeyframe(ctx, 1, 0, func(kf *keyframe.Core) []storage.Command {
		el := vector.NewRectangleShape(shapeID, 0, 0, 10, 10)
		return kf.AddElementToEnd(shapeID, &keyframe.ElementWrapper{Element: el})
	})
	require.NoError(t, err)

	drawing, err := core.RenderLayer(ctx, 1, 0)
	require.NoError(t, err)
	require.NotEmpty(t, drawing)
}

func TestRenderLayerServesFromCacheOnSecondCall(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))
	core := New(backend)
	defer core.Close()

	require.NoError(t, core.addKeyFrame(ctx, 1, 0))
	shapeID := vector.Assigned(1)
	err := core.EditKeyframe(ctx, 1, 0, func(kf *keyframe.Core) []storage.Command {
		el := vector.NewRectangleShape(shapeID, 0, 0, 10, 10)
		return kf.AddElementToEnd(shapeID, &keyframe.ElementWrapper{Element: el})
	})
	require.NoError(t, err)

	first, err := core.RenderLayer(ctx, 1, 0)
	require.NoError(t, err)

	cached, ok, err := core.layerCache.Retrieve(ctx, 1, 0, "frame")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first, cached)
}
