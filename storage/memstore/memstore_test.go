package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/stretchr/testify/require"
)

func TestEditLogDurability(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.WriteEdit, Index: 0, Payload: "edit-0"},
		{Kind: storage.WriteEdit, Index: 1, Payload: "edit-1"},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{{Kind: storage.ReadEdits}})
	require.NoError(t, err)
	require.Len(t, resp[0].Edits, 2)
}

func TestElementWriteReadDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.WriteElement, ElementID: 5, Payload: "wrapper-5"},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{{Kind: storage.ReadElement, ElementID: 5}})
	require.NoError(t, err)
	require.Equal(t, storage.ElementResponse, resp[0].Kind)
	require.Equal(t, "wrapper-5", resp[0].ElementPayload)

	_, err = s.Execute(ctx, []storage.Command{{Kind: storage.DeleteElement, ElementID: 5}})
	require.NoError(t, err)

	resp, err = s.Execute(ctx, []storage.Command{{Kind: storage.ReadElement, ElementID: 5}})
	require.NoError(t, err)
	require.Equal(t, storage.NotFound, resp[0].Kind)
}

func TestKeyFrameRangeQuery(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.AddKeyFrame, LayerID: 1, Time: 0, EndTime: time.Second},
		{Kind: storage.AddKeyFrame, LayerID: 1, Time: time.Second, EndTime: 2 * time.Second},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.ReadKeyFrames, LayerID: 1, Range: storage.TimeRange{Start: 0, End: time.Second}},
	})
	require.NoError(t, err)
	require.Len(t, resp[0].KeyFrames, 1)
}

func TestLayerCacheRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.WriteLayerCache, LayerID: 1, Time: time.Second, CacheKey: "thumbnail", Payload: "blob"},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.ReadLayerCache, LayerID: 1, Time: time.Second, CacheKey: "thumbnail"},
	})
	require.NoError(t, err)
	require.Equal(t, "blob", resp[0].Properties)

	_, err = s.Execute(ctx, []storage.Command{{Kind: storage.DeleteLayerCachesFor, LayerID: 1}})
	require.NoError(t, err)

	resp, err = s.Execute(ctx, []storage.Command{
		{Kind: storage.ReadLayerCache, LayerID: 1, Time: time.Second, CacheKey: "thumbnail"},
	})
	require.NoError(t, err)
	require.Equal(t, storage.NotFound, resp[0].Kind)
}

func TestBackendRegistryLookup(t *testing.T) {
	backend := storage.Get("memory")
	require.NotNil(t, backend)
	require.Equal(t, "memory", backend.Name())
}
