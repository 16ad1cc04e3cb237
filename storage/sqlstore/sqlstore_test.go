package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/storage"
)

func TestEditLogDurability(t *testing.T) {
	s := New(":memory:")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	defer s.Close()

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.WriteEdit, Index: 0, Payload: "edit-0"},
		{Kind: storage.WriteEdit, Index: 1, Payload: "edit-1"},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{{Kind: storage.ReadEdits}})
	require.NoError(t, err)
	require.Len(t, resp[0].Edits, 2)
	require.Equal(t, "edit-0", resp[0].Edits[0].Payload)
}

func TestElementWriteReadDelete(t *testing.T) {
	s := New(":memory:")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	defer s.Close()

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

func TestLayerCacheRoundTrip(t *testing.T) {
	s := New(":memory:")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	defer s.Close()

	_, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.WriteLayerCache, LayerID: 1, Time: time.Second, CacheKey: "thumbnail", Payload: "blob"},
	})
	require.NoError(t, err)

	resp, err := s.Execute(ctx, []storage.Command{
		{Kind: storage.ReadLayerCache, LayerID: 1, Time: time.Second, CacheKey: "thumbnail"},
	})
	require.NoError(t, err)
	require.Equal(t, "blob", resp[0].Properties)
}

func TestBackendRegistryLookup(t *testing.T) {
	backend := storage.Get("sqlite")
	require.NotNil(t, backend)
	require.Equal(t, "sqlite", backend.Name())
}
