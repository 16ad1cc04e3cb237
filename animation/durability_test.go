package animation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/storage/memstore"
)

// TestEditLogDurabilitySurvivesAReopen exercises spec §8.3 scenario 6:
// a SetSize edit, once performed, is readable back from the backend as
// both a one-entry edit log and the animation's current size, independent
// of the Core instance that wrote it.
func TestEditLogDurabilitySurvivesAReopen(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	require.NoError(t, backend.Init(ctx))

	core := New(backend)
	require.NoError(t, core.PerformEdits(ctx, []Edit{{Kind: SetSize, Width: 800, Height: 600}}))
	core.Close()

	reopened := New(backend)
	defer reopened.Close()

	resp, err := backend.Execute(ctx, []storage.Command{{Kind: storage.ReadEdits, IndexRange: storage.IndexRange{Start: 0, End: 0}}})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	require.Len(t, resp[0].Edits, 1)

	decoded, err := DecodeEdit(resp[0].Edits[0].Payload)
	require.NoError(t, err)
	require.Equal(t, SetSize, decoded.Kind)
	require.Equal(t, 800.0, decoded.Width)
	require.Equal(t, 600.0, decoded.Height)

	propsResp, err := backend.Execute(ctx, []storage.Command{{Kind: storage.ReadAnimationProperties}})
	require.NoError(t, err)
	require.Len(t, propsResp, 1)

	sizeEdit, err := DecodeEdit(propsResp[0].Properties)
	require.NoError(t, err)
	require.Equal(t, 800.0, sizeEdit.Width)
	require.Equal(t, 600.0, sizeEdit.Height)
}
