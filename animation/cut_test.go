package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

func closedSquarePath(min, max float64) *geo.Path {
	p := geo.NewPath(geo.Pt(min, min))
	p.LineTo(geo.Pt(max, min))
	p.LineTo(geo.Pt(max, max))
	p.LineTo(geo.Pt(min, max))
	p.Close()
	return p
}

// TestCutElementsSplitsASquareIntoTwoGroups exercises spec §8.3 scenario 1:
// cutting a square with a centered square leaves exactly two Normal groups,
// one inside the cut, one outside.
func TestCutElementsSplitsASquareIntoTwoGroups(t *testing.T) {
	kf := keyframe.New(1, 0, time.Second)
	squareID := vector.Assigned(3)
	_ = kf.AddElementToEnd(squareID, &keyframe.ElementWrapper{
		Element: vector.NewPathElement(squareID, closedSquarePath(100, 200)),
	})

	insideID, outsideID := vector.Assigned(100), vector.Assigned(101)
	cutElements(kf, 0, closedSquarePath(125, 175), insideID, outsideID)

	order := kf.RenderOrder()
	require.Len(t, order, 2)

	ids := map[vector.ElementID]bool{}
	for _, w := range order {
		ids[w.Element.ID()] = true
		group, ok := w.Element.(*vector.GroupElement)
		require.True(t, ok, "expected a group element")
		require.Equal(t, vector.GroupNormal, group.Type)
	}
	require.True(t, ids[insideID])
	require.True(t, ids[outsideID])
}

func TestCutElementsWithNilPathIsANoop(t *testing.T) {
	kf := keyframe.New(1, 0, time.Second)
	squareID := vector.Assigned(3)
	_ = kf.AddElementToEnd(squareID, &keyframe.ElementWrapper{
		Element: vector.NewPathElement(squareID, closedSquarePath(0, 10)),
	})

	cmds := cutElements(kf, 0, nil, vector.Assigned(100), vector.Assigned(101))
	require.Nil(t, cmds)
	require.Len(t, kf.RenderOrder(), 1)
}
