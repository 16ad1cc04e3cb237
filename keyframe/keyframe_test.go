package keyframe

import (
	"testing"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/vector"
	"github.com/stretchr/testify/require"
)

func wrapperFor(el vector.Element) *ElementWrapper {
	return &ElementWrapper{Element: el}
}

func TestAddElementToEndMaintainsOrder(t *testing.T) {
	core := New(1, 0, 0)

	id1, id2, id3 := vector.Assigned(1), vector.Assigned(2), vector.Assigned(3)
	core.AddElementToEnd(id1, wrapperFor(vector.NewRectangleShape(id1, 0, 0, 1, 1)))
	core.AddElementToEnd(id2, wrapperFor(vector.NewRectangleShape(id2, 0, 0, 1, 1)))
	core.AddElementToEnd(id3, wrapperFor(vector.NewRectangleShape(id3, 0, 0, 1, 1)))

	order := core.RenderOrder()
	require.Len(t, order, 3)
	require.Equal(t, id1, order[0].id())
	require.Equal(t, id2, order[1].id())
	require.Equal(t, id3, order[2].id())

	// Symmetry invariant: every order_before has a matching order_after.
	for _, w := range order {
		if w.OrderBefore != nil {
			next := core.elements[*w.OrderBefore]
			require.Equal(t, w.id(), *next.OrderAfter)
		}
	}
}

func TestUnlinkElementPreservesOrderAndSymmetry(t *testing.T) {
	core := New(1, 0, 0)
	id1, id2, id3 := vector.Assigned(1), vector.Assigned(2), vector.Assigned(3)
	core.AddElementToEnd(id1, wrapperFor(vector.NewRectangleShape(id1, 0, 0, 1, 1)))
	core.AddElementToEnd(id2, wrapperFor(vector.NewRectangleShape(id2, 0, 0, 1, 1)))
	core.AddElementToEnd(id3, wrapperFor(vector.NewRectangleShape(id3, 0, 0, 1, 1)))

	core.UnlinkElement(id2)

	order := core.RenderOrder()
	require.Len(t, order, 2)
	require.Equal(t, id1, order[0].id())
	require.Equal(t, id3, order[1].id())
	require.Nil(t, core.Elements(id2))
}

func TestAttachDetachSymmetric(t *testing.T) {
	core := New(1, 0, 0)
	id1, id2 := vector.Assigned(1), vector.Assigned(2)
	core.AddElementToEnd(id1, wrapperFor(vector.NewRectangleShape(id1, 0, 0, 1, 1)))
	core.AddElementToEnd(id2, wrapperFor(vector.NewRectangleShape(id2, 0, 0, 1, 1)))

	core.Attach(id1, id2)
	require.Contains(t, core.Elements(id1).Attachments, id2)
	require.Contains(t, core.Elements(id2).AttachedTo, id1)

	core.Detach(id1, id2)
	require.NotContains(t, core.Elements(id1).Attachments, id2)
	require.NotContains(t, core.Elements(id2).AttachedTo, id1)
}

func TestSegmentPathIntersectionsCrossSquareOutlineTwice(t *testing.T) {
	shape := vector.NewRectangleShape(vector.Assigned(1), 0, 0, 10, 10)

	// Exercises the intersection primitive RayCast builds on: a
	// horizontal probe through the middle of a 10x10 square must cross
	// its outline exactly twice.
	hits := segmentPathIntersections(geo.Pt(-5, 5), geo.Pt(15, 5), shape.ToPath(vector.DefaultVectorProperties())[0])
	require.Len(t, hits, 2)
}
