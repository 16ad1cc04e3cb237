package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

func strokeAt(id vector.ElementID, x0, y0, x1, y1 float64) *vector.BrushElement {
	return vector.NewBrushElement(id, []vector.InkPoint{
		{Position: geo.Pt(x0, y0), Pressure: 1},
		{Position: geo.Pt(x1, y1), Pressure: 1},
	})
}

// TestCollideMergesOverlappingStrokes exercises spec §8.3 scenario 2: two
// overlapping brush strokes collapse into one element after the second
// stroke's collide pass.
func TestCollideMergesOverlappingStrokes(t *testing.T) {
	kf := keyframe.New(1, 0, time.Second)
	a, b := vector.Assigned(1), vector.Assigned(2)

	_ = kf.AddElementToEnd(a, &keyframe.ElementWrapper{Element: strokeAt(a, 0, 0, 10, 10)})
	_ = kf.AddElementToEnd(b, &keyframe.ElementWrapper{Element: strokeAt(b, 5, 5, 15, 15)})

	cmds := collideWithExistingElements(kf, b)
	require.NotEmpty(t, cmds)
	require.Len(t, kf.RenderOrder(), 1)

	merged, ok := kf.RenderOrder()[0].Element.(*vector.BrushElement)
	require.True(t, ok)
	require.Len(t, merged.Points, 4)
}

func TestCollideLeavesNonOverlappingStrokesSeparate(t *testing.T) {
	kf := keyframe.New(1, 0, time.Second)
	a, b := vector.Assigned(1), vector.Assigned(2)

	_ = kf.AddElementToEnd(a, &keyframe.ElementWrapper{Element: strokeAt(a, 0, 0, 1, 1)})
	_ = kf.AddElementToEnd(b, &keyframe.ElementWrapper{Element: strokeAt(b, 100, 100, 101, 101)})

	cmds := collideWithExistingElements(kf, b)
	require.Nil(t, cmds)
	require.Len(t, kf.RenderOrder(), 2)
}

func TestCollideThirdOverlappingStrokeJoinsTheMerge(t *testing.T) {
	kf := keyframe.New(1, 0, time.Second)
	a, b, c := vector.Assigned(1), vector.Assigned(2), vector.Assigned(3)

	_ = kf.AddElementToEnd(a, &keyframe.ElementWrapper{Element: strokeAt(a, 0, 0, 10, 10)})
	_ = kf.AddElementToEnd(b, &keyframe.ElementWrapper{Element: strokeAt(b, 5, 5, 15, 15)})
	_ = collideWithExistingElements(kf, b)

	_ = kf.AddElementToEnd(c, &keyframe.ElementWrapper{Element: strokeAt(c, 8, 8, 20, 20)})
	cmds := collideWithExistingElements(kf, c)
	require.NotEmpty(t, cmds)
	require.Len(t, kf.RenderOrder(), 1)

	merged, ok := kf.RenderOrder()[0].Element.(*vector.BrushElement)
	require.True(t, ok)
	require.Len(t, merged.Points, 6)
}
