package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func squarePath() *Path {
	p := NewPath(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 10))
	p.LineTo(Pt(0, 10))
	p.Close()
	return p
}

func TestPathCloseIsIdempotentWhenAlreadyClosed(t *testing.T) {
	p := squarePath()
	segments := len(p.Segments)
	p.Close()
	require.Equal(t, segments, len(p.Segments))
	require.True(t, p.IsClosed())
}

func TestPathBoundingBoxMatchesSquareExtent(t *testing.T) {
	box := squarePath().BoundingBox()
	require.InDelta(t, 0, box.Min.X, 1e-9)
	require.InDelta(t, 0, box.Min.Y, 1e-9)
	require.InDelta(t, 10, box.Max.X, 1e-9)
	require.InDelta(t, 10, box.Max.Y, 1e-9)
}

func TestPathPointsIncludesStartAndEnd(t *testing.T) {
	p := squarePath()
	pts := p.Points(4)
	require.Equal(t, p.Start, pts[0])
	require.InDelta(t, 0, pts[len(pts)-1].Distance(p.Start), 1e-6)
}

func TestPathTransformAppliesToEveryControlPoint(t *testing.T) {
	p := squarePath()
	moved := p.Transform(Translate(5, 5))
	require.Equal(t, Pt(5, 5), moved.Start)
	require.Equal(t, p.Segments[0].End.Add(Pt(5, 5)), moved.Segments[0].End)
}

func TestPathReversedRetracesTheSameGeometry(t *testing.T) {
	p := squarePath()
	rev := p.Reversed()
	require.Equal(t, p.Segments[len(p.Segments)-1].End, rev.Start)
	require.InDelta(t, 0, rev.Segments[len(rev.Segments)-1].End.Distance(p.Start), 1e-6)
}
