package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurvePointAtPosReturnsEndpoints(t *testing.T) {
	c := Curve{Start: Pt(0, 0), CP1: Pt(1, 1), CP2: Pt(2, 1), End: Pt(3, 0)}
	require.Equal(t, c.Start, c.PointAtPos(0))
	require.Equal(t, c.End, c.PointAtPos(1))
}

func TestCurveSubdivideJoinsBackToOriginalEndpoints(t *testing.T) {
	c := Curve{Start: Pt(0, 0), CP1: Pt(1, 2), CP2: Pt(2, 2), End: Pt(3, 0)}
	left, right := c.Subdivide(0.5)

	require.Equal(t, c.Start, left.Start)
	require.Equal(t, c.End, right.End)
	require.InDelta(t, left.End.X, right.Start.X, 1e-9)
	require.InDelta(t, left.End.Y, right.Start.Y, 1e-9)
	require.InDelta(t, c.PointAtPos(0.5).X, left.End.X, 1e-9)
}

func TestCurveBoundingBoxContainsEndpointsAndExtremities(t *testing.T) {
	c := Curve{Start: Pt(0, 0), CP1: Pt(0, 10), CP2: Pt(10, 10), End: Pt(10, 0)}
	box := c.BoundingBox()
	require.True(t, box.Contains(c.Start))
	require.True(t, box.Contains(c.End))
	require.Greater(t, box.Height(), 0.0)
}

func TestFitCurveIdempotentOnItsOwnPoints(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10), Pt(0, 0)}
	first := FitCurve(square, 1.0)
	require.NotEmpty(t, first)

	path := NewPath(first[0].Start)
	for _, c := range first {
		path.CubicTo(c.CP1, c.CP2, c.End)
	}
	second := FitCurve(path.Points(8), 1.0)

	require.LessOrEqual(t, len(second), len(first))
}

func TestFitCurveRejectsFewerThanTwoPoints(t *testing.T) {
	require.Nil(t, FitCurve([]Point{Pt(0, 0)}, 1.0))
	require.Nil(t, FitCurve(nil, 1.0))
}

func TestOffsetProducesCurveAtRequestedDistance(t *testing.T) {
	c := Curve{Start: Pt(0, 0), CP1: Pt(3, 0), CP2: Pt(7, 0), End: Pt(10, 0)}
	offset := Offset(c, 2, 2)
	require.NotEmpty(t, offset)
	require.InDelta(t, 2.0, offset[0].Start.Distance(c.Start), 1e-6)
}
