package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func closedSquare(min, max float64) *Path {
	p := NewPath(Pt(min, min))
	p.LineTo(Pt(max, min))
	p.LineTo(Pt(max, max))
	p.LineTo(Pt(min, max))
	p.Close()
	return p
}

func TestPathCutSplitsASquareByANestedSquare(t *testing.T) {
	source := closedSquare(100, 200)
	cut := closedSquare(125, 175)

	result := PathCut(source, cut)

	require.Len(t, result.Inside, 1)
	require.NotEmpty(t, result.Outside)

	insideBox := result.Inside[0].BoundingBox()
	require.InDelta(t, 125, insideBox.Min.X, 1e-6)
	require.InDelta(t, 175, insideBox.Max.X, 1e-6)
}

func TestPathCutWithNoOverlapLeavesSourceEntirelyOutside(t *testing.T) {
	source := closedSquare(0, 10)
	cut := closedSquare(100, 110)

	result := PathCut(source, cut)

	require.Empty(t, result.Inside)
	require.NotEmpty(t, result.Outside)
}

func TestContainsReportsPointsInsideAndOutsideASquare(t *testing.T) {
	square := closedSquare(0, 10)
	require.True(t, Contains(square, Pt(5, 5), NonZero))
	require.False(t, Contains(square, Pt(50, 50), NonZero))
}
