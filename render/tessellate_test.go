package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

func TestTessellateFillFanTriangulatesASquare(t *testing.T) {
	square := []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)}
	vertices, indices := tessellateFill(square, canvas.WindingNonZero, canvas.Color{R: 1, A: 1})

	require.Len(t, vertices, 4)
	require.Len(t, indices, 6) // (4-2) triangles * 3
	require.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestTessellateFillRejectsDegeneratePaths(t *testing.T) {
	vertices, indices := tessellateFill([]geo.Point{geo.Pt(0, 0), geo.Pt(1, 1)}, canvas.WindingNonZero, canvas.Color{})
	require.Nil(t, vertices)
	require.Nil(t, indices)
}

func TestTessellateStrokeEmitsOneQuadPerSegment(t *testing.T) {
	line := []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10)}
	vertices, indices := tessellateStroke(line, false, 2, canvas.CapButt, canvas.JoinMiter, canvas.Color{A: 1})

	require.Len(t, vertices, 8) // 2 segments * 4 corners
	require.Len(t, indices, 12) // 2 segments * 2 triangles * 3
}

func TestTessellateStrokeClosedAddsClosingSegment(t *testing.T) {
	triangle := []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(5, 10)}
	vertices, _ := tessellateStroke(triangle, true, 1, canvas.CapButt, canvas.JoinMiter, canvas.Color{A: 1})
	require.Len(t, vertices, 12) // 3 segments, closed loop
}

func TestColorVertexPremultipliesAlpha(t *testing.T) {
	v := colorVertex(canvas.Color{R: 1, G: 1, B: 1, A: 0.5})
	require.InDelta(t, 0.5, v.R, 1e-9)
	require.InDelta(t, 0.5, v.A, 1e-9)
}
