package render

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// segmentsPerCurve controls how finely geo.Path.Points flattens cubic
// segments before triangulation; same order of magnitude as the teacher's
// defaultFlatness-driven adaptive subdivision, traded here for a fixed
// step count since geo.Path already owns curve flattening (spec §4.C).
const segmentsPerCurve = 24

// tessellate converts a TessellationOp into vertex and index buffers.
func tessellate(op TessellationOp) ([]Vertex, []uint32) {
	points := transformPoints(op.Points, op.Transform)
	switch op.Kind {
	case TessellateStrokeKind:
		return tessellateStroke(points, op.Closed, op.Width, op.Cap, op.Join, op.Color)
	default:
		return tessellateFill(points, op.Winding, op.Color)
	}
}

func transformPoints(points []geo.Point, m geo.Matrix) []geo.Point {
	if m.IsIdentity() {
		return points
	}
	out := make([]geo.Point, len(points))
	for i, p := range points {
		out[i] = m.Apply(p)
	}
	return out
}

// tessellateFill triangulates a flattened polygon by fan triangulation
// from its first point, grounded directly on
// backend/gogpu/tessellate.go's TessellateFill. Like the teacher, this
// does not handle self-intersecting or non-convex-from-the-pivot
// polygons correctly; spec §4.C's winding rule only affects point-in-path
// tests elsewhere, not this triangulation.
func tessellateFill(points []geo.Point, winding canvas.WindingRuleStyle, color canvas.Color) ([]Vertex, []uint32) {
	if len(points) < 3 {
		return nil, nil
	}

	v := colorVertex(color)
	vertices := make([]Vertex, 0, len(points))
	for _, p := range points {
		vertices = append(vertices, Vertex{X: float32(p.X), Y: float32(p.Y), R: v.R, G: v.G, B: v.B, A: v.A})
	}

	indices := make([]uint32, 0, (len(points)-2)*3)
	for i := 1; i < len(points)-1; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	return vertices, indices
}

// tessellateStroke expands a polyline into a quad strip offset by half
// the line width on either side of each segment, closing with a final
// segment back to the start when closed. The teacher's tessellator only
// covers fills (backend/gogpu/tessellate.go has no stroke path); this is
// this port's own addition, built the same way (flatten, then emit
// triangles directly) rather than importing a dedicated stroker, since
// none of the pack carries one. Each segment is stroked as its own quad:
// no join or cap geometry is emitted, so ends are butt and op.Join/op.Cap
// are ignored.
func tessellateStroke(points []geo.Point, closed bool, width float64, cap canvas.LineCapStyle, join canvas.LineJoinStyle, color canvas.Color) ([]Vertex, []uint32) {
	if len(points) < 2 {
		return nil, nil
	}
	half := width / 2
	if half <= 0 {
		half = 0.5
	}

	v := colorVertex(color)
	var vertices []Vertex
	var indices []uint32

	segCount := len(points) - 1
	if closed {
		segCount = len(points)
	}

	for i := 0; i < segCount; i++ {
		a := points[i]
		b := points[(i+1)%len(points)]
		dir := b.Sub(a)
		if dir.LengthSquared() == 0 {
			continue
		}
		n := dir.Normalize().Perp().Mul(half)

		base := uint32(len(vertices))
		quad := [4]geo.Point{a.Add(n), a.Sub(n), b.Sub(n), b.Add(n)}
		for _, p := range quad {
			vertices = append(vertices, Vertex{X: float32(p.X), Y: float32(p.Y), R: v.R, G: v.G, B: v.B, A: v.A})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

func colorVertex(c canvas.Color) Vertex {
	a := float32(c.A)
	return Vertex{R: float32(c.R) * a, G: float32(c.G) * a, B: float32(c.B) * a, A: a}
}
