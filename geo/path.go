package geo

const closeTolerance = 0.01

// Segment is one curved segment of a Path: the control points and end
// point of a cubic bezier following the path's current point. Move/Line/
// Close are desugared into cubic control points at construction time, per
// spec §4.C ("a line or close produces cubic control points at the 1/3
// and 2/3 positions of the straight segment").
type Segment struct {
	CP1, CP2, End Point
}

// Path is a bezier path: a start point followed by a sequence of cubic
// segments, per spec §4.C ("a path is start_point + [(cp1, cp2, end)]").
type Path struct {
	Start    Point
	Segments []Segment
}

// NewPath creates an empty path starting at start.
func NewPath(start Point) *Path {
	return &Path{Start: start}
}

// desugarLine produces the 1/3, 2/3 control points of a straight segment
// from `from` to `to`.
func desugarLine(from, to Point) Segment {
	return Segment{
		CP1: from.Lerp(to, 1.0/3.0),
		CP2: from.Lerp(to, 2.0/3.0),
		End: to,
	}
}

// LineTo appends a straight line segment, desugared to cubic form.
func (p *Path) LineTo(to Point) *Path {
	from := p.currentPoint()
	p.Segments = append(p.Segments, desugarLine(from, to))
	return p
}

// CubicTo appends a genuine cubic bezier segment.
func (p *Path) CubicTo(cp1, cp2, end Point) *Path {
	p.Segments = append(p.Segments, Segment{CP1: cp1, CP2: cp2, End: end})
	return p
}

// Close appends a straight segment back to Start if the path is not
// already closed within closeTolerance.
func (p *Path) Close() *Path {
	cur := p.currentPoint()
	if cur.Distance(p.Start) > closeTolerance {
		p.Segments = append(p.Segments, desugarLine(cur, p.Start))
	}
	return p
}

func (p *Path) currentPoint() Point {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].End
}

// IsClosed reports whether the path's end point is within closeTolerance
// of its start.
func (p *Path) IsClosed() bool {
	return p.currentPoint().Distance(p.Start) <= closeTolerance
}

// Curves materializes the path's segments as a slice of Curve, one per
// cubic segment, threading the running current point.
func (p *Path) Curves() []Curve {
	curves := make([]Curve, 0, len(p.Segments))
	cur := p.Start
	for _, s := range p.Segments {
		curves = append(curves, Curve{Start: cur, CP1: s.CP1, CP2: s.CP2, End: s.End})
		cur = s.End
	}
	return curves
}

// BoundingBox returns the union of every segment's tight bounding box.
func (p *Path) BoundingBox() Rect {
	curves := p.Curves()
	if len(curves) == 0 {
		return NewRect(p.Start, p.Start)
	}
	bbox := curves[0].BoundingBox()
	for _, c := range curves[1:] {
		bbox = bbox.Union(c.BoundingBox())
	}
	return bbox
}

// FastBoundingBox is the cheap convex-hull-of-control-points overestimate,
// summed across every segment.
func (p *Path) FastBoundingBox() Rect {
	curves := p.Curves()
	if len(curves) == 0 {
		return NewRect(p.Start, p.Start)
	}
	bbox := curves[0].FastBoundingBox()
	for _, c := range curves[1:] {
		bbox = bbox.Union(c.FastBoundingBox())
	}
	return bbox
}

// Points flattens the path into a polyline approximation, used as input to
// raycasting and to FitCurve round-trips.
func (p *Path) Points(segmentsPerCurve int) []Point {
	if segmentsPerCurve <= 0 {
		segmentsPerCurve = 16
	}
	var pts []Point
	pts = append(pts, p.Start)
	for _, c := range p.Curves() {
		for i := 1; i <= segmentsPerCurve; i++ {
			pts = append(pts, c.PointAtPos(float64(i)/float64(segmentsPerCurve)))
		}
	}
	return pts
}

// Reversed returns a new path tracing the same geometry in the opposite
// direction, used by path arithmetic when re-orienting a contour.
func (p *Path) Reversed() *Path {
	curves := p.Curves()
	if len(curves) == 0 {
		return NewPath(p.Start)
	}
	out := NewPath(curves[len(curves)-1].End)
	for i := len(curves) - 1; i >= 0; i-- {
		c := curves[i]
		out.Segments = append(out.Segments, Segment{CP1: c.CP2, CP2: c.CP1, End: c.Start})
	}
	return out
}

// Transform applies m to every control point and the start point,
// returning a new Path.
func (p *Path) Transform(m Matrix) *Path {
	out := NewPath(m.Apply(p.Start))
	for _, s := range p.Segments {
		out.Segments = append(out.Segments, Segment{
			CP1: m.Apply(s.CP1),
			CP2: m.Apply(s.CP2),
			End: m.Apply(s.End),
		})
	}
	return out
}
