package geo

import "math"

// WindingRule selects how a multi-subpath fill decides interior vs
// exterior, mirroring the canvas command alphabet's WindingRule.
type WindingRule int

const (
	NonZero WindingRule = iota
	EvenOdd
)

// flattenForWinding returns the line-segment approximation of pt's path used
// by Winding; 16 samples per curve is accurate enough for the fill-rule
// tests the animation core performs (collide/fill candidate screening),
// without the cost of a closed-form cubic winding integral.
func flattenForWinding(p *Path) []Point {
	return p.Points(16)
}

// Winding computes the winding number of pt relative to p using a
// horizontal ray cast against the flattened polyline, in the spirit of the
// teacher's path_ops.go ray-casting winding test generalized from line/quad/
// cubic closed forms to a single flattened representation (the path
// arithmetic and raycasting operations that consume this only need the
// sign, not sub-segment precision).
func Winding(p *Path, pt Point) int {
	pts := flattenForWinding(p)
	if len(pts) < 2 {
		return 0
	}
	winding := 0
	for i := 0; i < len(pts)-1; i++ {
		winding += lineWinding(pts[i], pts[i+1], pt)
	}
	// Implicit closing edge back to start.
	winding += lineWinding(pts[len(pts)-1], pts[0], pt)
	return winding
}

func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y {
		if p1.Y > pt.Y && isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else {
		if p1.Y <= pt.Y && isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains reports whether pt is inside p under the given fill rule.
func Contains(p *Path, pt Point, rule WindingRule) bool {
	w := Winding(p, pt)
	if rule == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Area returns the shoelace-formula signed area of the flattened path.
// Positive for clockwise paths under a Y-down coordinate system.
func Area(p *Path) float64 {
	pts := flattenForWinding(p)
	if len(pts) < 3 {
		return 0
	}
	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area / 2
}

// RemoveOverlappedPoints merges consecutive points closer than tolerance,
// per spec §4.C's path_remove_overlapped_points(tolerance).
func RemoveOverlappedPoints(p *Path, tolerance float64) *Path {
	curves := p.Curves()
	if len(curves) == 0 {
		return p
	}
	out := NewPath(curves[0].Start)
	last := curves[0].Start
	for _, c := range curves {
		if c.End.Distance(last) <= tolerance {
			continue
		}
		out.Segments = append(out.Segments, Segment{CP1: c.CP1, CP2: c.CP2, End: c.End})
		last = c.End
	}
	return out
}

// RemoveInteriorPoints strips the portions of a (possibly self-overlapping)
// path whose winding number under itself is greater than one in absolute
// value, per spec §4.C's path_remove_interior_points — used after a concave
// fill trace or an Added-group union to discard doubly-covered boundary.
func RemoveInteriorPoints(p *Path) *Path {
	curves := p.Curves()
	if len(curves) == 0 {
		return p
	}
	kept := make([]Curve, 0, len(curves))
	for _, c := range curves {
		mid := c.PointAtPos(0.5)
		if math.Abs(float64(Winding(p, mid))) <= 1 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return p
	}
	out := NewPath(kept[0].Start)
	for _, c := range kept {
		out.Segments = append(out.Segments, Segment{CP1: c.CP1, CP2: c.CP2, End: c.End})
	}
	return out
}
