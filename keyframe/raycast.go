package keyframe

import (
	"math"
	"sort"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// Intersection is one point where a ray crosses an element's path, per
// spec §4.F responsibility 3.
type Intersection struct {
	T         float64
	ElementID vector.ElementID
}

// RayCast tests the straight segment from a to b against the path of
// every element in render order that has a path and an opaque fill, at
// time t, returning intersections sorted by t along the segment. Used by
// flood fill to find the enclosing boundary at a click point.
//
// Grounded on spec §4.F's raycast contract; the per-curve intersection
// test is simplified to a flattened-polyline segment intersection (see
// geo/winding.go's flattenForWinding), the same approximation that
// package's Winding/Contains already document, rather than an exact
// curve-vs-line root solve.
func (c *Core) RayCast(a, b geo.Point, t time.Duration) []Intersection {
	props := vector.DefaultVectorProperties()
	props.AttachmentsFor = func(id vector.ElementID) []vector.ElementID {
		if w, ok := c.elements[id]; ok {
			return w.Attachments
		}
		return nil
	}
	props.ElementFor = func(id vector.ElementID) vector.Element {
		if w, ok := c.elements[id]; ok {
			return w.Element
		}
		return nil
	}

	var hits []Intersection
	for _, w := range c.RenderOrder() {
		if w.Unattached {
			continue
		}
		props = w.Element.UpdateProperties(props, t)
		if props.BrushProperties.Color.A <= 0 {
			continue
		}

		paths := w.Element.ToPath(props)
		for _, p := range paths {
			for _, hitT := range segmentPathIntersections(a, b, p) {
				hits = append(hits, Intersection{T: hitT, ElementID: w.id()})
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// segmentPathIntersections flattens p into a polyline and intersects
// every edge against the probe segment a-b, returning the parametric
// position (0..1) along a-b for each crossing.
func segmentPathIntersections(a, b geo.Point, p *geo.Path) []float64 {
	points := p.Points(16)
	if len(points) < 2 {
		return nil
	}

	var ts []float64
	for i := 0; i < len(points)-1; i++ {
		if t, ok := segmentIntersection(a, b, points[i], points[i+1]); ok {
			ts = append(ts, t)
		}
	}
	return ts
}

// segmentIntersection returns the parametric position along a-b where it
// crosses c-d, if they cross within a-b and within c-d's half-open range
// [c, d): a crossing exactly at d belongs to the next edge, so a shared
// vertex of a flattened path is counted once.
func segmentIntersection(a, b, c, d geo.Point) (float64, bool) {
	r := geo.Pt(b.X-a.X, b.Y-a.Y)
	s := geo.Pt(d.X-c.X, d.Y-c.Y)

	denom := r.X*s.Y - r.Y*s.X
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}

	diff := geo.Pt(c.X-a.X, c.Y-a.Y)
	tParam := (diff.X*s.Y - diff.Y*s.X) / denom
	uParam := (diff.X*r.Y - diff.Y*r.X) / denom

	if tParam < 0 || tParam > 1 || uParam < 0 || uParam >= 1 {
		return 0, false
	}
	return tParam, true
}
