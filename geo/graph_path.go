package geo

import "math"

// EdgeKind tags a GraphPath edge as interior or exterior to the region
// being reconstructed, per spec §4.C: "a directed multigraph of control-
// point quadruples, each edge tagged Interior or Exterior".
type EdgeKind int

const (
	Exterior EdgeKind = iota
	Interior
)

// GraphEdge is one directed cubic segment of a GraphPath, carrying which
// source path it came from (0 or 1) for boolean-operation bookkeeping.
type GraphEdge struct {
	Curve  Curve
	Kind   EdgeKind
	Source int
}

// GraphPath is the internal multigraph path arithmetic is performed over,
// per spec §4.C.
type GraphPath struct {
	Edges []GraphEdge
}

const mergeTolerance = 1e-6

func pointKey(p Point) [2]int64 {
	const scale = 1e6
	return [2]int64{int64(math.Round(p.X * scale)), int64(math.Round(p.Y * scale))}
}

// newGraphPath builds a GraphPath from a single source path, tagging every
// edge with the given source index and Exterior by default.
func newGraphPath(p *Path, source int) *GraphPath {
	g := &GraphPath{}
	for _, c := range p.Curves() {
		g.Edges = append(g.Edges, GraphEdge{Curve: c, Kind: Exterior, Source: source})
	}
	return g
}

// merge combines two graphs' edge lists, the first step of any boolean
// operation per spec §4.C ("merging two graphs").
func mergeGraphs(a, b *GraphPath) *GraphPath {
	out := &GraphPath{}
	out.Edges = append(out.Edges, a.Edges...)
	out.Edges = append(out.Edges, b.Edges...)
	return out
}

// classify re-tags every edge of g by testing, for each edge from source s,
// whether its midpoint lies inside the *other* source path (against).
func classify(g *GraphPath, pathsBySource [2]*Path) {
	for i := range g.Edges {
		e := &g.Edges[i]
		other := pathsBySource[1-e.Source]
		mid := e.Curve.PointAtPos(0.5)
		if Contains(other, mid, NonZero) {
			e.Kind = Interior
		} else {
			e.Kind = Exterior
		}
	}
}

// walk reconstructs closed Path contours by following edges matching
// endpoint-to-startpoint within mergeTolerance, the "walk exterior edges to
// reconstruct output paths" step of spec §4.C.
func walk(edges []GraphEdge) []*Path {
	byStart := make(map[[2]int64][]int)
	used := make([]bool, len(edges))
	for i, e := range edges {
		k := pointKey(e.Curve.Start)
		byStart[k] = append(byStart[k], i)
	}

	var out []*Path
	for i := range edges {
		if used[i] {
			continue
		}
		cur := i
		used[cur] = true
		path := NewPath(edges[cur].Curve.Start)
		path.Segments = append(path.Segments, Segment{
			CP1: edges[cur].Curve.CP1, CP2: edges[cur].Curve.CP2, End: edges[cur].Curve.End,
		})
		start := edges[cur].Curve.Start
		end := edges[cur].Curve.End

		for end.Distance(start) > mergeTolerance {
			candidates := byStart[pointKey(end)]
			next := -1
			for _, c := range candidates {
				if !used[c] {
					next = c
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			path.Segments = append(path.Segments, Segment{
				CP1: edges[next].Curve.CP1, CP2: edges[next].Curve.CP2, End: edges[next].Curve.End,
			})
			end = edges[next].Curve.End
		}
		out = append(out, path)
	}
	return out
}

// PathAdd returns the union of a and b (boolean OR): the edges of each
// path that lie outside the other, per spec §4.C.
func PathAdd(a, b *Path) []*Path {
	g := mergeGraphs(newGraphPath(a, 0), newGraphPath(b, 1))
	classify(g, [2]*Path{a, b})
	var kept []GraphEdge
	for _, e := range g.Edges {
		if e.Kind == Exterior {
			kept = append(kept, e)
		}
	}
	return walk(kept)
}

// PathIntersect returns the intersection of a and b (boolean AND): edges of
// each path that lie inside the other, per spec §4.C.
func PathIntersect(a, b *Path) []*Path {
	g := mergeGraphs(newGraphPath(a, 0), newGraphPath(b, 1))
	classify(g, [2]*Path{a, b})
	var kept []GraphEdge
	for _, e := range g.Edges {
		if e.Kind == Interior {
			kept = append(kept, e)
		}
	}
	return walk(kept)
}

// PathSub returns a minus b (boolean difference): a's edges outside b, plus
// b's edges inside a reversed (to flip winding so the hole faces outward),
// per spec §4.C.
func PathSub(a, b *Path) []*Path {
	g := mergeGraphs(newGraphPath(a, 0), newGraphPath(b, 1))
	classify(g, [2]*Path{a, b})
	var kept []GraphEdge
	for _, e := range g.Edges {
		switch {
		case e.Source == 0 && e.Kind == Exterior:
			kept = append(kept, e)
		case e.Source == 1 && e.Kind == Interior:
			kept = append(kept, reverseEdge(e))
		}
	}
	return walk(kept)
}

func reverseEdge(e GraphEdge) GraphEdge {
	c := e.Curve
	return GraphEdge{
		Curve:  Curve{Start: c.End, CP1: c.CP2, CP2: c.CP1, End: c.Start},
		Kind:   e.Kind,
		Source: e.Source,
	}
}

// CutResult is the (inside, outside) pair produced by PathCut.
type CutResult struct {
	Inside  []*Path
	Outside []*Path
}

// PathCut splits source by cut, returning the parts of source inside cut
// and outside cut, per spec §4.C: path_cut(source, cut) -> (inside, outside).
// Satisfies the cut-join law (spec §8.2): PathAdd(inside, outside) ≡ source
// up to RemoveOverlappedPoints.
func PathCut(source, cut *Path) CutResult {
	return CutResult{
		Inside:  PathIntersect(source, cut),
		Outside: PathSub(source, cut),
	}
}
