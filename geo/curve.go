package geo

import (
	"math"
	"sort"
)

// Curve is a cubic bezier curve with control points (Start, CP1, CP2, End),
// the primitive spec §4.C names as "Curve::from_points(start, (cp1, cp2),
// end)".
type Curve struct {
	Start, CP1, CP2, End Point
}

// FromPoints builds a Curve from its four control points.
func FromPoints(start Point, controls [2]Point, end Point) Curve {
	return Curve{Start: start, CP1: controls[0], CP2: controls[1], End: end}
}

// PointAtPos evaluates the curve at t via De Casteljau's algorithm.
func (c Curve) PointAtPos(t float64) Point {
	mt := 1 - t
	mt2, t2 := mt*mt, t*t
	return Point{
		X: mt2*mt*c.Start.X + 3*mt2*t*c.CP1.X + 3*mt*t2*c.CP2.X + t2*t*c.End.X,
		Y: mt2*mt*c.Start.Y + 3*mt2*t*c.CP1.Y + 3*mt*t2*c.CP2.Y + t2*t*c.End.Y,
	}
}

// Tangent returns the (unnormalized) derivative at t.
func (c Curve) Tangent(t float64) Point {
	mt := 1 - t
	d0 := c.CP1.Sub(c.Start)
	d1 := c.CP2.Sub(c.CP1)
	d2 := c.End.Sub(c.CP2)
	return Point{
		X: 3 * (d0.X*mt*mt + 2*d1.X*mt*t + d2.X*t*t),
		Y: 3 * (d0.Y*mt*mt + 2*d1.Y*mt*t + d2.Y*t*t),
	}
}

// Normal returns the unit normal at t (tangent rotated 90 degrees).
func (c Curve) Normal(t float64) Point {
	return c.Tangent(t).Perp().Normalize()
}

// Subdivide splits the curve at t into (left, right) via the four-point
// (De Casteljau) algorithm, per spec §4.C.
func (c Curve) Subdivide(t float64) (Curve, Curve) {
	p01 := c.Start.Lerp(c.CP1, t)
	p12 := c.CP1.Lerp(c.CP2, t)
	p23 := c.CP2.Lerp(c.End, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)

	return Curve{Start: c.Start, CP1: p01, CP2: p012, End: mid},
		Curve{Start: mid, CP1: p123, CP2: p23, End: c.End}
}

// Subsegment returns the portion of the curve between t0 and t1.
func (c Curve) Subsegment(t0, t1 float64) Curve {
	_, right := c.Subdivide(t0)
	// Re-parametrize t1 into the right segment's own [0,1] range.
	t1p := (t1 - t0) / (1 - t0)
	left, _ := right.Subdivide(t1p)
	return left
}

// FindExtremities returns the ordered t-values in (0,1) where the first
// derivative is zero, per axis, per spec §4.C.
func (c Curve) FindExtremities() []float64 {
	d0 := c.CP1.Sub(c.Start)
	d1 := c.CP2.Sub(c.CP1)
	d2 := c.End.Sub(c.CP2)

	ax := d0.X - 2*d1.X + d2.X
	bx := 2 * (d1.X - d0.X)
	cx := d0.X
	ay := d0.Y - 2*d1.Y + d2.Y
	by := 2 * (d1.Y - d0.Y)
	cy := d0.Y

	result := append(SolveQuadraticInUnitInterval(ax, bx, cx), SolveQuadraticInUnitInterval(ay, by, cy)...)
	sort.Float64s(result)
	return result
}

// BoundingBox returns the tight bounds via derivative roots (endpoints plus
// extremities).
func (c Curve) BoundingBox() Rect {
	bbox := NewRect(c.Start, c.End)
	for _, t := range c.FindExtremities() {
		p := c.PointAtPos(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// FastBoundingBox returns the convex hull of the four control points: an
// overestimate that is much cheaper than BoundingBox, per spec §4.C.
func (c Curve) FastBoundingBox() Rect {
	bbox := NewRect(c.Start, c.CP1)
	bbox = bbox.Union(NewRect(c.CP2, c.End))
	return bbox
}

// Length estimates arc length by flattening to line segments.
func (c Curve) Length() float64 {
	const steps = 32
	var total float64
	prev := c.Start
	for i := 1; i <= steps; i++ {
		p := c.PointAtPos(float64(i) / steps)
		total += prev.Distance(p)
		prev = p
	}
	return total
}

// fitCurveTolerance is the default per-segment Hausdorff-like error used
// when a caller does not supply one.
const fitCurveTolerance = 2.0

// FitCurve returns a minimal-count sequence of bezier curves approximating
// the polyline points with per-segment error <= maxError, recursing by
// splitting at the point of maximum error, per spec §4.C.
func FitCurve(points []Point, maxError float64) []Curve {
	if len(points) < 2 {
		return nil
	}
	if maxError <= 0 {
		maxError = fitCurveTolerance
	}
	tangent1 := normalizedTangent(points[1], points[0])
	n := len(points)
	tangent2 := normalizedTangent(points[n-2], points[n-1])
	return fitCubic(points, tangent1, tangent2, maxError)
}

func normalizedTangent(from, to Point) Point {
	d := to.Sub(from)
	return d.Normalize()
}

func fitCubic(points []Point, tan1, tan2 Point, maxError float64) []Curve {
	if len(points) == 2 {
		dist := points[0].Distance(points[1]) / 3
		curve := Curve{
			Start: points[0],
			CP1:   points[0].Add(tan1.Mul(dist)),
			CP2:   points[1].Add(tan2.Mul(dist)),
			End:   points[1],
		}
		return []Curve{curve}
	}

	u := chordLengthParameterize(points)
	curve := generateBezier(points, u, tan1, tan2)
	maxErr, splitIdx := computeMaxError(points, curve, u)

	if maxErr < maxError {
		return []Curve{curve}
	}

	if maxErr < maxError*4 {
		uPrime := reparameterize(points, u, curve)
		curve2 := generateBezier(points, uPrime, tan1, tan2)
		maxErr2, splitIdx2 := computeMaxError(points, curve2, uPrime)
		if maxErr2 < maxError {
			return []Curve{curve2}
		}
		splitIdx = splitIdx2
	}

	if splitIdx <= 0 {
		splitIdx = 1
	}
	if splitIdx >= len(points)-1 {
		splitIdx = len(points) - 2
	}
	centerTangent := centerTangentAt(points, splitIdx)

	left := fitCubic(points[:splitIdx+1], tan1, centerTangent.Mul(-1), maxError)
	right := fitCubic(points[splitIdx:], centerTangent, tan2, maxError)
	return append(left, right...)
}

func centerTangentAt(points []Point, idx int) Point {
	v1 := points[idx-1].Sub(points[idx])
	v2 := points[idx].Sub(points[idx+1])
	center := Point{X: (v1.X + v2.X) / 2, Y: (v1.Y + v2.Y) / 2}
	return center.Normalize()
}

// chordLengthParameterize assigns each point a parameter value proportional
// to cumulative chord length.
func chordLengthParameterize(points []Point) []float64 {
	u := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		u[i] = u[i-1] + points[i-1].Distance(points[i])
	}
	total := u[len(u)-1]
	if total == 0 {
		return u
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

// generateBezier fits CP1/CP2 to the points using least-squares against the
// tangent directions, holding the endpoints fixed.
func generateBezier(points []Point, u []float64, tan1, tan2 Point) Curve {
	n := len(points)
	first, last := points[0], points[n-1]

	var a [2][2]float64
	var c [2]float64

	for i, t := range u {
		b0, b1, b2, b3 := bernstein(t)
		a1 := tan1.Mul(b1)
		a2 := tan2.Mul(b2)

		a[0][0] += a1.Dot(a1)
		a[0][1] += a1.Dot(a2)
		a[1][0] = a[0][1]
		a[1][1] += a2.Dot(a2)

		tmp := points[i].Sub(first.Mul(b0 + b1)).Sub(last.Mul(b2 + b3))
		c[0] += a1.Dot(tmp)
		c[1] += a2.Dot(tmp)
	}

	det := a[0][0]*a[1][1] - a[0][1]*a[1][0]
	var alpha1, alpha2 float64
	segLen := first.Distance(last)
	if math.Abs(det) > 1e-12 {
		alpha1 = (c[0]*a[1][1] - c[1]*a[0][1]) / det
		alpha2 = (a[0][0]*c[1] - a[1][0]*c[0]) / det
	}

	epsilon := 1e-6 * segLen
	if alpha1 < epsilon || alpha2 < epsilon {
		dist := segLen / 3
		return Curve{
			Start: first,
			CP1:   first.Add(tan1.Mul(dist)),
			CP2:   last.Add(tan2.Mul(dist)),
			End:   last,
		}
	}

	return Curve{
		Start: first,
		CP1:   first.Add(tan1.Mul(alpha1)),
		CP2:   last.Add(tan2.Mul(alpha2)),
		End:   last,
	}
}

func bernstein(t float64) (b0, b1, b2, b3 float64) {
	mt := 1 - t
	b0 = mt * mt * mt
	b1 = 3 * mt * mt * t
	b2 = 3 * mt * t * t
	b3 = t * t * t
	return
}

func computeMaxError(points []Point, curve Curve, u []float64) (float64, int) {
	maxErr := 0.0
	splitIdx := len(points) / 2
	for i, p := range points {
		fit := curve.PointAtPos(u[i])
		d := fit.Distance(p)
		if d*d > maxErr {
			maxErr = d * d
			splitIdx = i
		}
	}
	return maxErr, splitIdx
}

func reparameterize(points []Point, u []float64, curve Curve) []float64 {
	out := make([]float64, len(u))
	for i, p := range points {
		out[i] = newtonRaphsonRootFind(curve, p, u[i])
	}
	return out
}

func newtonRaphsonRootFind(curve Curve, point Point, u float64) float64 {
	qu := curve.PointAtPos(u)
	q1 := curve.Tangent(u)
	diff := qu.Sub(point)
	numerator := diff.Dot(q1)
	denominator := q1.LengthSquared()
	if denominator == 0 {
		return u
	}
	result := u - numerator/denominator
	if result < 0 {
		return 0
	}
	if result > 1 {
		return 1
	}
	return result
}

// offsetErrorThreshold and offsetMaxSplitDepth are the numeric design
// decisions of spec §4.C, not tuning hints.
const (
	offsetErrorThreshold = 0.03
	offsetMaxSplitDepth  = 8
)

// Offset computes a variable-width parallel curve: control points are
// pushed along the endpoint normals by offsetStart/offsetEnd, mid-curve
// samples are corrected at t=0.25/0.75, and the result is subdivided
// (up to offsetMaxSplitDepth times) wherever the error sampled at t=0.5
// exceeds offsetErrorThreshold, per spec §4.C.
func Offset(c Curve, offsetStart, offsetEnd float64) []Curve {
	return offsetRecursive(c, offsetStart, offsetEnd, 0)
}

func offsetRecursive(c Curve, offStart, offEnd float64, depth int) []Curve {
	// Split at extremities first so a single offset segment never crosses
	// an inflection in curvature.
	extremities := c.FindExtremities()
	if len(extremities) > 0 && depth == 0 {
		var out []Curve
		prevT := 0.0
		prevCurve := c
		for _, t := range extremities {
			local := (t - prevT) / (1 - prevT)
			left, right := prevCurve.Subdivide(local)
			offAtSplit := lerpOffset(offStart, offEnd, t)
			out = append(out, offsetRecursive(left, lerpOffset(offStart, offEnd, prevT), offAtSplit, depth+1)...)
			prevCurve = right
			prevT = t
		}
		out = append(out, offsetRecursive(prevCurve, lerpOffset(offStart, offEnd, prevT), offEnd, depth+1)...)
		return out
	}

	approx := approximateOffset(c, offStart, offEnd)
	if depth >= offsetMaxSplitDepth {
		return []Curve{approx}
	}

	errAtMid := offsetError(c, approx, offStart, offEnd)
	if errAtMid <= offsetErrorThreshold {
		return []Curve{approx}
	}

	left, right := c.Subdivide(0.5)
	mid := lerpOffset(offStart, offEnd, 0.5)
	out := offsetRecursive(left, offStart, mid, depth+1)
	out = append(out, offsetRecursive(right, mid, offEnd, depth+1)...)
	return out
}

func lerpOffset(start, end, t float64) float64 { return start + (end-start)*t }

// approximateOffset pushes each control point along its local normal and
// corrects the interior control points using samples at t=0.25 and t=0.75.
func approximateOffset(c Curve, offStart, offEnd float64) Curve {
	n0 := c.Normal(0)
	n1 := c.Normal(1)

	start := c.Start.Add(n0.Mul(offStart))
	end := c.End.Add(n1.Mul(offEnd))

	p25 := c.PointAtPos(0.25).Add(c.Normal(0.25).Mul(lerpOffset(offStart, offEnd, 0.25)))
	p75 := c.PointAtPos(0.75).Add(c.Normal(0.75).Mul(lerpOffset(offStart, offEnd, 0.75)))

	// Recover CP1/CP2 from the two interior samples using the cubic
	// Bernstein basis at t=0.25 and t=0.75, holding start/end fixed.
	cp1, cp2 := solveInteriorControls(start, end, p25, p75)

	return Curve{Start: start, CP1: cp1, CP2: cp2, End: end}
}

func solveInteriorControls(start, end, p25, p75 Point) (Point, Point) {
	b0a, b1a, b2a, b3a := bernstein(0.25)
	b0b, b1b, b2b, b3b := bernstein(0.75)

	rhsA := p25.Sub(start.Mul(b0a)).Sub(end.Mul(b3a))
	rhsB := p75.Sub(start.Mul(b0b)).Sub(end.Mul(b3b))

	det := b1a*b2b - b2a*b1b
	if math.Abs(det) < 1e-12 {
		dist := start.Distance(end) / 3
		dir := end.Sub(start).Normalize()
		return start.Add(dir.Mul(dist)), end.Sub(dir.Mul(dist))
	}

	cp1X := (rhsA.X*b2b - rhsB.X*b2a) / det
	cp2X := (b1a*rhsB.X - b1b*rhsA.X) / det
	cp1Y := (rhsA.Y*b2b - rhsB.Y*b2a) / det
	cp2Y := (b1a*rhsB.Y - b1b*rhsA.Y) / det

	return Point{X: cp1X, Y: cp1Y}, Point{X: cp2X, Y: cp2Y}
}

// offsetError measures the deviation at t=0.5 between the true offset
// position and the approximated curve, per spec §4.C.
func offsetError(original, approx Curve, offStart, offEnd float64) float64 {
	truePos := original.PointAtPos(0.5).Add(original.Normal(0.5).Mul(lerpOffset(offStart, offEnd, 0.5)))
	approxPos := approx.PointAtPos(0.5)
	return truePos.Distance(approxPos)
}
