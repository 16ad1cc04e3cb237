// Package geo implements the curves library of spec §4.C: bezier curves
// and bezier paths over 2D (primary) and 3D (ink pressure) point spaces,
// plus the path arithmetic (add, subtract, cut, remove-interior) used by
// the animation core's collide/cut/fill operations.
//
// Grounded on the teacher's geometry layer (gogpu-gg/curve.go, point.go,
// matrix.go, path.go, path_ops.go), generalized from a single 2D rendering
// path type into the full bezier-curve/path-arithmetic contract spec §4.C
// names.
package geo

import "math"

// Point is a 2D point or vector. Most of the curves library operates in 2D;
// ink pressure curves additionally carry a Z component (see Point3).
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Div(s float64) Point { return Point{X: p.X / s, Y: p.Y / s} }
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) LengthSquared() float64 { return p.X*p.X + p.Y*p.Y }
func (p Point) Length() float64 { return math.Sqrt(p.LengthSquared()) }
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Perp returns the vector rotated 90 degrees counter-clockwise, used to
// derive offset-curve normals.
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }

func (p Point) Rotate(angle float64) Point {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Lerp linearly interpolates between p and q; t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Point3 is a 3D point, used for ink-pressure curves (spec §4.C: "3D for
// ink pressure").
type Point3 struct {
	X, Y, Z float64
}

func Pt3(x, y, z float64) Point3 { return Point3{X: x, Y: y, Z: z} }

func (p Point3) Add(q Point3) Point3 { return Point3{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }
func (p Point3) Sub(q Point3) Point3 { return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func (p Point3) Mul(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }

func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	Min, Max Point
}

func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X && r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// SolveQuadratic solves a*t^2 + b*t + c = 0, returning real roots.
func SolveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
}

// SolveQuadraticInUnitInterval is SolveQuadratic filtered and sorted to the
// open interval (0,1), the form curve extremity-finding needs.
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	roots := SolveQuadratic(a, b, c)
	var out []float64
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	if len(out) == 2 && out[0] > out[1] {
		out[0], out[1] = out[1], out[0]
	}
	return out
}
