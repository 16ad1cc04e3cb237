package geo

import "math"

// Matrix is a 2D affine transform in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// x' = A*x + B*y + C ; y' = D*x + E*y + F
//
// Grounded on the teacher's matrix.go, renamed Apply/Compose to match the
// vocabulary spec §4.D ("control_points", "with_adjusted_control_points")
// uses for applying/inverting attached transformations.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Matrix { return Matrix{A: 1, E: 1} }

func Translate(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

func Scale(x, y float64) Matrix { return Matrix{A: x, E: y} }

func Rotate(angle float64) Matrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Compose returns the matrix that applies m first, then other (other * m).
func (m Matrix) Compose(other Matrix) Matrix {
	return Matrix{
		A: other.A*m.A + other.B*m.D,
		B: other.A*m.B + other.B*m.E,
		C: other.A*m.C + other.B*m.F + other.C,
		D: other.D*m.A + other.E*m.D,
		E: other.D*m.B + other.E*m.E,
		F: other.D*m.C + other.E*m.F + other.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// ApplyVector transforms a direction vector, ignoring translation.
func (m Matrix) ApplyVector(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y, Y: m.D*p.X + m.E*p.Y}
}

// Invert returns the inverse transform, or Identity if m is singular.
func (m Matrix) Invert() Matrix {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1.0 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}
}

func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 0 && m.E == 1 && m.F == 0
}
