package vector

import (
	"math"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// ShapeKind enumerates the parametric shapes spec §3.3 names; grounded on
// gogpu-gg/scene/shape.go's per-kind ToPath() derivation.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
	ShapePolygon
)

// ShapeElement is a parametric shape with a derivable outline, per spec
// §3.3 ("parametric shape with derivable brush points").
type ShapeElement struct {
	withID
	Kind ShapeKind

	// Rectangle
	X, Y, Width, Height float64

	// Circle
	CenterX, CenterY, Radius float64

	// Polygon
	Vertices []geo.Point
}

func NewRectangleShape(id ElementID, x, y, w, h float64) *ShapeElement {
	return &ShapeElement{withID: withID{id: id}, Kind: ShapeRectangle, X: x, Y: y, Width: w, Height: h}
}

func NewCircleShape(id ElementID, cx, cy, r float64) *ShapeElement {
	return &ShapeElement{withID: withID{id: id}, Kind: ShapeCircle, CenterX: cx, CenterY: cy, Radius: r}
}

func NewPolygonShape(id ElementID, vertices []geo.Point) *ShapeElement {
	return &ShapeElement{withID: withID{id: id}, Kind: ShapePolygon, Vertices: vertices}
}

func (e *ShapeElement) ToPath(*VectorProperties) []*geo.Path {
	switch e.Kind {
	case ShapeRectangle:
		p := geo.NewPath(geo.Pt(e.X, e.Y))
		p.LineTo(geo.Pt(e.X+e.Width, e.Y))
		p.LineTo(geo.Pt(e.X+e.Width, e.Y+e.Height))
		p.LineTo(geo.Pt(e.X, e.Y+e.Height))
		p.Close()
		return []*geo.Path{p}

	case ShapeCircle:
		const k = 0.5522847498
		r := e.Radius
		cx, cy := e.CenterX, e.CenterY
		p := geo.NewPath(geo.Pt(cx+r, cy))
		p.CubicTo(geo.Pt(cx+r, cy+r*k), geo.Pt(cx+r*k, cy+r), geo.Pt(cx, cy+r))
		p.CubicTo(geo.Pt(cx-r*k, cy+r), geo.Pt(cx-r, cy+r*k), geo.Pt(cx-r, cy))
		p.CubicTo(geo.Pt(cx-r, cy-r*k), geo.Pt(cx-r*k, cy-r), geo.Pt(cx, cy-r))
		p.CubicTo(geo.Pt(cx+r*k, cy-r), geo.Pt(cx+r, cy-r*k), geo.Pt(cx+r, cy))
		p.Close()
		return []*geo.Path{p}

	case ShapePolygon:
		if len(e.Vertices) < 2 {
			return nil
		}
		p := geo.NewPath(e.Vertices[0])
		for _, v := range e.Vertices[1:] {
			p.LineTo(v)
		}
		p.Close()
		return []*geo.Path{p}
	}
	return nil
}

func (e *ShapeElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	for _, p := range e.ToPath(props) {
		recordPath(rec, p)
	}
	rec.FillColor(props.BrushProperties.Color)
	rec.Fill()
}

func (e *ShapeElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *ShapeElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *ShapeElement) ControlPoints(props *VectorProperties) []geo.Point {
	var points []geo.Point
	switch e.Kind {
	case ShapeRectangle:
		points = []geo.Point{
			geo.Pt(e.X, e.Y), geo.Pt(e.X+e.Width, e.Y),
			geo.Pt(e.X+e.Width, e.Y+e.Height), geo.Pt(e.X, e.Y+e.Height),
		}
	case ShapeCircle:
		points = []geo.Point{
			geo.Pt(e.CenterX+e.Radius, e.CenterY), geo.Pt(e.CenterX, e.CenterY+e.Radius),
			geo.Pt(e.CenterX-e.Radius, e.CenterY), geo.Pt(e.CenterX, e.CenterY-e.Radius),
		}
	case ShapePolygon:
		points = append(points, e.Vertices...)
	}
	return applyTransformToPoints(points, props, false)
}

func (e *ShapeElement) WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element {
	src := applyTransformToPoints(newPoints, props, true)
	cp := *e
	switch e.Kind {
	case ShapeRectangle:
		if len(src) >= 3 {
			cp.X, cp.Y = src[0].X, src[0].Y
			cp.Width = src[1].X - src[0].X
			cp.Height = src[2].Y - src[1].Y
		}
	case ShapeCircle:
		if len(src) >= 1 {
			cp.Radius = math.Hypot(src[0].X-e.CenterX, src[0].Y-e.CenterY)
		}
	case ShapePolygon:
		cp.Vertices = append([]geo.Point(nil), src...)
	}
	return &cp
}
