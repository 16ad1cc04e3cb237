package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// BrushDefinitionElement sets the brush used by subsequent strokes; it is
// a property setter, not paintable geometry, per spec §3.3.
type BrushDefinitionElement struct {
	withID
	Definition Brush
	Style      BrushDrawingStyle
}

func NewBrushDefinitionElement(id ElementID, brush Brush, style BrushDrawingStyle) *BrushDefinitionElement {
	return &BrushDefinitionElement{withID: withID{id: id}, Definition: brush, Style: style}
}

func (e *BrushDefinitionElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *BrushDefinitionElement) RenderStatic(*canvas.Recorder, *VectorProperties, Time) {}

func (e *BrushDefinitionElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *BrushDefinitionElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	cp := props.Clone()
	cp.Brush = e.Definition
	cp.BrushProperties.Style = e.Style
	return cp
}

func (e *BrushDefinitionElement) ControlPoints(*VectorProperties) []geo.Point { return nil }

func (e *BrushDefinitionElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}

// BrushPropertiesElement sets color/opacity/style for subsequent strokes.
type BrushPropertiesElement struct {
	withID
	Properties BrushProperties
}

func NewBrushPropertiesElement(id ElementID, props BrushProperties) *BrushPropertiesElement {
	return &BrushPropertiesElement{withID: withID{id: id}, Properties: props}
}

func (e *BrushPropertiesElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *BrushPropertiesElement) RenderStatic(*canvas.Recorder, *VectorProperties, Time) {}

func (e *BrushPropertiesElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *BrushPropertiesElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	cp := props.Clone()
	cp.BrushProperties = e.Properties
	return cp
}

func (e *BrushPropertiesElement) ControlPoints(*VectorProperties) []geo.Point { return nil }

func (e *BrushPropertiesElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}

// InkPoint is one sample of a freehand brush stroke: position plus
// pressure, matching the 3D (X, Y, pressure) curve points spec §4.C
// mentions for ink-pressure fitting.
type InkPoint struct {
	Position geo.Point
	Pressure float64
}

// BrushElement is a raw freehand stroke plus its cached fitted outline.
type BrushElement struct {
	withID
	Points     []InkPoint
	cachedPath []*geo.Path
}

func NewBrushElement(id ElementID, points []InkPoint) *BrushElement {
	return &BrushElement{withID: withID{id: id}, Points: points}
}

// ToPath derives the stroke's outline by fitting a bezier path to the
// centerline then offsetting it by the brush's half-width on either side,
// per spec §4.C's variable-width offsetting.
func (e *BrushElement) ToPath(props *VectorProperties) []*geo.Path {
	if e.cachedPath != nil {
		return e.cachedPath
	}
	if len(e.Points) < 2 {
		return nil
	}

	centerline := make([]geo.Point, len(e.Points))
	for i, p := range e.Points {
		centerline[i] = p.Position
	}
	maxError := props.CurveFitMaxError
	if maxError <= 0 {
		maxError = defaultCurveFitMaxError
	}
	curves := geo.FitCurve(centerline, maxError)
	if len(curves) == 0 {
		return nil
	}

	halfWidth := props.Brush.Size / 2
	if halfWidth <= 0 {
		halfWidth = 0.5
	}

	path := geo.NewPath(curves[0].Start)
	var forward []geo.Curve
	for _, c := range curves {
		offset := geo.Offset(c, halfWidth, halfWidth)
		forward = append(forward, offset...)
	}
	for _, c := range forward {
		path.CubicTo(c.CP1, c.CP2, c.End)
	}
	for i := len(curves) - 1; i >= 0; i-- {
		c := curves[i]
		rev := geo.Curve{Start: c.End, CP1: c.CP2, CP2: c.CP1, End: c.Start}
		offset := geo.Offset(rev, halfWidth, halfWidth)
		for _, oc := range offset {
			path.CubicTo(oc.CP1, oc.CP2, oc.End)
		}
	}
	path.Close()

	e.cachedPath = []*geo.Path{path}
	return e.cachedPath
}

func (e *BrushElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	paths := e.ToPath(props)
	rec.FillColor(props.BrushProperties.Color)
	for _, p := range paths {
		recordPath(rec, p)
		rec.Fill()
	}
}

func (e *BrushElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *BrushElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *BrushElement) ControlPoints(props *VectorProperties) []geo.Point {
	points := make([]geo.Point, len(e.Points))
	for i, p := range e.Points {
		points[i] = p.Position
	}
	return applyTransformToPoints(points, props, false)
}

func (e *BrushElement) WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element {
	src := applyTransformToPoints(newPoints, props, true)
	points := make([]InkPoint, len(src))
	for i, p := range src {
		pressure := 1.0
		if i < len(e.Points) {
			pressure = e.Points[i].Pressure
		}
		points[i] = InkPoint{Position: p, Pressure: pressure}
	}
	return &BrushElement{withID: e.withID, Points: points}
}

// recordPath replays a geo.Path onto a canvas.Recorder as a new subpath,
// shared by every element variant that derives a path and needs to paint
// it via the canvas command model.
func recordPath(rec *canvas.Recorder, p *geo.Path) {
	rec.NewPath()
	rec.MoveTo(p.Start.X, p.Start.Y)
	cur := p.Start
	for _, seg := range p.Segments {
		rec.BezierCurveTo(seg.CP1.X, seg.CP1.Y, seg.CP2.X, seg.CP2.Y, seg.End.X, seg.End.Y)
		cur = seg.End
	}
	_ = cur
	if p.IsClosed() {
		rec.ClosePath()
	}
}
