package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// PathElement is a bezier path element: it returns itself from ToPath and
// paints by filling itself with the accumulated brush colour; it is never
// stroked.
type PathElement struct {
	withID
	PathData *geo.Path
}

func NewPathElement(id ElementID, path *geo.Path) *PathElement {
	return &PathElement{withID: withID{id: id}, PathData: path}
}

func (e *PathElement) ToPath(*VectorProperties) []*geo.Path {
	return []*geo.Path{e.PathData}
}

func (e *PathElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	recordPath(rec, e.PathData)
	rec.FillColor(props.BrushProperties.Color)
	rec.Fill()
}

func (e *PathElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *PathElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *PathElement) ControlPoints(props *VectorProperties) []geo.Point {
	points := []geo.Point{e.PathData.Start}
	for _, seg := range e.PathData.Segments {
		points = append(points, seg.CP1, seg.CP2, seg.End)
	}
	return applyTransformToPoints(points, props, false)
}

func (e *PathElement) WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element {
	src := applyTransformToPoints(newPoints, props, true)
	if len(src) == 0 {
		return e
	}
	np := geo.NewPath(src[0])
	rest := src[1:]
	for len(rest) >= 3 {
		np.CubicTo(rest[0], rest[1], rest[2])
		rest = rest[3:]
	}
	if e.PathData.IsClosed() {
		np.Close()
	}
	return &PathElement{withID: e.withID, PathData: np}
}
