package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// TransformedElement wraps a source element with applied transformations,
// preserving a back-reference to the un-transformed original per spec
// §3.3 ("preserves a back-reference to the original element").
type TransformedElement struct {
	withID
	Source          Element
	Transformations []geo.Matrix
}

func NewTransformedElement(id ElementID, source Element, transforms []geo.Matrix) *TransformedElement {
	return &TransformedElement{withID: withID{id: id}, Source: source, Transformations: transforms}
}

// WithoutTransformations returns the original, un-transformed source.
func (e *TransformedElement) WithoutTransformations() Element { return e.Source }

func (e *TransformedElement) propsWithTransform(props *VectorProperties) *VectorProperties {
	cp := props.Clone()
	cp.Transformations = append(cp.Transformations, e.Transformations...)
	return cp
}

func (e *TransformedElement) ToPath(props *VectorProperties) []*geo.Path {
	return e.Source.ToPath(e.propsWithTransform(props))
}

func (e *TransformedElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.Source.RenderStatic(rec, e.propsWithTransform(props), t)
}

func (e *TransformedElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.Source.RenderAnimated(rec, e.propsWithTransform(props), t)
}

func (e *TransformedElement) UpdateProperties(props *VectorProperties, t Time) *VectorProperties {
	return e.Source.UpdateProperties(props, t)
}

func (e *TransformedElement) ControlPoints(props *VectorProperties) []geo.Point {
	return e.Source.ControlPoints(e.propsWithTransform(props))
}

func (e *TransformedElement) WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element {
	adjusted := e.Source.WithAdjustedControlPoints(newPoints, e.propsWithTransform(props))
	return &TransformedElement{withID: e.withID, Source: adjusted, Transformations: e.Transformations}
}

// TransformationElement attaches a set of transformations to another
// element by id; it is a rendering modifier, not paintable geometry.
type TransformationElement struct {
	withID
	Target          ElementID
	Transformations []geo.Matrix
}

func NewTransformationElement(id ElementID, target ElementID, transforms []geo.Matrix) *TransformationElement {
	return &TransformationElement{withID: withID{id: id}, Target: target, Transformations: transforms}
}

func (e *TransformationElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *TransformationElement) RenderStatic(*canvas.Recorder, *VectorProperties, Time) {}

func (e *TransformationElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *TransformationElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	if len(e.Transformations) == 0 {
		return props
	}
	cp := props.Clone()
	cp.Transformations = append(cp.Transformations, e.Transformations...)
	return cp
}

func (e *TransformationElement) ControlPoints(*VectorProperties) []geo.Point { return nil }

func (e *TransformationElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}
