package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// ErrorElement stands in for an element that existed but could not be
// loaded from storage, per spec §3.3. It renders nothing and cannot be
// edited.
type ErrorElement struct {
	withID
}

// TheErrorElement is the single shared instance every failed load can
// point at, mirroring the original's static ERROR_ELEMENT.
var TheErrorElement = &ErrorElement{}

func (e *ErrorElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *ErrorElement) RenderStatic(*canvas.Recorder, *VectorProperties, Time) {}

func (e *ErrorElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {}

func (e *ErrorElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *ErrorElement) ControlPoints(*VectorProperties) []geo.Point { return nil }

func (e *ErrorElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}
