package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// MotionElement is the legacy motion-description element, superseded by
// animation regions per spec §3.3 ("Motion (legacy)") and Open Question
// decision (b) recorded in DESIGN.md: preserved verbatim through
// internal/wire round trips, but contributes nothing at render time.
type MotionElement struct {
	withID
	RawData []byte
}

func NewMotionElement(id ElementID, raw []byte) *MotionElement {
	return &MotionElement{withID: withID{id: id}, RawData: raw}
}

func (e *MotionElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *MotionElement) RenderStatic(*canvas.Recorder, *VectorProperties, Time) {}

func (e *MotionElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *MotionElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *MotionElement) ControlPoints(*VectorProperties) []geo.Point { return nil }

func (e *MotionElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}
