package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/region"
)

// AnimationRegionElement attaches a region.Description to the keyframe: a
// rendering modifier, not paintable geometry in its own right. Its
// RenderAnimated delegates to RenderStatic (which draws the region's own
// time-indexed content); it does not add the region to props, so the rest
// of the render walk does not see it.
type AnimationRegionElement struct {
	withID
	Description *region.Description
}

func NewAnimationRegionElement(id ElementID, desc *region.Description) *AnimationRegionElement {
	return &AnimationRegionElement{withID: withID{id: id}, Description: desc}
}

func (e *AnimationRegionElement) ToPath(*VectorProperties) []*geo.Path { return nil }

func (e *AnimationRegionElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	rec.Append(e.Description.Render(t))
}

func (e *AnimationRegionElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *AnimationRegionElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *AnimationRegionElement) ControlPoints(props *VectorProperties) []geo.Point {
	if e.Description == nil || e.Description.Outline == nil {
		return nil
	}
	points := []geo.Point{e.Description.Outline.Start}
	for _, seg := range e.Description.Outline.Segments {
		points = append(points, seg.End)
	}
	return applyTransformToPoints(points, props, false)
}

func (e *AnimationRegionElement) WithAdjustedControlPoints([]geo.Point, *VectorProperties) Element {
	return e
}
