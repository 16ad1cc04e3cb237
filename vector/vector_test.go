package vector

import (
	"testing"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/stretchr/testify/require"
)

func TestBrushDefinitionUpdatesProperties(t *testing.T) {
	base := DefaultVectorProperties()
	def := NewBrushDefinitionElement(Assigned(1), Brush{Name: "charcoal", Size: 4}, DrawingStyleErase)

	updated := def.UpdateProperties(base, 0)
	require.Equal(t, "charcoal", updated.Brush.Name)
	require.Equal(t, DrawingStyleErase, updated.BrushProperties.Style)
	require.Equal(t, "ink", base.Brush.Name, "original properties must be unchanged")
}

func TestPathElementRoundTripsControlPoints(t *testing.T) {
	p := geo.NewPath(geo.Pt(0, 0))
	p.CubicTo(geo.Pt(1, 0), geo.Pt(1, 1), geo.Pt(0, 1))

	el := NewPathElement(Assigned(2), p)
	props := DefaultVectorProperties()

	points := el.ControlPoints(props)
	require.Len(t, points, 4)

	moved := make([]geo.Point, len(points))
	copy(moved, points)
	moved[3] = geo.Pt(5, 5)

	adjusted := el.WithAdjustedControlPoints(moved, props).(*PathElement)
	require.Equal(t, geo.Pt(5, 5), adjusted.PathData.Segments[0].End)
}

func TestGroupAddedUnionsChildPaths(t *testing.T) {
	rectA := NewRectangleShape(Assigned(1), 0, 0, 10, 10)
	rectB := NewRectangleShape(Assigned(2), 5, 5, 10, 10)
	group := NewGroupElement(Assigned(3), GroupAdded, []Element{rectA, rectB})

	props := DefaultVectorProperties()
	paths := group.ToPath(props)
	require.NotEmpty(t, paths)
}

func TestGroupAddedHintPathShortCircuits(t *testing.T) {
	hint := geo.NewPath(geo.Pt(0, 0))
	hint.LineTo(geo.Pt(1, 0))
	hint.Close()

	group := &GroupElement{withID: withID{id: Assigned(1)}, Type: GroupAdded, HintPath: hint}
	props := DefaultVectorProperties()

	paths := group.ToPath(props)
	require.Len(t, paths, 1)
	require.Equal(t, hint.Start, paths[0].Start)
}

func TestTransformedElementControlPointsIncludeItsTransform(t *testing.T) {
	rect := NewRectangleShape(Assigned(1), 0, 0, 10, 10)
	transformed := NewTransformedElement(Assigned(2), rect, []geo.Matrix{geo.Translate(5, 5)})

	props := DefaultVectorProperties()
	points := transformed.ControlPoints(props)
	require.Equal(t, geo.Pt(5, 5), points[0])
}

func TestGroupAttachmentFoldsBrushPropertiesIntoSiblingRender(t *testing.T) {
	rect := NewRectangleShape(Assigned(1), 0, 0, 10, 10)
	attachment := NewBrushPropertiesElement(Assigned(2), BrushProperties{Color: canvas.Color{R: 1, A: 1}, Opacity: 1})
	group := NewGroupElement(Assigned(3), GroupNormal, []Element{rect})

	elements := map[ElementID]Element{attachment.ID(): attachment}
	attachments := map[ElementID][]ElementID{rect.ID(): {attachment.ID()}}

	props := DefaultVectorProperties()
	props.AttachmentsFor = func(id ElementID) []ElementID { return attachments[id] }
	props.ElementFor = func(id ElementID) Element { return elements[id] }

	rec := canvas.NewRecorder()
	group.RenderStatic(rec, props, 0)
	drawing := rec.Finish()

	var sawAttachedColor bool
	for _, d := range drawing {
		if d.Op == canvas.OpFillColor && d.Color == attachment.Properties.Color {
			sawAttachedColor = true
		}
	}
	require.True(t, sawAttachedColor, "attached BrushProperties must change the color subsequent siblings paint with")
}

func TestGroupAttachmentFoldsTransformationIntoSiblingControlPoints(t *testing.T) {
	rect := NewRectangleShape(Assigned(1), 0, 0, 10, 10)
	attachment := NewTransformationElement(Assigned(2), rect.ID(), []geo.Matrix{geo.Translate(5, 5)})
	group := NewGroupElement(Assigned(3), GroupNormal, []Element{rect})

	elements := map[ElementID]Element{attachment.ID(): attachment}
	attachments := map[ElementID][]ElementID{rect.ID(): {attachment.ID()}}

	props := DefaultVectorProperties()
	props.AttachmentsFor = func(id ElementID) []ElementID { return attachments[id] }
	props.ElementFor = func(id ElementID) Element { return elements[id] }

	var captured *VectorProperties
	props.Render = func(rec *canvas.Recorder, el Element, p *VectorProperties, t Time) {
		captured = p
		el.RenderStatic(rec, p, t)
	}

	rec := canvas.NewRecorder()
	group.RenderStatic(rec, props, 0)

	require.NotNil(t, captured)
	points := rect.ControlPoints(captured)
	require.Equal(t, geo.Pt(5, 5), points[0])
}

func TestShapeElementRenderStaticEmitsFill(t *testing.T) {
	rect := NewRectangleShape(Assigned(1), 0, 0, 10, 10)
	props := DefaultVectorProperties()
	rec := canvas.NewRecorder()

	rect.RenderStatic(rec, props, 0)
	drawing := rec.Finish()

	var hasFill bool
	for _, d := range drawing {
		if d.Op == canvas.OpFill {
			hasFill = true
		}
	}
	require.True(t, hasFill)
}
