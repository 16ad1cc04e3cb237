package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// GroupType distinguishes the two group rendering modes spec §4.D names.
type GroupType int

const (
	// GroupNormal renders children in stored order, resetting properties
	// to the group's inherited set whenever the active attachment chain
	// changes between consecutive children.
	GroupNormal GroupType = iota

	// GroupAdded renders the union of its children's paths as one filled
	// path, short-circuiting to HintPath when present.
	GroupAdded
)

// GroupElement is a composite element holding an ordered list of children,
// per spec §3.3/§4.D.
type GroupElement struct {
	withID
	Type     GroupType
	Children []Element

	// HintPath short-circuits union recomputation for GroupAdded groups;
	// stored in the group's local space and transformed by props at
	// render/ToPath time, per the Open Question (c) decision recorded in
	// DESIGN.md.
	HintPath *geo.Path
}

func NewGroupElement(id ElementID, kind GroupType, children []Element) *GroupElement {
	return &GroupElement{withID: withID{id: id}, Type: kind, Children: children}
}

// Elements returns the group's children in render order, mirroring the
// original's `elements()` iterator.
func (e *GroupElement) Elements() []Element { return e.Children }

func (e *GroupElement) ToPath(props *VectorProperties) []*geo.Path {
	if e.Type != GroupAdded {
		return nil
	}
	if e.HintPath != nil {
		return []*geo.Path{transformPath(e.HintPath, props)}
	}

	var union *geo.Path
	for _, child := range e.Children {
		for _, p := range child.ToPath(props) {
			if union == nil {
				union = p
				continue
			}
			merged := geo.PathAdd(union, p)
			if len(merged) > 0 {
				union = merged[0]
			}
		}
	}
	if union == nil {
		return nil
	}
	return []*geo.Path{transformPath(union, props)}
}

func transformPath(p *geo.Path, props *VectorProperties) *geo.Path {
	if props == nil || len(props.Transformations) == 0 {
		return p
	}
	return p.Transform(props.combinedTransform())
}

func (e *GroupElement) RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time) {
	switch e.Type {
	case GroupAdded:
		for _, p := range e.ToPath(props) {
			recordPath(rec, p)
		}
		rec.FillColor(props.BrushProperties.Color)
		rec.Fill()

	case GroupNormal:
		e.renderNormal(rec, props, t)
	}
}

func (e *GroupElement) renderNormal(rec *canvas.Recorder, props *VectorProperties, t Time) {
	current := props
	var lastAttachments []ElementID

	for _, child := range e.Children {
		var attachments []ElementID
		if props.AttachmentsFor != nil {
			attachments = props.AttachmentsFor(child.ID())
		}
		if !sameAttachments(attachments, lastAttachments) {
			current = props.Clone()
			for _, attachID := range attachments {
				current = applyAttachment(current, attachID, t)
			}
			lastAttachments = attachments
		}

		current = child.UpdateProperties(current, t)
		current.render(rec, child, t)
	}
}

// applyAttachment folds the element named by attachID into props, per spec
// §4.D: a BrushDefinition/BrushProperties attachment changes the brush
// state subsequent siblings paint with, and a Transformation attachment
// extends the transform chain, exactly as if that element had appeared
// inline in the render order. Attachments that resolve to something else
// (or that ElementFor can't resolve) leave props unchanged.
func applyAttachment(props *VectorProperties, attachID ElementID, t Time) *VectorProperties {
	if props.ElementFor == nil {
		return props
	}
	attached := props.ElementFor(attachID)
	if attached == nil {
		return props
	}
	switch attached.(type) {
	case *BrushDefinitionElement, *BrushPropertiesElement, *TransformationElement:
		return attached.UpdateProperties(props, t)
	default:
		return props
	}
}

func sameAttachments(a, b []ElementID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (e *GroupElement) RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time) {
	e.RenderStatic(rec, props, t)
}

func (e *GroupElement) UpdateProperties(props *VectorProperties, _ Time) *VectorProperties {
	return props
}

func (e *GroupElement) ControlPoints(props *VectorProperties) []geo.Point {
	var points []geo.Point
	for _, child := range e.Children {
		points = append(points, child.ControlPoints(props)...)
	}
	return points
}

func (e *GroupElement) WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element {
	children := make([]Element, len(e.Children))
	offset := 0
	for i, child := range e.Children {
		n := len(child.ControlPoints(props))
		if offset+n > len(newPoints) {
			children[i] = child
			continue
		}
		children[i] = child.WithAdjustedControlPoints(newPoints[offset:offset+n], props)
		offset += n
	}
	cp := *e
	cp.Children = children
	return &cp
}
