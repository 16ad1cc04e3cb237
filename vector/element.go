// Package vector implements the in-memory vector frame model of spec §3.3/
// §4.D: the Vector element sum type (brush definitions/properties/strokes,
// paths, shapes, groups, transformed elements, animation regions,
// transformations, legacy motions, and the error placeholder), the
// VectorProperties accumulated along a frame's render order, and the
// to_path/render_static/render_animated/update_properties/control_points/
// with_adjusted_control_points contract every variant implements.
//
// Grounded on the teacher's Shape interface (gogpu-gg/scene/shape.go:
// ToPath()/Bounds() single-method-per-concern shapes) and its ordered,
// attachment-aware child rendering (gogpu-gg/scene/layer.go), generalized
// to the full Vector sum type from original_source/animation/src/traits/
// vector/vector.rs, path_element.rs, group_element.rs, animation_element.rs.
package vector

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// Time is a monotonic duration from the animation's origin, microsecond
// precision per spec §3.1; time.Duration already carries finer-grained
// (nanosecond) resolution so every microsecond value round-trips exactly.
type Time = time.Duration

// ElementID is the tagged union of spec §3.1: Unassigned is a placeholder
// valid only on inbound edits, replaced by the core with an Assigned id
// before persistence.
type ElementID struct {
	assigned bool
	value    uint64
}

// Unassigned returns the placeholder id inbound edits may carry.
func Unassigned() ElementID { return ElementID{} }

// Assigned returns a globally-unique, already-allocated element id.
func Assigned(v uint64) ElementID { return ElementID{assigned: true, value: v} }

// IsAssigned reports whether this id has been allocated.
func (id ElementID) IsAssigned() bool { return id.assigned }

// Value returns the allocated numeric id; callers must check IsAssigned
// first, the same way the original panics on an unassigned deref.
func (id ElementID) Value() uint64 { return id.value }

func (id ElementID) String() string {
	if !id.assigned {
		return "Unassigned"
	}
	return "Element(" + uintString(id.value) + ")"
}

func uintString(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Element is the contract every Vector variant implements, per spec §4.D.
type Element interface {
	ID() ElementID
	SetID(id ElementID)

	// ToPath derives the outline path(s) this element paints, or nil if
	// the element is a rendering modifier rather than paintable geometry
	// (animation regions, property setters, transformations).
	ToPath(props *VectorProperties) []*geo.Path

	// RenderStatic emits canvas commands for a non-animated rendering at
	// time t.
	RenderStatic(rec *canvas.Recorder, props *VectorProperties, t Time)

	// RenderAnimated renders this element within an animated frame. No
	// element adds a region descriptor to props; most delegate to
	// RenderStatic.
	RenderAnimated(rec *canvas.Recorder, props *VectorProperties, t Time)

	// UpdateProperties folds this element into props, returning the
	// (possibly unchanged) result. Brush definitions and brush properties
	// replace the brush settings, transformation elements append their
	// transformations, and a TransformedElement defers to its source; every
	// other element returns props unchanged.
	UpdateProperties(props *VectorProperties, t Time) *VectorProperties

	// ControlPoints returns the points a UI may drag: endpoints and
	// bezier control points, with any attached transform applied.
	ControlPoints(props *VectorProperties) []geo.Point

	// WithAdjustedControlPoints returns a copy of this element with its
	// control points replaced by newPoints, which are first un-transformed
	// back into source space if props carries a transformation.
	WithAdjustedControlPoints(newPoints []geo.Point, props *VectorProperties) Element
}

// withID is embedded by every concrete element to provide the common
// ID()/SetID() pair without repeating it per variant.
type withID struct {
	id ElementID
}

func (w *withID) ID() ElementID     { return w.id }
func (w *withID) SetID(id ElementID) { w.id = id }

// applyTransformToPoints inverts props' accumulated transformations out of
// newPoints (for WithAdjustedControlPoints) or applies them (for
// ControlPoints), matching spec §4.D's "inverted by it first so they
// remain in source space" rule.
func applyTransformToPoints(points []geo.Point, props *VectorProperties, invert bool) []geo.Point {
	if props == nil || len(props.Transformations) == 0 {
		return points
	}
	m := props.combinedTransform()
	if invert {
		m = m.Invert()
	}
	out := make([]geo.Point, len(points))
	for i, p := range points {
		out[i] = m.Apply(p)
	}
	return out
}
