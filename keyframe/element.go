// Package keyframe implements the in-memory frame model of spec §3.4/
// §3.5/§4.F: element wrappers linked into a doubly-linked render order,
// attachment/detachment with symmetric bookkeeping, properties
// accumulation along that order, and the ray-casting closure flood fill
// relies on.
//
// Grounded on the teacher's ordered, cached scene-entry bookkeeping
// (gogpu-gg/scene/cache.go, scene/layer.go), generalized from a
// container/list-backed cache to the explicit order_before/order_after
// id-linked protocol spec §3.4 specifies (elements must be addressable by
// vector.ElementID from storage, which container/list's opaque *Element
// handles cannot be).
package keyframe

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// ElementWrapper is every element stored in a frame, per spec §3.4.
type ElementWrapper struct {
	Element vector.Element

	StartTime time.Duration

	// Attachments are the ids of elements whose properties/transforms
	// apply to this element; AttachedTo is the reverse edge set.
	Attachments []vector.ElementID
	AttachedTo  []vector.ElementID

	Unattached bool
	Parent     *vector.ElementID

	OrderBefore *vector.ElementID
	OrderAfter  *vector.ElementID
}

func (w *ElementWrapper) id() vector.ElementID { return w.Element.ID() }
