package keyframe

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// PropertiesAt accumulates VectorProperties along the render order up to
// and including upTo, per spec §4.F responsibility 4 — used by editors
// that need to know the brush state in effect at a particular element
// without rendering the whole frame.
func (c *Core) PropertiesAt(upTo vector.ElementID, t time.Duration) *vector.VectorProperties {
	props := vector.DefaultVectorProperties()
	props.AttachmentsFor = func(id vector.ElementID) []vector.ElementID {
		if w, ok := c.elements[id]; ok {
			return w.Attachments
		}
		return nil
	}
	props.ElementFor = func(id vector.ElementID) vector.Element {
		if w, ok := c.elements[id]; ok {
			return w.Element
		}
		return nil
	}

	for _, w := range c.RenderOrder() {
		props = w.Element.UpdateProperties(props, t)
		if w.id() == upTo {
			break
		}
	}
	return props
}

// AllProperties accumulates VectorProperties across the entire render
// order, the same walk RenderFrame uses internally.
func (c *Core) AllProperties(t time.Duration) *vector.VectorProperties {
	props := vector.DefaultVectorProperties()
	props.AttachmentsFor = func(id vector.ElementID) []vector.ElementID {
		if w, ok := c.elements[id]; ok {
			return w.Attachments
		}
		return nil
	}
	props.ElementFor = func(id vector.ElementID) vector.Element {
		if w, ok := c.elements[id]; ok {
			return w.Element
		}
		return nil
	}
	for _, w := range c.RenderOrder() {
		props = w.Element.UpdateProperties(props, t)
	}
	return props
}
