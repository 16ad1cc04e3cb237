package keyframe

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// Core holds one layer's one keyframe: the element map, the head/tail of
// its render-order linked list, and the keyframe's time interval, per
// spec §3.5.
type Core struct {
	LayerID uint64
	Start   time.Duration
	End     time.Duration

	elements       map[vector.ElementID]*ElementWrapper
	initialElement *vector.ElementID
	lastElement    *vector.ElementID

	invalidated bool
}

// New creates an empty keyframe core spanning [start, end) on the given
// layer.
func New(layerID uint64, start, end time.Duration) *Core {
	return &Core{
		LayerID: layerID,
		Start:   start,
		End:     end,
		elements: make(map[vector.ElementID]*ElementWrapper),
	}
}

// Elements returns the wrapper for id, or nil if it is not in this
// keyframe.
func (c *Core) Elements(id vector.ElementID) *ElementWrapper { return c.elements[id] }

// InitialElement returns the head of the render order, if any.
func (c *Core) InitialElement() (vector.ElementID, bool) {
	if c.initialElement == nil {
		return vector.ElementID{}, false
	}
	return *c.initialElement, true
}

// Invalidated reports whether this core's cached renderings must be
// recomputed before use.
func (c *Core) Invalidated() bool { return c.invalidated }

// Invalidate marks this core's caches stale.
func (c *Core) Invalidate() { c.invalidated = true }

// RenderOrder walks the render order from initial_element to the tail via
// order_before, returning wrappers in render order.
func (c *Core) RenderOrder() []*ElementWrapper {
	var order []*ElementWrapper
	if c.initialElement == nil {
		return order
	}
	cur := *c.initialElement
	seen := make(map[vector.ElementID]bool)
	for {
		w, ok := c.elements[cur]
		if !ok || seen[cur] {
			break
		}
		seen[cur] = true
		order = append(order, w)
		if w.OrderBefore == nil {
			break
		}
		cur = *w.OrderBefore
	}
	return order
}

// AddElementToEnd implements spec §4.F's add_element_to_end(id, wrapper)
// protocol: link wrapper onto the tail of the render order and return the
// storage writes needed to persist the change.
func (c *Core) AddElementToEnd(id vector.ElementID, wrapper *ElementWrapper) []storage.Command {
	var cmds []storage.Command

	if c.lastElement != nil {
		tailID := *c.lastElement
		tail := c.elements[tailID]

		wrapper.OrderBefore = nil
		after := tailID
		wrapper.OrderAfter = &after
		tail.OrderBefore = &id

		cmds = append(cmds, writeElementCommand(tailID, tail))
	} else {
		initial := id
		c.initialElement = &initial
	}

	last := id
	c.lastElement = &last
	c.elements[id] = wrapper

	cmds = append(cmds, writeElementCommand(id, wrapper))
	return cmds
}

// UnlinkElement implements spec §4.F's unlink_element(id) protocol:
// remove id from the render order and the element map, clearing every
// symmetric attachment edge, and return the storage writes needed.
func (c *Core) UnlinkElement(id vector.ElementID) []storage.Command {
	w, ok := c.elements[id]
	if !ok {
		return nil
	}

	var cmds []storage.Command

	prev := w.OrderAfter // the element that points to id via its OrderBefore
	next := w.OrderBefore

	if c.initialElement != nil && *c.initialElement == id {
		c.initialElement = next
	}
	if c.lastElement != nil && *c.lastElement == id {
		c.lastElement = prev
	}

	if prev != nil {
		if prevWrapper, ok := c.elements[*prev]; ok {
			prevWrapper.OrderBefore = next
			cmds = append(cmds, writeElementCommand(*prev, prevWrapper))
		}
	}
	if next != nil {
		if nextWrapper, ok := c.elements[*next]; ok {
			nextWrapper.OrderAfter = prev
			cmds = append(cmds, writeElementCommand(*next, nextWrapper))
		}
	}

	for _, attached := range w.Attachments {
		c.detachSymmetric(attached, id)
	}
	for _, attacher := range w.AttachedTo {
		c.detachSymmetric(id, attacher)
	}

	delete(c.elements, id)
	cmds = append(cmds, storage.Command{Kind: storage.DeleteElement, ElementID: id.Value()})
	return cmds
}

// OrderAfter relinks id to sit between before and after, updating the
// links of id, of its old neighbours and of before and after, and
// returning a write for each wrapper it changed — spec §4.F's
// order_after(id, before, after).
func (c *Core) OrderAfter(id, before, after vector.ElementID) []storage.Command {
	w, ok := c.elements[id]
	if !ok {
		return nil
	}

	// Detach id from its current position first.
	oldPrev, oldNext := w.OrderAfter, w.OrderBefore
	c.unlinkFromOrderOnly(id)

	var cmds []storage.Command
	for _, n := range []*vector.ElementID{oldPrev, oldNext} {
		if n != nil && *n != before && *n != after {
			if nw, ok := c.elements[*n]; ok {
				cmds = append(cmds, writeElementCommand(*n, nw))
			}
		}
	}

	w.OrderAfter = ptrOf(after)
	w.OrderBefore = ptrOf(before)

	if afterW, ok := c.elements[after]; ok {
		afterW.OrderBefore = ptrOf(id)
		cmds = append(cmds, writeElementCommand(after, afterW))
	} else {
		c.initialElement = ptrOf(id)
	}
	if beforeW, ok := c.elements[before]; ok {
		beforeW.OrderAfter = ptrOf(id)
		cmds = append(cmds, writeElementCommand(before, beforeW))
	} else {
		c.lastElement = ptrOf(id)
	}

	cmds = append(cmds, writeElementCommand(id, w))
	return cmds
}

// unlinkFromOrderOnly removes id from the linked list without touching
// the element map or attachments, used by OrderAfter to reposition it.
func (c *Core) unlinkFromOrderOnly(id vector.ElementID) {
	w, ok := c.elements[id]
	if !ok {
		return
	}
	prev, next := w.OrderAfter, w.OrderBefore

	if c.initialElement != nil && *c.initialElement == id {
		c.initialElement = next
	}
	if c.lastElement != nil && *c.lastElement == id {
		c.lastElement = prev
	}
	if prev != nil {
		if prevWrapper, ok := c.elements[*prev]; ok {
			prevWrapper.OrderBefore = next
		}
	}
	if next != nil {
		if nextWrapper, ok := c.elements[*next]; ok {
			nextWrapper.OrderAfter = prev
		}
	}
}

// Attach records a symmetric attachment edge between target and
// attachment, per spec §3.4's invariant `a ∈ b.attachments ⇔ b ∈
// a.attached_to`.
func (c *Core) Attach(target, attachment vector.ElementID) []storage.Command {
	t, ok := c.elements[target]
	if !ok {
		return nil
	}
	a, ok := c.elements[attachment]
	if !ok {
		return nil
	}
	t.Attachments = appendIfMissing(t.Attachments, attachment)
	a.AttachedTo = appendIfMissing(a.AttachedTo, target)
	return []storage.Command{writeElementCommand(target, t), writeElementCommand(attachment, a)}
}

// Detach removes a symmetric attachment edge.
func (c *Core) Detach(target, attachment vector.ElementID) []storage.Command {
	c.detachSymmetric(target, attachment)
	var cmds []storage.Command
	if t, ok := c.elements[target]; ok {
		cmds = []storage.Command{writeElementCommand(target, t)}
	}
	if a, ok := c.elements[attachment]; ok {
		cmds = append(cmds, writeElementCommand(attachment, a))
	}
	return cmds
}

func (c *Core) detachSymmetric(target, attachment vector.ElementID) {
	if t, ok := c.elements[target]; ok {
		t.Attachments = removeID(t.Attachments, attachment)
	}
	if a, ok := c.elements[attachment]; ok {
		a.AttachedTo = removeID(a.AttachedTo, target)
	}
}

// writeElementCommand returns the WriteElement shape this wrapper needs
// persisted; Payload is left blank here and filled in by the caller (the
// animation package's edit pipeline, via internal/wire) once the wrapper
// is serialized, since Core only owns order/attachment bookkeeping.
func writeElementCommand(id vector.ElementID, w *ElementWrapper) storage.Command {
	return storage.Command{Kind: storage.WriteElement, ElementID: id.Value()}
}

func ptrOf(id vector.ElementID) *vector.ElementID { return &id }

func appendIfMissing(ids []vector.ElementID, id vector.ElementID) []vector.ElementID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []vector.ElementID, id vector.ElementID) []vector.ElementID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
