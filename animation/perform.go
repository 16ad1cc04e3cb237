package animation

import (
	"context"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/internal/coreerr"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// PerformEdits applies a batch of edits per spec §4.G: every Unassigned
// element id in the batch is stamped with a freshly allocated id (in
// input order), the batch is appended to the durable edit log, and each
// edit is then replayed against the in-memory model. A storage failure
// anywhere in the batch taints the core (per point 4: the in-memory model
// and the log may now disagree) and stops the remaining edits in the
// batch from applying.
func (c *Core) PerformEdits(ctx context.Context, edits []Edit) error {
	if tainted, err := c.Tainted(); tainted {
		return coreerr.Wrap(coreerr.Protocol, err, "core is tainted by a prior failed batch")
	}

	stamped := make([]Edit, len(edits))
	for i, e := range edits {
		stamped[i] = c.stampEdit(e)
	}

	logCmds := make([]storage.Command, len(stamped))
	for i, e := range stamped {
		logCmds[i] = storage.Command{Kind: storage.WriteEdit, Index: c.allocateEditIndex(), Payload: EncodeEdit(e)}
	}
	if _, err := c.backend.Execute(ctx, logCmds); err != nil {
		wrapped := coreerr.Wrap(coreerr.Storage, err, "appending %d edits to the log", len(logCmds))
		c.taint(wrapped)
		return wrapped
	}

	for _, e := range stamped {
		if err := c.performEdit(ctx, e); err != nil {
			c.taint(err)
			return err
		}
	}
	return nil
}

// stampEdit replaces every Unassigned element id this edit introduces
// with a freshly allocated one, so downstream storage and replay never
// see a placeholder.
func (c *Core) stampEdit(e Edit) Edit {
	switch e.Kind {
	case Layer:
		switch e.LayerEdit.Kind {
		case Paint:
			if !e.LayerEdit.PaintEdit.ElementID.IsAssigned() {
				e.LayerEdit.PaintEdit.ElementID = c.allocateElementID()
			}
		case Path:
			if !e.LayerEdit.PathEdit.ElementID.IsAssigned() {
				e.LayerEdit.PathEdit.ElementID = c.allocateElementID()
			}
		case Cut:
			if !e.LayerEdit.InsideGroup.IsAssigned() {
				e.LayerEdit.InsideGroup = c.allocateElementID()
			}
			if !e.LayerEdit.OutsideGroup.IsAssigned() {
				e.LayerEdit.OutsideGroup = c.allocateElementID()
			}
		}
	case Motion:
		if !e.MotionID.IsAssigned() {
			e.MotionID = c.allocateElementID()
		}
	}
	return e
}

// performEdit replays one already-logged edit against the in-memory model.
func (c *Core) performEdit(ctx context.Context, e Edit) error {
	switch e.Kind {
	case SetSize:
		c.setSize(e.Width, e.Height)
		_, err := c.backend.Execute(ctx, []storage.Command{{Kind: storage.WriteAnimationProperties, Payload: EncodeEdit(e)}})
		if err != nil {
			return coreerr.Wrap(coreerr.Storage, err, "writing animation properties")
		}
		return nil

	case AddNewLayer:
		c.layerFor(e.LayerID)
		return nil

	case RemoveLayer:
		c.removeLayer(ctx, e.LayerID)
		return nil

	case Layer:
		return c.applyLayerEdit(ctx, e.LayerID, e.LayerEdit)

	case Element:
		return c.applyElementEdit(ctx, e.LayerID, e.ElementIDs, e.ElementEdit)

	case Motion:
		// Legacy motion edits round-trip through the log (Open Question
		// decision (b)) but do not mutate the in-memory model.
		return nil
	}
	return nil
}

func (c *Core) applyLayerEdit(ctx context.Context, layerID uint64, le LayerEdit) error {
	switch le.Kind {
	case AddKeyFrame:
		return c.addKeyFrame(ctx, layerID, le.When)

	case RemoveKeyFrame:
		return c.removeKeyFrame(ctx, layerID, le.When)

	case SetName:
		c.setLayerName(layerID, le.Name)
		return nil

	case SetAlpha:
		c.setLayerAlpha(layerID, le.Alpha)
		return nil

	case Paint:
		err := c.EditKeyframe(ctx, layerID, le.When, func(kf *keyframe.Core) []storage.Command {
			return applyPaintEdit(kf, le.When, le.PaintEdit, c.cfg)
		})
		if err == nil {
			_ = c.layerCache.Invalidate(ctx, layerID)
		}
		return err

	case Path:
		err := c.EditKeyframe(ctx, layerID, le.When, func(kf *keyframe.Core) []storage.Command {
			return applyPathEdit(kf, le.When, le.PathEdit)
		})
		if err == nil {
			_ = c.layerCache.Invalidate(ctx, layerID)
		}
		return err

	case Cut:
		err := c.EditKeyframe(ctx, layerID, le.When, func(kf *keyframe.Core) []storage.Command {
			return cutElements(kf, le.When, le.CutPath, le.InsideGroup, le.OutsideGroup)
		})
		if err == nil {
			_ = c.layerCache.Invalidate(ctx, layerID)
		}
		return err

	case CreateAnimation:
		return c.EditKeyframe(ctx, layerID, le.When, func(kf *keyframe.Core) []storage.Command {
			return createAnimationRegion(kf, le.When, le.RegionID, le.RegionDescription)
		})
	}
	return nil
}

func (c *Core) applyElementEdit(ctx context.Context, layerID uint64, ids []vector.ElementID, ee ElementEdit) error {
	if len(ids) == 0 {
		return nil
	}

	switch ee.Kind {
	case ElementAddAttachment:
		return c.editEachKeyframeFor(ctx, layerID, ids, func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return kf.Attach(id, ee.Attachment)
		})

	case ElementRemoveAttachment:
		return c.editEachKeyframeFor(ctx, layerID, ids, func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return kf.Detach(id, ee.Attachment)
		})

	case ElementOrderAfter:
		return c.editEachKeyframeFor(ctx, layerID, ids, func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return kf.OrderAfter(id, ee.Before, ee.After)
		})

	case ElementDelete:
		err := c.editEachKeyframeFor(ctx, layerID, ids, func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return kf.UnlinkElement(id)
		})
		if err == nil {
			_ = c.layerCache.Invalidate(ctx, layerID)
		}
		return err

	case ElementCollide:
		if len(ids) == 0 {
			return nil
		}
		return c.editEachKeyframeFor(ctx, layerID, ids[:1], func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return collideWithExistingElements(kf, id)
		})

	case ElementSetControlPoints:
		return c.editEachKeyframeFor(ctx, layerID, ids, func(kf *keyframe.Core, id vector.ElementID) []storage.Command {
			return setControlPoints(kf, id, ee.NewPoints)
		})
	}
	return nil
}

// editEachKeyframeFor runs fn for the ids in ids against every keyframe
// start the layer knows of, each through EditKeyframe; within a keyframe,
// fn is called only for the ids that keyframe holds. Element edits carry
// no time of their own, so no single keyframe is picked for them.
func (c *Core) editEachKeyframeFor(ctx context.Context, layerID uint64, ids []vector.ElementID, fn func(*keyframe.Core, vector.ElementID) []storage.Command) error {
	ls := c.layerFor(layerID)

	c.mu.Lock()
	starts := append([]time.Duration(nil), ls.starts...)
	c.mu.Unlock()

	for _, start := range starts {
		err := c.EditKeyframe(ctx, layerID, start, func(kf *keyframe.Core) []storage.Command {
			var cmds []storage.Command
			for _, id := range ids {
				if kf.Elements(id) != nil {
					cmds = append(cmds, fn(kf, id)...)
				}
			}
			return cmds
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func setControlPoints(kf *keyframe.Core, id vector.ElementID, newPoints []geo.Point) []storage.Command {
	w := kf.Elements(id)
	if w == nil {
		return nil
	}
	w.Element = w.Element.WithAdjustedControlPoints(newPoints, vector.DefaultVectorProperties())
	return []storage.Command{{Kind: storage.WriteElement, ElementID: id.Value()}}
}
