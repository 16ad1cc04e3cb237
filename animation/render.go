package animation

import (
	"context"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// RenderLayer returns the canvas.Drawing for layerID at when, per spec
// §4.G's caching layer: a cache hit returns synchronously; a miss walks
// the keyframe's render order, accumulating VectorProperties the way
// spec §3.3 describes, and publishes the result before returning it.
//
// Grounded on vector.VectorProperties's Render/UpdateProperties
// accumulation hooks (which every element already implements) and
// keyframe.Core.RenderOrder (the render walk itself); this ties the two
// together the way original_source's Layer::get_frame_at_time does.
func (c *Core) RenderLayer(ctx context.Context, layerID uint64, when time.Duration) (canvas.Drawing, error) {
	return c.layerCache.RetrieveOrGenerate(ctx, layerID, when, "frame", func() (canvas.Drawing, error) {
		var drawing canvas.Drawing
		err := c.EditKeyframe(ctx, layerID, when, func(kf *keyframe.Core) []storage.Command {
			drawing = renderFrame(kf, when, c.cfg)
			return nil
		})
		return drawing, err
	})
}

// renderFrame walks kf's render order once, threading an accumulating
// VectorProperties through each element's RenderStatic/UpdateProperties
// pair.
func renderFrame(kf *keyframe.Core, when time.Duration, cfg Config) canvas.Drawing {
	rec := canvas.NewRecorder()
	props := vector.DefaultVectorProperties()
	props.CurveFitMaxError = cfg.curveFitMaxError
	props.AttachmentsFor = func(id vector.ElementID) []vector.ElementID {
		w := kf.Elements(id)
		if w == nil {
			return nil
		}
		return w.Attachments
	}
	props.ElementFor = func(id vector.ElementID) vector.Element {
		w := kf.Elements(id)
		if w == nil {
			return nil
		}
		return w.Element
	}

	for _, w := range kf.RenderOrder() {
		if props.Render != nil {
			props.Render(rec, w.Element, props, when)
		} else {
			w.Element.RenderStatic(rec, props, when)
		}
		props = w.Element.UpdateProperties(props, when)
	}
	return rec.Finish()
}
