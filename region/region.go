package region

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// Description is the effect description an AnimationRegion element
// carries: an outline that bounds the region and the time-indexed content
// painted within it.
type Description struct {
	Outline *geo.Path
	Content Content

	bounds      geo.Rect
	boundsValid bool
}

// NewDescription builds a region description, computing and caching the
// outline's bounding box up front since every downstream bucketing query
// (spec §4.I "cached bounding boxes/per-path bucketing") needs it.
func NewDescription(outline *geo.Path, content Content) *Description {
	d := &Description{Outline: outline, Content: content}
	d.bounds = outline.BoundingBox()
	d.boundsValid = true
	return d
}

// Bounds returns the region's cached bounding box.
func (d *Description) Bounds() geo.Rect {
	if !d.boundsValid {
		d.bounds = d.Outline.BoundingBox()
		d.boundsValid = true
	}
	return d.bounds
}

// Overlaps reports whether a path's bounding box could intersect this
// region, a cheap pre-filter before the exact geo.PathCut arithmetic a
// caller runs next — the bucketing step spec §4.I calls for so cutting a
// layer full of elements against many regions doesn't run full path
// arithmetic on obviously-disjoint pairs.
func (d *Description) Overlaps(p *geo.Path) bool {
	return d.Bounds().Overlaps(p.BoundingBox())
}

// CutResult is the result of cutting a source path against a region's
// outline: the part inside the region and the part outside it.
type CutResult = geo.CutResult

// Cut splits source against this region's outline, returning the inside
// and outside pieces per spec §4.C's cut-join law: rejoining Inside and
// Outside must reproduce source.
func (d *Description) Cut(source *geo.Path) CutResult {
	if !d.Overlaps(source) {
		return CutResult{Outside: []*geo.Path{source}}
	}
	return geo.PathCut(source, d.Outline)
}

// Render replays this region's content at time t.
func (d *Description) Render(t time.Duration) canvas.Drawing {
	return d.Content.ToDrawing(t)
}
