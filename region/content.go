// Package region implements spec §4.I's animated region model: a region
// is an outline path plus a time-ordered sequence of path/attribute pairs
// describing how its interior is painted as time advances, and supports
// cutting an arbitrary source path against a region's outline.
//
// Grounded on original_source/canvas_animation/src/region/content.rs
// (AnimationRegionContent::to_drawing's attribute-diffing replay) and
// canvas_animation/src/layer/animation_layer.rs (per-region, time-indexed
// drawing accumulation), translated into the canvas command model of
// package canvas and the path arithmetic of package geo instead of the
// original's flo_canvas/flo_curves crates.
package region

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// AttributeKind discriminates the paint operation a path segment in a
// region's content uses, mirroring AnimationPathAttribute.
type AttributeKind int

const (
	AttributeStroke AttributeKind = iota
	AttributeStrokePixels
	AttributeFill
	AttributeFillTexture
	AttributeFillGradient
)

// PathAttribute carries the paint parameters for one AnimationPath entry.
type PathAttribute struct {
	Kind AttributeKind

	Width   float64
	Color   canvas.Color
	Join    canvas.LineJoinStyle
	Cap     canvas.LineCapStyle
	Winding canvas.WindingRuleStyle

	TextureName string
	GradientID  uint64
}

// AnimationPath is one entry in a region's content: a path that becomes
// visible at AppearanceTime and is painted using Attribute.
type AnimationPath struct {
	AppearanceTime time.Duration
	Path           *geo.Path
	Attribute      PathAttribute
}

// Content describes what appears in a region: an ordered list of paths,
// each gated by its own appearance time.
type Content struct {
	Paths []AnimationPath
}

// ToDrawing replays the paths visible at time t into a Drawing, only
// emitting state-changing commands (color, join, cap, winding rule) when
// they actually differ from the previous path's, per the original's
// to_drawing diffing logic.
func (c Content) ToDrawing(t time.Duration) canvas.Drawing {
	rec := canvas.NewRecorder()
	rec.PushState()

	var (
		haveStrokeColor, haveJoin, haveCap, haveWinding, haveFillStyle bool
		strokeColor                                                   canvas.Color
		join                                                          canvas.LineJoinStyle
		cap                                                           canvas.LineCapStyle
		winding                                                       canvas.WindingRuleStyle
		fillStyle                                                     fillStyleKey
	)

	for _, p := range c.Paths {
		if p.AppearanceTime > t {
			continue
		}

		rec.NewPath()
		recordPathInto(rec, p.Path)

		switch p.Attribute.Kind {
		case AttributeStroke, AttributeStrokePixels:
			a := p.Attribute
			if !haveStrokeColor || strokeColor != a.Color {
				strokeColor, haveStrokeColor = a.Color, true
				rec.StrokeColor(a.Color)
			}
			if !haveJoin || join != a.Join {
				join, haveJoin = a.Join, true
				rec.LineJoin(a.Join)
			}
			if !haveCap || cap != a.Cap {
				cap, haveCap = a.Cap, true
				rec.LineCap(a.Cap)
			}
			if p.Attribute.Kind == AttributeStroke {
				rec.LineWidth(a.Width)
			} else {
				rec.LineWidthPixels(a.Width)
			}
			rec.Stroke()

		case AttributeFill:
			a := p.Attribute
			if !haveWinding || winding != a.Winding {
				winding, haveWinding = a.Winding, true
				rec.WindingRule(a.Winding)
			}
			key := fillStyleKey{kind: AttributeFill, color: a.Color}
			if !haveFillStyle || fillStyle != key {
				fillStyle, haveFillStyle = key, true
				rec.FillColor(a.Color)
			}
			rec.Fill()

		case AttributeFillTexture:
			a := p.Attribute
			if !haveWinding || winding != a.Winding {
				winding, haveWinding = a.Winding, true
				rec.WindingRule(a.Winding)
			}
			key := fillStyleKey{kind: AttributeFillTexture, texture: a.TextureName}
			if !haveFillStyle || fillStyle != key {
				fillStyle, haveFillStyle = key, true
				rec.FillTexture(a.TextureName)
			}
			rec.Fill()

		case AttributeFillGradient:
			a := p.Attribute
			if !haveWinding || winding != a.Winding {
				winding, haveWinding = a.Winding, true
				rec.WindingRule(a.Winding)
			}
			key := fillStyleKey{kind: AttributeFillGradient, gradient: a.GradientID}
			if !haveFillStyle || fillStyle != key {
				fillStyle, haveFillStyle = key, true
				rec.FillGradient(a.GradientID)
			}
			rec.Fill()
		}
	}

	rec.PopState()
	return rec.Finish()
}

// fillStyleKey lets ToDrawing compare "is this the same fill style as
// last time" across the three fill variants without reflect.DeepEqual.
type fillStyleKey struct {
	kind     AttributeKind
	color    canvas.Color
	texture  string
	gradient uint64
}

func recordPathInto(rec *canvas.Recorder, p *geo.Path) {
	rec.MoveTo(p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		rec.BezierCurveTo(seg.CP1.X, seg.CP1.Y, seg.CP2.X, seg.CP2.Y, seg.End.X, seg.End.Y)
	}
	if p.IsClosed() {
		rec.ClosePath()
	}
}
