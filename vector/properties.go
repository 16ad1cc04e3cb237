package vector

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// BrushDrawingStyle distinguishes drawing with a solid ink brush from
// erasing, per the original brush_properties_element.rs's draw-mode flag.
type BrushDrawingStyle int

const (
	DrawingStyleDraw BrushDrawingStyle = iota
	DrawingStyleErase
)

// Brush is the minimal brush definition spec §3.3's BrushDefinition
// element carries: enough to derive stroke outlines without depending on
// any concrete ink-simulation engine (out of scope per spec §1).
type Brush struct {
	Name string
	Size float64
}

// BrushProperties is the current paint state a BrushProperties element
// installs: color, opacity and drawing style for subsequent strokes.
type BrushProperties struct {
	Color   canvas.Color
	Opacity float64
	Style   BrushDrawingStyle
}

// DefaultBrushProperties mirrors the original's BrushPropertiesElement
// default (opaque black ink, draw mode).
func DefaultBrushProperties() BrushProperties {
	return BrushProperties{Color: canvas.Color{A: 1}, Opacity: 1, Style: DrawingStyleDraw}
}

// VectorProperties is accumulated along a keyframe's render order per
// spec §3.3: the current brush, brush properties, an ordered list of
// transformations, a render callback, and an attachment lookup.
type VectorProperties struct {
	Brush           Brush
	BrushProperties BrushProperties
	Transformations []geo.Matrix

	// Render overrides how subsequent static elements are emitted; nil
	// means "use the element's own RenderStatic".
	Render func(rec *canvas.Recorder, el Element, props *VectorProperties, t Time)

	// AttachmentsFor returns the ids attached to the given element,
	// threaded through from the owning keyframe so property accumulation
	// can react to attachment changes between consecutive children
	// (spec §4.D group rendering rule).
	AttachmentsFor func(id ElementID) []ElementID

	// ElementFor resolves an attachment id to the element it names, so an
	// attached BrushDefinition/BrushProperties/Transformation can actually
	// be folded into the properties of the element it's attached to,
	// rather than just recorded as a bookkeeping edge.
	ElementFor func(id ElementID) Element

	// CurveFitMaxError bounds geo.FitCurve's tolerance when a BrushElement
	// derives its stroke outline from a raw centerline; threaded down from
	// the owning animation.Core's Config rather than hardcoded.
	CurveFitMaxError float64
}

// defaultCurveFitMaxError is BrushElement.ToPath's fit tolerance when no
// owning Core has overridden it (e.g. a bare VectorProperties in tests).
const defaultCurveFitMaxError = 2.0

// DefaultVectorProperties is the identity property set a frame starts
// rendering with.
func DefaultVectorProperties() *VectorProperties {
	return &VectorProperties{
		Brush:            Brush{Name: "ink", Size: 1},
		BrushProperties:  DefaultBrushProperties(),
		CurveFitMaxError: defaultCurveFitMaxError,
	}
}

// Clone returns a shallow copy suitable for independent mutation (e.g. a
// group resetting to inherited properties between attachment changes).
func (p *VectorProperties) Clone() *VectorProperties {
	cp := *p
	cp.Transformations = append([]geo.Matrix(nil), p.Transformations...)
	return &cp
}

// WithTransformation returns a copy of p with m appended to its
// transformation chain.
func (p *VectorProperties) WithTransformation(m geo.Matrix) *VectorProperties {
	cp := p.Clone()
	cp.Transformations = append(cp.Transformations, m)
	return cp
}

// combinedTransform folds p's transformation chain into a single matrix,
// applied in order (first transformation applied first).
func (p *VectorProperties) combinedTransform() geo.Matrix {
	m := geo.Identity()
	for _, t := range p.Transformations {
		m = m.Compose(t)
	}
	return m
}

// render dispatches to props.Render if set, otherwise to el's own
// RenderStatic — the hook groups use to intercept a child's rendering
// without every element needing to know about overrides.
func (p *VectorProperties) render(rec *canvas.Recorder, el Element, t Time) {
	if p.Render != nil {
		p.Render(rec, el, p, t)
		return
	}
	el.RenderStatic(rec, p, t)
}
