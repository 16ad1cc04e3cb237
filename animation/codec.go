package animation

import (
	"fmt"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/internal/wire"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/region"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// elementTag identifies which vector.Element variant a wire payload
// encodes; this is the piece keyframe.Core's writeElementCommand
// deliberately leaves to the animation package (see that function's doc
// comment).
type elementTag int

const (
	tagBrushDefinition elementTag = iota
	tagBrushProperties
	tagBrushStroke
	tagPath
	tagShape
	tagGroup
	tagTransformed
	tagTransformation
	tagAnimationRegion
	tagMotion
	tagError
)

// fillElementPayloads re-derives the serialized payload for every
// WriteElement command keyframe.Core returned, by looking up the live
// wrapper and encoding it with EncodeWrapper. keyframe.Core only tracks
// order/attachment bookkeeping; it has no reason to import internal/wire.
func fillElementPayloads(core *keyframe.Core, cmds []storage.Command) []storage.Command {
	out := make([]storage.Command, len(cmds))
	for i, cmd := range cmds {
		if cmd.Kind == storage.WriteElement {
			if w := core.Elements(vector.Assigned(cmd.ElementID)); w != nil {
				cmd.Payload = EncodeWrapper(w)
			}
		}
		out[i] = cmd
	}
	return out
}

// EncodeWrapper serializes an element wrapper (order links, attachments,
// and the element itself) into the compact text wire format of spec §6.2.
func EncodeWrapper(w *keyframe.ElementWrapper) string {
	wr := wire.NewWriter()
	wr.Version(1)
	wr.Int(int64(w.StartTime))

	wr.Uint(uint64(len(w.Attachments)))
	for _, id := range w.Attachments {
		wr.Uint(id.Value())
	}
	wr.Uint(uint64(len(w.AttachedTo)))
	for _, id := range w.AttachedTo {
		wr.Uint(id.Value())
	}
	wr.Bool(w.Unattached)
	wr.Optional(w.Parent != nil, func() { wr.Uint(w.Parent.Value()) })
	wr.Optional(w.OrderBefore != nil, func() { wr.Uint(w.OrderBefore.Value()) })
	wr.Optional(w.OrderAfter != nil, func() { wr.Uint(w.OrderAfter.Value()) })

	encodeElement(wr, w.Element)
	return wr.String()
}

// decodeWrapper parses the output of EncodeWrapper.
func decodeWrapper(r *wire.Reader) (vector.Element, *keyframe.ElementWrapper, error) {
	if _, err := r.Version(1); err != nil {
		return nil, nil, err
	}
	startNS, err := r.Int()
	if err != nil {
		return nil, nil, err
	}

	w := &keyframe.ElementWrapper{StartTime: time.Duration(startNS)}

	nAttach, err := r.Uint()
	if err != nil {
		return nil, nil, err
	}
	for i := uint64(0); i < nAttach; i++ {
		v, err := r.Uint()
		if err != nil {
			return nil, nil, err
		}
		w.Attachments = append(w.Attachments, vector.Assigned(v))
	}

	nAttachedTo, err := r.Uint()
	if err != nil {
		return nil, nil, err
	}
	for i := uint64(0); i < nAttachedTo; i++ {
		v, err := r.Uint()
		if err != nil {
			return nil, nil, err
		}
		w.AttachedTo = append(w.AttachedTo, vector.Assigned(v))
	}

	if w.Unattached, err = r.Bool(); err != nil {
		return nil, nil, err
	}
	if _, err = r.Optional(func() error {
		v, err := r.Uint()
		if err != nil {
			return err
		}
		id := vector.Assigned(v)
		w.Parent = &id
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if _, err = r.Optional(func() error {
		v, err := r.Uint()
		if err != nil {
			return err
		}
		id := vector.Assigned(v)
		w.OrderBefore = &id
		return nil
	}); err != nil {
		return nil, nil, err
	}
	if _, err = r.Optional(func() error {
		v, err := r.Uint()
		if err != nil {
			return err
		}
		id := vector.Assigned(v)
		w.OrderAfter = &id
		return nil
	}); err != nil {
		return nil, nil, err
	}

	el, err := decodeElement(r)
	if err != nil {
		return nil, nil, err
	}
	w.Element = el
	return el, w, nil
}

func encodeElement(w *wire.Writer, el vector.Element) {
	switch e := el.(type) {
	case *vector.BrushDefinitionElement:
		w.Uint(uint64(tagBrushDefinition))
		w.Uint(e.ID().Value())
		w.String(e.Definition.Name)
		w.Float64(e.Definition.Size)
		w.Uint(uint64(e.Style))

	case *vector.BrushPropertiesElement:
		w.Uint(uint64(tagBrushProperties))
		w.Uint(e.ID().Value())
		encodeBrushProperties(w, e.Properties)

	case *vector.BrushElement:
		w.Uint(uint64(tagBrushStroke))
		w.Uint(e.ID().Value())
		w.Uint(uint64(len(e.Points)))
		for _, p := range e.Points {
			w.Float64(p.Position.X)
			w.Float64(p.Position.Y)
			w.Float64(p.Pressure)
		}

	case *vector.PathElement:
		w.Uint(uint64(tagPath))
		w.Uint(e.ID().Value())
		encodePath(w, e.PathData)

	case *vector.ShapeElement:
		w.Uint(uint64(tagShape))
		w.Uint(e.ID().Value())
		w.Uint(uint64(e.Kind))
		w.Float64(e.X)
		w.Float64(e.Y)
		w.Float64(e.Width)
		w.Float64(e.Height)
		w.Float64(e.CenterX)
		w.Float64(e.CenterY)
		w.Float64(e.Radius)
		w.Uint(uint64(len(e.Vertices)))
		for _, v := range e.Vertices {
			w.Float64(v.X)
			w.Float64(v.Y)
		}

	case *vector.GroupElement:
		w.Uint(uint64(tagGroup))
		w.Uint(e.ID().Value())
		w.Uint(uint64(e.Type))
		w.Optional(e.HintPath != nil, func() { encodePath(w, e.HintPath) })
		w.Uint(uint64(len(e.Children)))
		for _, child := range e.Children {
			encodeElement(w, child)
		}

	case *vector.TransformedElement:
		w.Uint(uint64(tagTransformed))
		w.Uint(e.ID().Value())
		encodeMatrices(w, e.Transformations)
		encodeElement(w, e.Source)

	case *vector.TransformationElement:
		w.Uint(uint64(tagTransformation))
		w.Uint(e.ID().Value())
		w.Uint(e.Target.Value())
		encodeMatrices(w, e.Transformations)

	case *vector.AnimationRegionElement:
		w.Uint(uint64(tagAnimationRegion))
		w.Uint(e.ID().Value())
		encodePath(w, e.Description.Outline)
		w.Uint(uint64(len(e.Description.Content.Paths)))
		for _, ap := range e.Description.Content.Paths {
			w.Int(int64(ap.AppearanceTime))
			encodePath(w, ap.Path)
			w.Uint(uint64(ap.Attribute.Kind))
			w.Float64(ap.Attribute.Width)
			encodeColorFields(w, ap.Attribute.Color)
			w.Uint(uint64(ap.Attribute.Join))
			w.Uint(uint64(ap.Attribute.Cap))
			w.Uint(uint64(ap.Attribute.Winding))
			w.String(ap.Attribute.TextureName)
			w.Uint(ap.Attribute.GradientID)
		}

	case *vector.MotionElement:
		w.Uint(uint64(tagMotion))
		w.Uint(e.ID().Value())
		w.String(string(e.RawData))

	case *vector.ErrorElement:
		w.Uint(uint64(tagError))
		w.Uint(e.ID().Value())

	default:
		w.Uint(uint64(tagError))
		w.Uint(0)
	}
}

func decodeElement(r *wire.Reader) (vector.Element, error) {
	tagVal, err := r.Uint()
	if err != nil {
		return nil, err
	}
	id, err := r.Uint()
	if err != nil {
		return nil, err
	}

	switch elementTag(tagVal) {
	case tagBrushDefinition:
		name, err := r.String()
		if err != nil {
			return nil, err
		}
		size, err := r.Float64()
		if err != nil {
			return nil, err
		}
		style, err := r.Uint()
		if err != nil {
			return nil, err
		}
		return vector.NewBrushDefinitionElement(vector.Assigned(id), vector.Brush{Name: name, Size: size}, vector.BrushDrawingStyle(style)), nil

	case tagBrushProperties:
		props, err := decodeBrushProperties(r)
		if err != nil {
			return nil, err
		}
		return vector.NewBrushPropertiesElement(vector.Assigned(id), props), nil

	case tagBrushStroke:
		n, err := r.Uint()
		if err != nil {
			return nil, err
		}
		points := make([]vector.InkPoint, n)
		for i := range points {
			x, err := r.Float64()
			if err != nil {
				return nil, err
			}
			y, err := r.Float64()
			if err != nil {
				return nil, err
			}
			pressure, err := r.Float64()
			if err != nil {
				return nil, err
			}
			points[i] = vector.InkPoint{Position: geo.Pt(x, y), Pressure: pressure}
		}
		return vector.NewBrushElement(vector.Assigned(id), points), nil

	case tagPath:
		p, err := decodePath(r)
		if err != nil {
			return nil, err
		}
		return vector.NewPathElement(vector.Assigned(id), p), nil

	case tagShape:
		kind, err := r.Uint()
		if err != nil {
			return nil, err
		}
		fields := make([]float64, 7)
		for i := range fields {
			if fields[i], err = r.Float64(); err != nil {
				return nil, err
			}
		}
		n, err := r.Uint()
		if err != nil {
			return nil, err
		}
		vertices := make([]geo.Point, n)
		for i := range vertices {
			x, err := r.Float64()
			if err != nil {
				return nil, err
			}
			y, err := r.Float64()
			if err != nil {
				return nil, err
			}
			vertices[i] = geo.Pt(x, y)
		}
		shape := &vector.ShapeElement{
			Kind: vector.ShapeKind(kind),
			X: fields[0], Y: fields[1], Width: fields[2], Height: fields[3],
			CenterX: fields[4], CenterY: fields[5], Radius: fields[6],
			Vertices: vertices,
		}
		shape.SetID(vector.Assigned(id))
		return shape, nil

	case tagGroup:
		kind, err := r.Uint()
		if err != nil {
			return nil, err
		}
		var hint *geo.Path
		if _, err := r.Optional(func() error {
			p, err := decodePath(r)
			if err != nil {
				return err
			}
			hint = p
			return nil
		}); err != nil {
			return nil, err
		}
		n, err := r.Uint()
		if err != nil {
			return nil, err
		}
		children := make([]vector.Element, n)
		for i := range children {
			children[i], err = decodeElement(r)
			if err != nil {
				return nil, err
			}
		}
		group := vector.NewGroupElement(vector.Assigned(id), vector.GroupType(kind), children)
		group.HintPath = hint
		return group, nil

	case tagTransformed:
		matrices, err := decodeMatrices(r)
		if err != nil {
			return nil, err
		}
		source, err := decodeElement(r)
		if err != nil {
			return nil, err
		}
		return vector.NewTransformedElement(vector.Assigned(id), source, matrices), nil

	case tagTransformation:
		target, err := r.Uint()
		if err != nil {
			return nil, err
		}
		matrices, err := decodeMatrices(r)
		if err != nil {
			return nil, err
		}
		return vector.NewTransformationElement(vector.Assigned(id), vector.Assigned(target), matrices), nil

	case tagAnimationRegion:
		outline, err := decodePath(r)
		if err != nil {
			return nil, err
		}
		n, err := r.Uint()
		if err != nil {
			return nil, err
		}
		var paths []region.AnimationPath
		for i := uint64(0); i < n; i++ {
			appearance, err := r.Int()
			if err != nil {
				return nil, err
			}
			p, err := decodePath(r)
			if err != nil {
				return nil, err
			}
			kind, err := r.Uint()
			if err != nil {
				return nil, err
			}
			width, err := r.Float64()
			if err != nil {
				return nil, err
			}
			color, err := decodeColorFields(r)
			if err != nil {
				return nil, err
			}
			join, err := r.Uint()
			if err != nil {
				return nil, err
			}
			cap, err := r.Uint()
			if err != nil {
				return nil, err
			}
			winding, err := r.Uint()
			if err != nil {
				return nil, err
			}
			texture, err := r.String()
			if err != nil {
				return nil, err
			}
			gradient, err := r.Uint()
			if err != nil {
				return nil, err
			}
			paths = append(paths, region.AnimationPath{
				AppearanceTime: time.Duration(appearance),
				Path:           p,
				Attribute: region.PathAttribute{
					Kind: region.AttributeKind(kind), Width: width, Color: color,
					Join: canvas.LineJoinStyle(join), Cap: canvas.LineCapStyle(cap), Winding: canvas.WindingRuleStyle(winding),
					TextureName: texture, GradientID: gradient,
				},
			})
		}
		desc := region.NewDescription(outline, region.Content{Paths: paths})
		return vector.NewAnimationRegionElement(vector.Assigned(id), desc), nil

	case tagMotion:
		raw, err := r.String()
		if err != nil {
			return nil, err
		}
		return vector.NewMotionElement(vector.Assigned(id), []byte(raw)), nil

	case tagError:
		return vector.TheErrorElement, nil

	default:
		return nil, fmt.Errorf("animation: unknown element tag %d", tagVal)
	}
}

func encodeBrushProperties(w *wire.Writer, p vector.BrushProperties) {
	encodeColorFields(w, p.Color)
	w.Float64(p.Opacity)
	w.Uint(uint64(p.Style))
}

func decodeBrushProperties(r *wire.Reader) (vector.BrushProperties, error) {
	color, err := decodeColorFields(r)
	if err != nil {
		return vector.BrushProperties{}, err
	}
	opacity, err := r.Float64()
	if err != nil {
		return vector.BrushProperties{}, err
	}
	style, err := r.Uint()
	if err != nil {
		return vector.BrushProperties{}, err
	}
	return vector.BrushProperties{Color: color, Opacity: opacity, Style: vector.BrushDrawingStyle(style)}, nil
}

func encodePath(w *wire.Writer, p *geo.Path) {
	w.Float64(p.Start.X)
	w.Float64(p.Start.Y)
	w.Uint(uint64(len(p.Segments)))
	for _, s := range p.Segments {
		w.Float64(s.CP1.X)
		w.Float64(s.CP1.Y)
		w.Float64(s.CP2.X)
		w.Float64(s.CP2.Y)
		w.Float64(s.End.X)
		w.Float64(s.End.Y)
	}
}

func decodePath(r *wire.Reader) (*geo.Path, error) {
	sx, err := r.Float64()
	if err != nil {
		return nil, err
	}
	sy, err := r.Float64()
	if err != nil {
		return nil, err
	}
	n, err := r.Uint()
	if err != nil {
		return nil, err
	}
	p := geo.NewPath(geo.Pt(sx, sy))
	for i := uint64(0); i < n; i++ {
		vals := make([]float64, 6)
		for j := range vals {
			if vals[j], err = r.Float64(); err != nil {
				return nil, err
			}
		}
		p.Segments = append(p.Segments, geo.Segment{
			CP1: geo.Pt(vals[0], vals[1]),
			CP2: geo.Pt(vals[2], vals[3]),
			End: geo.Pt(vals[4], vals[5]),
		})
	}
	return p, nil
}

func encodeMatrices(w *wire.Writer, ms []geo.Matrix) {
	w.Uint(uint64(len(ms)))
	for _, m := range ms {
		w.Float64(m.A)
		w.Float64(m.B)
		w.Float64(m.C)
		w.Float64(m.D)
		w.Float64(m.E)
		w.Float64(m.F)
	}
}

func decodeMatrices(r *wire.Reader) ([]geo.Matrix, error) {
	n, err := r.Uint()
	if err != nil {
		return nil, err
	}
	out := make([]geo.Matrix, n)
	for i := range out {
		vals := make([]float64, 6)
		for j := range vals {
			if vals[j], err = r.Float64(); err != nil {
				return nil, err
			}
		}
		out[i] = geo.Matrix{A: vals[0], B: vals[1], C: vals[2], D: vals[3], E: vals[4], F: vals[5]}
	}
	return out, nil
}

func encodeColorFields(w *wire.Writer, c canvas.Color) {
	w.Float64(c.R)
	w.Float64(c.G)
	w.Float64(c.B)
	w.Float64(c.A)
}

func decodeColorFields(r *wire.Reader) (canvas.Color, error) {
	vals := make([]float64, 4)
	for i := range vals {
		v, err := r.Float64()
		if err != nil {
			return canvas.Color{}, err
		}
		vals[i] = v
	}
	return canvas.Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}
