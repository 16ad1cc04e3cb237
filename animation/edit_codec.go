package animation

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/internal/wire"
	"github.com/Logicalshift/flowbetween-sub004/region"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// EncodeEdit serializes one Edit for the append-only log, per spec §6.2.
// This is the "serialized_edit" WriteEdit commands carry.
func EncodeEdit(e Edit) string {
	w := wire.NewWriter()
	w.Version(1)
	w.Uint(uint64(e.Kind))

	switch e.Kind {
	case SetSize:
		w.Float64(e.Width)
		w.Float64(e.Height)
	case AddNewLayer, RemoveLayer:
		w.Uint(e.LayerID)
	case Layer:
		w.Uint(e.LayerID)
		encodeLayerEdit(w, e.LayerEdit)
	case Element:
		w.Uint(uint64(len(e.ElementIDs)))
		for _, id := range e.ElementIDs {
			w.Uint(id.Value())
		}
		encodeElementEdit(w, e.ElementEdit)
	case Motion:
		w.Uint(e.MotionID.Value())
		w.Uint(uint64(e.MotionEdit.Kind))
		w.String(string(e.MotionEdit.RawData))
	}
	return w.String()
}

// DecodeEdit parses the output of EncodeEdit.
func DecodeEdit(s string) (Edit, error) {
	r := wire.NewReader(s)
	if _, err := r.Version(1); err != nil {
		return Edit{}, err
	}
	kindVal, err := r.Uint()
	if err != nil {
		return Edit{}, err
	}
	e := Edit{Kind: Kind(kindVal)}

	switch e.Kind {
	case SetSize:
		if e.Width, err = r.Float64(); err != nil {
			return Edit{}, err
		}
		e.Height, err = r.Float64()
	case AddNewLayer, RemoveLayer:
		e.LayerID, err = r.Uint()
	case Layer:
		if e.LayerID, err = r.Uint(); err != nil {
			return Edit{}, err
		}
		e.LayerEdit, err = decodeLayerEdit(r)
	case Element:
		var n uint64
		if n, err = r.Uint(); err != nil {
			return Edit{}, err
		}
		for i := uint64(0); i < n; i++ {
			v, verr := r.Uint()
			if verr != nil {
				return Edit{}, verr
			}
			e.ElementIDs = append(e.ElementIDs, vector.Assigned(v))
		}
		e.ElementEdit, err = decodeElementEdit(r)
	case Motion:
		var id uint64
		if id, err = r.Uint(); err != nil {
			return Edit{}, err
		}
		e.MotionID = vector.Assigned(id)
		var motionKind uint64
		if motionKind, err = r.Uint(); err != nil {
			return Edit{}, err
		}
		var raw string
		raw, err = r.String()
		e.MotionEdit = MotionEdit{Kind: MotionEditKind(motionKind), RawData: []byte(raw)}
	}
	return e, err
}

func encodeLayerEdit(w *wire.Writer, le LayerEdit) {
	w.Uint(uint64(le.Kind))
	w.Int(int64(le.When))

	switch le.Kind {
	case AddKeyFrame, RemoveKeyFrame:
		// When already written above.
	case Paint:
		encodePaintEdit(w, le.PaintEdit)
	case Path:
		encodePathEdit(w, le.PathEdit)
	case Cut:
		w.Optional(le.CutPath != nil, func() { encodePath(w, le.CutPath) })
		w.Uint(le.InsideGroup.Value())
		w.Uint(le.OutsideGroup.Value())
	case SetName:
		w.String(le.Name)
	case SetAlpha:
		w.Float64(le.Alpha)
	case CreateAnimation:
		w.Uint(le.RegionID.Value())
		w.Optional(le.RegionDescription != nil && le.RegionDescription.Outline != nil, func() {
			encodePath(w, le.RegionDescription.Outline)
		})
	}
}

func decodeLayerEdit(r *wire.Reader) (LayerEdit, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return LayerEdit{}, err
	}
	whenNS, err := r.Int()
	if err != nil {
		return LayerEdit{}, err
	}
	le := LayerEdit{Kind: LayerEditKind(kindVal), When: time.Duration(whenNS)}

	switch le.Kind {
	case Paint:
		le.PaintEdit, err = decodePaintEdit(r)
	case Path:
		le.PathEdit, err = decodePathEdit(r)
	case Cut:
		_, err = r.Optional(func() error {
			p, perr := decodePath(r)
			if perr != nil {
				return perr
			}
			le.CutPath = p
			return nil
		})
		if err != nil {
			return LayerEdit{}, err
		}
		var inside, outside uint64
		if inside, err = r.Uint(); err != nil {
			return LayerEdit{}, err
		}
		outside, err = r.Uint()
		le.InsideGroup = vector.Assigned(inside)
		le.OutsideGroup = vector.Assigned(outside)
	case SetName:
		le.Name, err = r.String()
	case SetAlpha:
		le.Alpha, err = r.Float64()
	case CreateAnimation:
		var regionID uint64
		if regionID, err = r.Uint(); err != nil {
			return LayerEdit{}, err
		}
		le.RegionID = vector.Assigned(regionID)
		var outline *geo.Path
		_, err = r.Optional(func() error {
			p, perr := decodePath(r)
			if perr != nil {
				return perr
			}
			outline = p
			return nil
		})
		if err == nil && outline != nil {
			// The region's Content (time-indexed paths/effects) has no wire
			// codec of its own yet, so a replayed edit log recovers the
			// outline exactly but not what was painted inside it — an empty
			// Content, noted in DESIGN.md.
			le.RegionDescription = region.NewDescription(outline, region.Content{})
		}
	}
	return le, err
}

func encodePaintEdit(w *wire.Writer, pe PaintEdit) {
	w.Uint(uint64(pe.Kind))
	w.Uint(pe.ElementID.Value())

	switch pe.Kind {
	case PaintSelectBrush:
		w.String(pe.Brush.Name)
		w.Float64(pe.Brush.Size)
	case PaintBrushProperties:
		encodeBrushProperties(w, pe.BrushProperties)
	case PaintBrushStroke:
		w.Uint(uint64(len(pe.StrokePoints)))
		for _, p := range pe.StrokePoints {
			w.Float64(p.Position.X)
			w.Float64(p.Position.Y)
			w.Float64(p.Pressure)
		}
	case PaintCreateShape:
		encodeShape(w, pe.Shape)
	case PaintFill:
		w.Float64(pe.FillSeed.X)
		w.Float64(pe.FillSeed.Y)
		w.Uint(uint64(len(pe.FillOptions)))
		for _, opt := range pe.FillOptions {
			encodeFillOption(w, opt)
		}
	}
}

func encodeFillOption(w *wire.Writer, opt FillOption) {
	w.Uint(uint64(opt.Kind))
	switch opt.Kind {
	case FillOptRayCastDistance:
		w.Float64(opt.StepSize)
	case FillOptMinGap:
		w.Float64(opt.MinGap)
	case FillOptAlgorithm:
		w.Uint(uint64(opt.Algorithm))
	case FillOptPosition:
		w.Uint(uint64(opt.Position))
	case FillOptFitPrecision:
		w.Float64(opt.FitPrecision)
	}
}

func decodeFillOption(r *wire.Reader) (FillOption, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return FillOption{}, err
	}
	opt := FillOption{Kind: FillOptionKind(kindVal)}
	switch opt.Kind {
	case FillOptRayCastDistance:
		opt.StepSize, err = r.Float64()
	case FillOptMinGap:
		opt.MinGap, err = r.Float64()
	case FillOptAlgorithm:
		var v uint64
		v, err = r.Uint()
		opt.Algorithm = FillAlgorithm(v)
	case FillOptPosition:
		var v uint64
		v, err = r.Uint()
		opt.Position = FillPosition(v)
	case FillOptFitPrecision:
		opt.FitPrecision, err = r.Float64()
	}
	return opt, err
}

func decodePaintEdit(r *wire.Reader) (PaintEdit, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return PaintEdit{}, err
	}
	idVal, err := r.Uint()
	if err != nil {
		return PaintEdit{}, err
	}
	pe := PaintEdit{Kind: PaintEditKind(kindVal), ElementID: vector.Assigned(idVal)}

	switch pe.Kind {
	case PaintSelectBrush:
		if pe.Brush.Name, err = r.String(); err != nil {
			return PaintEdit{}, err
		}
		pe.Brush.Size, err = r.Float64()
	case PaintBrushProperties:
		pe.BrushProperties, err = decodeBrushProperties(r)
	case PaintBrushStroke:
		var n uint64
		if n, err = r.Uint(); err != nil {
			return PaintEdit{}, err
		}
		for i := uint64(0); i < n; i++ {
			x, xerr := r.Float64()
			if xerr != nil {
				return PaintEdit{}, xerr
			}
			y, yerr := r.Float64()
			if yerr != nil {
				return PaintEdit{}, yerr
			}
			pressure, perr := r.Float64()
			if perr != nil {
				return PaintEdit{}, perr
			}
			pe.StrokePoints = append(pe.StrokePoints, vector.InkPoint{Position: geo.Pt(x, y), Pressure: pressure})
		}
	case PaintCreateShape:
		pe.Shape, err = decodeShape(r)
	case PaintFill:
		if pe.FillSeed.X, err = r.Float64(); err != nil {
			return PaintEdit{}, err
		}
		if pe.FillSeed.Y, err = r.Float64(); err != nil {
			return PaintEdit{}, err
		}
		var n uint64
		if n, err = r.Uint(); err != nil {
			return PaintEdit{}, err
		}
		for i := uint64(0); i < n; i++ {
			opt, operr := decodeFillOption(r)
			if operr != nil {
				return PaintEdit{}, operr
			}
			pe.FillOptions = append(pe.FillOptions, opt)
		}
	}
	return pe, err
}

// encodeShape/decodeShape round-trip a ShapeElement's geometry (not its
// id, which the enclosing PaintEdit.ElementID already carries) so a
// replayed PaintCreateShape edit reconstructs the exact shape instead of
// only its kind.
func encodeShape(w *wire.Writer, s vector.ShapeElement) {
	w.Uint(uint64(s.Kind))
	switch s.Kind {
	case vector.ShapeRectangle:
		w.Float64(s.X)
		w.Float64(s.Y)
		w.Float64(s.Width)
		w.Float64(s.Height)
	case vector.ShapeCircle:
		w.Float64(s.CenterX)
		w.Float64(s.CenterY)
		w.Float64(s.Radius)
	case vector.ShapePolygon:
		w.Uint(uint64(len(s.Vertices)))
		for _, v := range s.Vertices {
			w.Float64(v.X)
			w.Float64(v.Y)
		}
	}
}

func decodeShape(r *wire.Reader) (vector.ShapeElement, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return vector.ShapeElement{}, err
	}
	s := vector.ShapeElement{Kind: vector.ShapeKind(kindVal)}

	switch s.Kind {
	case vector.ShapeRectangle:
		if s.X, err = r.Float64(); err != nil {
			return vector.ShapeElement{}, err
		}
		if s.Y, err = r.Float64(); err != nil {
			return vector.ShapeElement{}, err
		}
		if s.Width, err = r.Float64(); err != nil {
			return vector.ShapeElement{}, err
		}
		s.Height, err = r.Float64()
	case vector.ShapeCircle:
		if s.CenterX, err = r.Float64(); err != nil {
			return vector.ShapeElement{}, err
		}
		if s.CenterY, err = r.Float64(); err != nil {
			return vector.ShapeElement{}, err
		}
		s.Radius, err = r.Float64()
	case vector.ShapePolygon:
		var n uint64
		if n, err = r.Uint(); err != nil {
			return vector.ShapeElement{}, err
		}
		for i := uint64(0); i < n; i++ {
			x, xerr := r.Float64()
			if xerr != nil {
				return vector.ShapeElement{}, xerr
			}
			y, yerr := r.Float64()
			if yerr != nil {
				return vector.ShapeElement{}, yerr
			}
			s.Vertices = append(s.Vertices, geo.Pt(x, y))
		}
	}
	return s, err
}

func encodePathEdit(w *wire.Writer, pe PathEdit) {
	w.Uint(uint64(pe.Kind))
	w.Uint(pe.ElementID.Value())

	switch pe.Kind {
	case PathSelectBrush:
		w.String(pe.Brush.Name)
		w.Float64(pe.Brush.Size)
	case PathBrushProperties:
		encodeBrushProperties(w, pe.BrushProperties)
	case PathCreatePath:
		w.Optional(pe.Path != nil, func() { encodePath(w, pe.Path) })
	}
}

func decodePathEdit(r *wire.Reader) (PathEdit, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return PathEdit{}, err
	}
	idVal, err := r.Uint()
	if err != nil {
		return PathEdit{}, err
	}
	pe := PathEdit{Kind: PathEditKind(kindVal), ElementID: vector.Assigned(idVal)}

	switch pe.Kind {
	case PathSelectBrush:
		if pe.Brush.Name, err = r.String(); err != nil {
			return PathEdit{}, err
		}
		pe.Brush.Size, err = r.Float64()
	case PathBrushProperties:
		pe.BrushProperties, err = decodeBrushProperties(r)
	case PathCreatePath:
		_, err = r.Optional(func() error {
			p, perr := decodePath(r)
			if perr != nil {
				return perr
			}
			pe.Path = p
			return nil
		})
	}
	return pe, err
}

func encodeElementEdit(w *wire.Writer, ee ElementEdit) {
	w.Uint(uint64(ee.Kind))
	switch ee.Kind {
	case ElementAddAttachment, ElementRemoveAttachment:
		w.Uint(ee.Attachment.Value())
	case ElementOrderAfter:
		w.Uint(ee.Before.Value())
		w.Uint(ee.After.Value())
	case ElementSetControlPoints:
		w.Uint(uint64(len(ee.NewPoints)))
		for _, p := range ee.NewPoints {
			w.Float64(p.X)
			w.Float64(p.Y)
		}
	}
}

func decodeElementEdit(r *wire.Reader) (ElementEdit, error) {
	kindVal, err := r.Uint()
	if err != nil {
		return ElementEdit{}, err
	}
	ee := ElementEdit{Kind: ElementEditKind(kindVal)}

	switch ee.Kind {
	case ElementAddAttachment, ElementRemoveAttachment:
		var v uint64
		v, err = r.Uint()
		ee.Attachment = vector.Assigned(v)
	case ElementOrderAfter:
		var before, after uint64
		if before, err = r.Uint(); err != nil {
			return ElementEdit{}, err
		}
		after, err = r.Uint()
		ee.Before = vector.Assigned(before)
		ee.After = vector.Assigned(after)
	case ElementSetControlPoints:
		var n uint64
		if n, err = r.Uint(); err != nil {
			return ElementEdit{}, err
		}
		for i := uint64(0); i < n; i++ {
			x, xerr := r.Float64()
			if xerr != nil {
				return ElementEdit{}, xerr
			}
			y, yerr := r.Float64()
			if yerr != nil {
				return ElementEdit{}, yerr
			}
			ee.NewPoints = append(ee.NewPoints, geo.Pt(x, y))
		}
	}
	return ee, err
}
