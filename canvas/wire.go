package canvas

import "github.com/Logicalshift/flowbetween-sub004/internal/wire"

// EncodeDrawing serializes a Drawing with the compact text format of
// spec §6.2, so it can round-trip through a storage backend's blob
// columns (layer caches, in particular — see storage.Command's
// WriteLayerCache/ReadLayerCache).
func EncodeDrawing(d Drawing) string {
	w := wire.NewWriter()
	w.Version(1)
	w.Uint(uint64(len(d)))
	for _, draw := range d {
		encodeDraw(w, draw)
	}
	return w.String()
}

// DecodeDrawing parses the output of EncodeDrawing.
func DecodeDrawing(s string) (Drawing, error) {
	r := wire.NewReader(s)
	if _, err := r.Version(1); err != nil {
		return nil, err
	}
	n, err := r.Uint()
	if err != nil {
		return nil, err
	}
	out := make(Drawing, 0, n)
	for i := uint64(0); i < n; i++ {
		d, err := decodeDraw(r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func encodeDraw(w *wire.Writer, d Draw) {
	w.Uint(uint64(d.Op))
	switch d.Op {
	case OpMove, OpLine:
		encodePoint2D(w, d.Point)
	case OpBezierCurve:
		encodePoint2D(w, d.Control1)
		encodePoint2D(w, d.Control2)
		encodePoint2D(w, d.Point)
	case OpLineWidth, OpLineWidthPixels, OpCanvasHeight:
		w.Float64(d.Width)
	case OpLineJoin:
		w.Uint(uint64(d.Join))
	case OpLineCap:
		w.Uint(uint64(d.Cap))
	case OpStrokeColor, OpFillColor, OpClearCanvas:
		encodeColor(w, d.Color)
	case OpFillTexture:
		w.String(d.TextureName)
	case OpFillGradient:
		w.Uint(d.GradientID)
	case OpWindingRule:
		w.Uint(uint64(d.Winding))
	case OpCenterRegion:
		encodePoint2D(w, d.Point)
		encodePoint2D(w, d.Point2)
	case OpMultiplyTransform:
		for _, v := range d.Transform {
			w.Float64(v)
		}
	case OpLayer:
		w.Uint(uint64(d.Layer))
	case OpNamespace:
		w.Uint(uint64(d.Namespace))
	case OpSprite:
		w.Uint(uint64(d.Sprite))
	}
}

func decodeDraw(r *wire.Reader) (Draw, error) {
	opVal, err := r.Uint()
	if err != nil {
		return Draw{}, err
	}
	d := Draw{Op: Op(opVal)}

	switch d.Op {
	case OpMove, OpLine:
		d.Point, err = decodePoint2D(r)
	case OpBezierCurve:
		if d.Control1, err = decodePoint2D(r); err != nil {
			break
		}
		if d.Control2, err = decodePoint2D(r); err != nil {
			break
		}
		d.Point, err = decodePoint2D(r)
	case OpLineWidth, OpLineWidthPixels, OpCanvasHeight:
		d.Width, err = r.Float64()
	case OpLineJoin:
		var v uint64
		v, err = r.Uint()
		d.Join = LineJoinStyle(v)
	case OpLineCap:
		var v uint64
		v, err = r.Uint()
		d.Cap = LineCapStyle(v)
	case OpStrokeColor, OpFillColor, OpClearCanvas:
		d.Color, err = decodeColor(r)
	case OpFillTexture:
		d.TextureName, err = r.String()
	case OpFillGradient:
		d.GradientID, err = r.Uint()
	case OpWindingRule:
		var v uint64
		v, err = r.Uint()
		d.Winding = WindingRuleStyle(v)
	case OpCenterRegion:
		if d.Point, err = decodePoint2D(r); err != nil {
			break
		}
		d.Point2, err = decodePoint2D(r)
	case OpMultiplyTransform:
		for i := range d.Transform {
			if d.Transform[i], err = r.Float64(); err != nil {
				break
			}
		}
	case OpLayer:
		var v uint64
		v, err = r.Uint()
		d.Layer = LayerID(v)
	case OpNamespace:
		var v uint64
		v, err = r.Uint()
		d.Namespace = NamespaceID(v)
	case OpSprite:
		var v uint64
		v, err = r.Uint()
		d.Sprite = SpriteID(v)
	}
	return d, err
}

func encodePoint2D(w *wire.Writer, p Point2D) {
	w.Float64(p.X)
	w.Float64(p.Y)
}

func decodePoint2D(r *wire.Reader) (Point2D, error) {
	x, err := r.Float64()
	if err != nil {
		return Point2D{}, err
	}
	y, err := r.Float64()
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: x, Y: y}, nil
}

func encodeColor(w *wire.Writer, c Color) {
	w.Float64(c.R)
	w.Float64(c.G)
	w.Float64(c.B)
	w.Float64(c.A)
}

func decodeColor(r *wire.Reader) (Color, error) {
	vals := make([]float64, 4)
	for i := range vals {
		v, err := r.Float64()
		if err != nil {
			return Color{}, err
		}
		vals[i] = v
	}
	return Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}
