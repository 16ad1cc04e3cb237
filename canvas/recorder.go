package canvas

// Recorder accumulates Draw commands with method-call ergonomics, grounded
// on the teacher's recording.Recorder (gogpu-gg/recording/recorder.go):
// every drawing tool or vector element render walk builds a Drawing by
// calling these methods rather than constructing Draw values by hand.
type Recorder struct {
	drawing Drawing
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Finish returns the accumulated Drawing and resets the recorder.
func (r *Recorder) Finish() Drawing {
	d := r.drawing
	r.drawing = nil
	return d
}

// Drawing returns the accumulated commands without resetting the recorder.
func (r *Recorder) Drawing() Drawing {
	return append(Drawing(nil), r.drawing...)
}

func (r *Recorder) push(d Draw) { r.drawing = append(r.drawing, d) }

func (r *Recorder) NewPath() { r.push(Draw{Op: OpNewPath}) }

func (r *Recorder) MoveTo(x, y float64) { r.push(Draw{Op: OpMove, Point: Point2D{X: x, Y: y}}) }

func (r *Recorder) LineTo(x, y float64) { r.push(Draw{Op: OpLine, Point: Point2D{X: x, Y: y}}) }

func (r *Recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.push(Draw{
		Op:       OpBezierCurve,
		Control1: Point2D{X: cp1x, Y: cp1y},
		Control2: Point2D{X: cp2x, Y: cp2y},
		Point:    Point2D{X: x, Y: y},
	})
}

func (r *Recorder) ClosePath() { r.push(Draw{Op: OpClosePath}) }

func (r *Recorder) Fill() { r.push(Draw{Op: OpFill}) }

func (r *Recorder) Stroke() { r.push(Draw{Op: OpStroke}) }

func (r *Recorder) LineWidth(w float64) { r.push(Draw{Op: OpLineWidth, Width: w}) }

func (r *Recorder) LineWidthPixels(w float64) { r.push(Draw{Op: OpLineWidthPixels, Width: w}) }

func (r *Recorder) LineJoin(j LineJoinStyle) { r.push(Draw{Op: OpLineJoin, Join: j}) }

func (r *Recorder) LineCap(c LineCapStyle) { r.push(Draw{Op: OpLineCap, Cap: c}) }

func (r *Recorder) StrokeColor(c Color) { r.push(Draw{Op: OpStrokeColor, Color: c}) }

func (r *Recorder) FillColor(c Color) { r.push(Draw{Op: OpFillColor, Color: c}) }

func (r *Recorder) FillTexture(name string) { r.push(Draw{Op: OpFillTexture, TextureName: name}) }

func (r *Recorder) FillGradient(id uint64) { r.push(Draw{Op: OpFillGradient, GradientID: id}) }

func (r *Recorder) WindingRule(w WindingRuleStyle) { r.push(Draw{Op: OpWindingRule, Winding: w}) }

func (r *Recorder) PushState() { r.push(Draw{Op: OpPushState}) }

func (r *Recorder) PopState() { r.push(Draw{Op: OpPopState}) }

func (r *Recorder) IdentityTransform() { r.push(Draw{Op: OpIdentityTransform}) }

func (r *Recorder) CanvasHeight(h float64) { r.push(Draw{Op: OpCanvasHeight, Width: h}) }

func (r *Recorder) CenterRegion(x1, y1, x2, y2 float64) {
	r.push(Draw{Op: OpCenterRegion, Point: Point2D{X: x1, Y: y1}, Point2: Point2D{X: x2, Y: y2}})
}

func (r *Recorder) MultiplyTransform(a, b, c, d, e, f float64) {
	r.push(Draw{Op: OpMultiplyTransform, Transform: [6]float64{a, b, c, d, e, f}})
}

func (r *Recorder) Layer(id LayerID) { r.push(Draw{Op: OpLayer, Layer: id}) }

func (r *Recorder) Namespace(id NamespaceID) { r.push(Draw{Op: OpNamespace, Namespace: id}) }

func (r *Recorder) Sprite(id SpriteID) { r.push(Draw{Op: OpSprite, Sprite: id}) }

func (r *Recorder) ClearLayer() { r.push(Draw{Op: OpClearLayer}) }

func (r *Recorder) ClearCanvas(c Color) { r.push(Draw{Op: OpClearCanvas, Color: c}) }

func (r *Recorder) StartFrame() { r.push(Draw{Op: OpStartFrame}) }

func (r *Recorder) ShowFrame() { r.push(Draw{Op: OpShowFrame}) }

// Append records an already-built Drawing verbatim, used when splicing a
// cached or precomputed Drawing (e.g. from StreamLayerCache) into a larger
// recording.
func (r *Recorder) Append(d Drawing) {
	r.drawing = append(r.drawing, d...)
}
