// Package canvas is the drawing command model of spec §4.B / §6.3: an
// abstract, backend-agnostic stream of drawing operations that flows into
// tessellation (package render) and is also the output alphabet of vector
// element rendering (package vector).
//
// Grounded on the teacher's recording package (gogpu-gg/recording/command.go,
// recorder.go), which records typed command structs instead of immediate
// rasterization for the same reason this package exists: the commands must
// be inspectable, replayable to more than one backend, and distinct from
// whatever concrete GPU backend eventually consumes them.
package canvas

// Op identifies the kind of a Draw command, the abridged alphabet of
// spec §6.3.
type Op uint8

const (
	OpNewPath Op = iota
	OpMove
	OpLine
	OpBezierCurve
	OpClosePath
	OpFill
	OpStroke
	OpLineWidth
	OpLineWidthPixels
	OpLineJoin
	OpLineCap
	OpStrokeColor
	OpFillColor
	OpFillTexture
	OpFillGradient
	OpWindingRule
	OpPushState
	OpPopState
	OpIdentityTransform
	OpCanvasHeight
	OpCenterRegion
	OpMultiplyTransform
	OpLayer
	OpNamespace
	OpSprite
	OpClearLayer
	OpClearCanvas
	OpStartFrame
	OpShowFrame
)

var opNames = [...]string{
	OpNewPath: "NewPath", OpMove: "Move", OpLine: "Line", OpBezierCurve: "BezierCurve",
	OpClosePath: "ClosePath", OpFill: "Fill", OpStroke: "Stroke", OpLineWidth: "LineWidth",
	OpLineWidthPixels: "LineWidthPixels", OpLineJoin: "LineJoin", OpLineCap: "LineCap",
	OpStrokeColor: "StrokeColor", OpFillColor: "FillColor", OpFillTexture: "FillTexture",
	OpFillGradient: "FillGradient", OpWindingRule: "WindingRule", OpPushState: "PushState",
	OpPopState: "PopState", OpIdentityTransform: "IdentityTransform", OpCanvasHeight: "CanvasHeight",
	OpCenterRegion: "CenterRegion", OpMultiplyTransform: "MultiplyTransform", OpLayer: "Layer",
	OpNamespace: "Namespace", OpSprite: "Sprite", OpClearLayer: "ClearLayer",
	OpClearCanvas: "ClearCanvas", OpStartFrame: "StartFrame", OpShowFrame: "ShowFrame",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// LineJoinStyle and LineCapStyle mirror the stroking styles the tessellator
// consumes.
type LineJoinStyle uint8

const (
	JoinMiter LineJoinStyle = iota
	JoinRound
	JoinBevel
)

type LineCapStyle uint8

const (
	CapButt LineCapStyle = iota
	CapRound
	CapSquare
)

// WindingRuleStyle selects fill interior rule.
type WindingRuleStyle uint8

const (
	WindingNonZero WindingRuleStyle = iota
	WindingEvenOdd
)

// Color is a straight-alpha RGBA color in [0,1].
type Color struct {
	R, G, B, A float64
}

// LayerID, NamespaceID and SpriteID are the layer/sprite addressing scheme
// of spec §4.B.
type LayerID uint64
type NamespaceID uint64
type SpriteID uint64

// Point2D avoids importing geo from canvas (canvas is a leaf package the
// tessellator and vector model both depend on; geo depends on nothing, so
// importing it here would be fine, but the command stream's wire shape is
// defined independently of the curves library per spec §2's data-flow
// diagram, where canvas is driven "either by explicit tool drawing or by
// rendering frames").
type Point2D struct {
	X, Y float64
}

// Draw is one command in a Drawing, the drawing command alphabet of
// spec §6.3.
type Draw struct {
	Op Op

	// Payload fields; which are meaningful depends on Op.
	Point       Point2D          // Move, Line, CenterRegion (p1)
	Point2      Point2D          // CenterRegion (p2)
	Control1    Point2D          // BezierCurve
	Control2    Point2D          // BezierCurve
	Width       float64          // LineWidth, LineWidthPixels, CanvasHeight
	Join        LineJoinStyle    // LineJoin
	Cap         LineCapStyle     // LineCap
	Color       Color            // StrokeColor, FillColor, ClearCanvas
	Winding     WindingRuleStyle // WindingRule
	Transform   [6]float64       // MultiplyTransform: A,B,C,D,E,F
	Layer       LayerID          // Layer
	Namespace   NamespaceID      // Namespace
	Sprite      SpriteID         // Sprite
	TextureName string           // FillTexture
	GradientID  uint64           // FillGradient
}

// Drawing is an ordered command stream, per spec §4.B.
type Drawing []Draw
