// Package render implements spec §4.H's tessellation and render stream:
// walking a canvas.Drawing into a per-layer list of RenderEntity
// placeholders, tessellating fills and strokes asynchronously, and
// emitting an ordered GPUCommand stream from whatever has finished.
//
// Grounded on gogpu-gg/backend/gogpu/tessellate.go (fan triangulation,
// curve flattening to a flatness tolerance) and gogpu-gg/render/renderer.go
// (Renderer as a stateless-between-calls interface over a target); concrete
// GPU backends are out of scope per spec.md §1, so GPUCommand is an
// abstract instruction stream rather than a call into a real graphics API.
package render

import (
	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
)

// BufferID names a vertex or index buffer created by a tessellation.
type BufferID uint64

// Vertex is one tessellated triangle vertex, grounded directly on
// backend/gogpu/tessellate.go's Vertex (position + premultiplied color).
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// TessellationKind distinguishes a fill tessellation from a stroke one;
// strokes need width/cap/join the teacher's fan triangulator never takes
// (it only tessellates fills), so stroking is this port's own addition,
// built the same way (flatten then triangulate) — see DESIGN.md.
type TessellationKind uint8

const (
	TessellateFillKind TessellationKind = iota
	TessellateStrokeKind
)

// TessellationOp describes one pending or finished tessellation: the
// flattened path plus the style state in effect when Fill/Stroke was
// issued.
type TessellationOp struct {
	Kind      TessellationKind
	Points    []geo.Point
	Closed    bool
	Winding   canvas.WindingRuleStyle
	Color     canvas.Color
	Width     float64
	Join      canvas.LineJoinStyle
	Cap       canvas.LineCapStyle
	Transform geo.Matrix
}

// EntityKind is the RenderEntity discriminant of spec §4.H.
type EntityKind uint8

const (
	// EntityMissing is a transient placeholder with nothing queued yet.
	EntityMissing EntityKind = iota
	// EntityTessellating holds an op awaiting its worker's result.
	EntityTessellating
	// EntityVertexBuffer holds a finished tessellation's buffers, not yet drawn.
	EntityVertexBuffer
	// EntityDrawIndexed is a finished, drawable tessellation.
	EntityDrawIndexed
	// EntitySetTransform changes the layer's running transform mid-stream.
	EntitySetTransform
)

// RenderEntity is one item of a layer's ordered entity list, spec §4.H.
type RenderEntity struct {
	Kind EntityKind

	Op         TessellationOp // Tessellating, VertexBuffer, DrawIndexed
	ID         uint64         // Tessellating: the op's identity, used to match the finished result back in place
	VertexBuf  BufferID       // VertexBuffer, DrawIndexed
	IndexBuf   BufferID       // DrawIndexed
	Count      int            // DrawIndexed: index count
	vertices   []Vertex       // VertexBuffer: pending upload, cleared once emitted
	indices    []uint32       // VertexBuffer: pending upload, cleared once emitted
	Transform  geo.Matrix     // SetTransform
}

// GPUOp is the abstract instruction alphabet the render stream emits.
type GPUOp uint8

const (
	OpCreateVertexBuffer GPUOp = iota
	OpCreateIndexBuffer
	OpSelectRenderTarget
	OpUseShader
	OpSetTransform
	OpDrawIndexedTriangles
	OpClear
	OpPresentFrame
	OpReleaseBuffer
)

// GPUCommand is one instruction of the render stream spec §4.H describes.
type GPUCommand struct {
	Op        GPUOp
	Buffer    BufferID
	Vertices  []Vertex
	Indices   []uint32
	Target    canvas.LayerID
	Shader    string
	Transform geo.Matrix
	Count     int
	Color     canvas.Color
}
