package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
)

func squareDrawing(layer canvas.LayerID) canvas.Drawing {
	rec := canvas.NewRecorder()
	rec.Layer(layer)
	rec.NewPath()
	rec.MoveTo(0, 0)
	rec.LineTo(10, 0)
	rec.LineTo(10, 10)
	rec.LineTo(0, 10)
	rec.ClosePath()
	rec.FillColor(canvas.Color{R: 1, A: 1})
	rec.Fill()
	return rec.Finish()
}

func opsOf(cmds []GPUCommand) []GPUOp {
	ops := make([]GPUOp, len(cmds))
	for i, c := range cmds {
		ops[i] = c.Op
	}
	return ops
}

func TestRenderBufferUploadsPrecedeTheirDraw(t *testing.T) {
	r := NewCanvasRenderer()
	require.NoError(t, r.Draw(context.Background(), squareDrawing(1)))

	cmds := r.Render(canvas.Color{})
	ops := opsOf(cmds)

	require.Equal(t, []GPUOp{
		OpClear,
		OpSelectRenderTarget, OpUseShader, OpSetTransform,
		OpCreateVertexBuffer, OpCreateIndexBuffer, OpDrawIndexedTriangles,
		OpPresentFrame,
	}, ops)
}

func TestRenderSecondCallReusesBuffers(t *testing.T) {
	r := NewCanvasRenderer()
	require.NoError(t, r.Draw(context.Background(), squareDrawing(1)))
	_ = r.Render(canvas.Color{})

	second := r.Render(canvas.Color{})
	ops := opsOf(second)

	require.NotContains(t, ops, OpCreateVertexBuffer)
	require.NotContains(t, ops, OpCreateIndexBuffer)
	require.Equal(t, []GPUOp{
		OpClear,
		OpSelectRenderTarget, OpUseShader, OpSetTransform,
		OpDrawIndexedTriangles,
		OpPresentFrame,
	}, ops)
}

func TestRenderSeparatesLayersWithPreamble(t *testing.T) {
	r := NewCanvasRenderer()
	require.NoError(t, r.Draw(context.Background(), squareDrawing(1)))
	require.NoError(t, r.Draw(context.Background(), squareDrawing(2)))

	cmds := r.Render(canvas.Color{})

	var targets []canvas.LayerID
	for _, c := range cmds {
		if c.Op == OpSelectRenderTarget {
			targets = append(targets, c.Target)
		}
	}
	require.Equal(t, []canvas.LayerID{1, 2}, targets)
}

func TestWithWorkerLimitStillTessellatesEveryEntity(t *testing.T) {
	r := NewCanvasRenderer(WithWorkerLimit(1))

	rec := canvas.NewRecorder()
	rec.Layer(1)
	for i := 0; i < 3; i++ {
		rec.NewPath()
		rec.MoveTo(float64(i), 0)
		rec.LineTo(float64(i)+1, 0)
		rec.LineTo(float64(i)+1, 1)
		rec.LineTo(float64(i), 1)
		rec.ClosePath()
		rec.FillColor(canvas.Color{R: 1, A: 1})
		rec.Fill()
	}
	require.NoError(t, r.Draw(context.Background(), rec.Finish()))

	cmds := r.Render(canvas.Color{})
	var uploads int
	for _, c := range cmds {
		if c.Op == OpCreateVertexBuffer {
			uploads++
		}
	}
	require.Equal(t, 3, uploads, "a worker limit must not drop any tessellation job")
}

func TestInvalidateLayerForcesRetessellation(t *testing.T) {
	r := NewCanvasRenderer()
	require.NoError(t, r.Draw(context.Background(), squareDrawing(1)))
	_ = r.Render(canvas.Color{})

	r.InvalidateLayer(1)
	require.NoError(t, r.Draw(context.Background(), squareDrawing(1)))

	cmds := r.Render(canvas.Color{})
	require.Contains(t, opsOf(cmds), OpCreateVertexBuffer)
}
