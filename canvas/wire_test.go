package canvas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeDrawingRoundTrips(t *testing.T) {
	rec := NewRecorder()
	rec.NewPath()
	rec.MoveTo(1, 2)
	rec.LineTo(3, 4)
	rec.BezierCurveTo(5, 6, 7, 8, 9, 10)
	rec.FillColor(Color{R: 1, G: 0.5, B: 0.25, A: 1})
	rec.ClosePath()
	rec.Fill()
	drawing := rec.Finish()

	encoded := EncodeDrawing(drawing)
	decoded, err := DecodeDrawing(encoded)
	require.NoError(t, err)
	require.Equal(t, drawing, decoded)
}

func TestDecodeDrawingRejectsTruncatedInput(t *testing.T) {
	_, err := DecodeDrawing("garbage")
	require.Error(t, err)
}
