package region

import (
	"testing"
	"time"

	"github.com/Logicalshift/flowbetween-sub004/canvas"
	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/stretchr/testify/require"
)

func square(x, y, w float64) *geo.Path {
	p := geo.NewPath(geo.Pt(x, y))
	p.LineTo(geo.Pt(x+w, y))
	p.LineTo(geo.Pt(x+w, y+w))
	p.LineTo(geo.Pt(x, y+w))
	p.Close()
	return p
}

func TestContentToDrawingSkipsFuturePaths(t *testing.T) {
	c := Content{Paths: []AnimationPath{
		{AppearanceTime: 0, Path: square(0, 0, 10), Attribute: PathAttribute{Kind: AttributeFill, Color: canvas.Color{A: 1}}},
		{AppearanceTime: 5 * time.Second, Path: square(20, 20, 10), Attribute: PathAttribute{Kind: AttributeFill, Color: canvas.Color{R: 1, A: 1}}},
	}}

	drawing := c.ToDrawing(1 * time.Second)
	var fills int
	for _, d := range drawing {
		if d.Op == canvas.OpFill {
			fills++
		}
	}
	require.Equal(t, 1, fills)
}

func TestContentToDrawingIncludesAllVisiblePaths(t *testing.T) {
	c := Content{Paths: []AnimationPath{
		{AppearanceTime: 0, Path: square(0, 0, 10), Attribute: PathAttribute{Kind: AttributeFill, Color: canvas.Color{A: 1}}},
		{AppearanceTime: 1 * time.Second, Path: square(20, 20, 10), Attribute: PathAttribute{Kind: AttributeFill, Color: canvas.Color{R: 1, A: 1}}},
	}}

	drawing := c.ToDrawing(2 * time.Second)
	var fills int
	for _, d := range drawing {
		if d.Op == canvas.OpFill {
			fills++
		}
	}
	require.Equal(t, 2, fills)
}

func TestDescriptionCutOutsideBounds(t *testing.T) {
	outline := square(0, 0, 10)
	desc := NewDescription(outline, Content{})

	source := square(100, 100, 5)
	result := desc.Cut(source)
	require.Len(t, result.Outside, 1)
	require.Empty(t, result.Inside)
}
