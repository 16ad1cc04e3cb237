package animation

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/region"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// applyPaintEdit turns one PaintEdit into the element the keyframe should
// hold, linking it onto the render order's tail, per spec §4.G's Paint
// layer edit dispatch.
func applyPaintEdit(kf *keyframe.Core, when time.Duration, pe PaintEdit, cfg Config) []storage.Command {
	var el vector.Element
	switch pe.Kind {
	case PaintSelectBrush:
		el = vector.NewBrushDefinitionElement(pe.ElementID, pe.Brush, vector.DrawingStyleDraw)

	case PaintBrushProperties:
		el = vector.NewBrushPropertiesElement(pe.ElementID, pe.BrushProperties)

	case PaintBrushStroke:
		el = vector.NewBrushElement(pe.ElementID, pe.StrokePoints)

	case PaintCreateShape:
		shape := pe.Shape
		shape.SetID(pe.ElementID)
		el = &shape

	case PaintFill:
		return paintFill(kf, when, pe, cfg)

	default:
		return nil
	}

	return kf.AddElementToEnd(pe.ElementID, &keyframe.ElementWrapper{Element: el, StartTime: when})
}

// applyPathEdit turns one PathEdit into the element the keyframe should
// hold, per spec §4.G's Path layer edit dispatch.
func applyPathEdit(kf *keyframe.Core, when time.Duration, pe PathEdit) []storage.Command {
	var el vector.Element
	switch pe.Kind {
	case PathSelectBrush:
		el = vector.NewBrushDefinitionElement(pe.ElementID, pe.Brush, vector.DrawingStyleDraw)

	case PathBrushProperties:
		el = vector.NewBrushPropertiesElement(pe.ElementID, pe.BrushProperties)

	case PathCreatePath:
		el = vector.NewPathElement(pe.ElementID, pe.Path)

	default:
		return nil
	}

	return kf.AddElementToEnd(pe.ElementID, &keyframe.ElementWrapper{Element: el, StartTime: when})
}

// createAnimationRegion links a new AnimationRegionElement onto the
// keyframe, per spec §4.G's CreateAnimation layer edit.
func createAnimationRegion(kf *keyframe.Core, when time.Duration, regionID vector.ElementID, desc *region.Description) []storage.Command {
	if desc == nil {
		return nil
	}
	el := vector.NewAnimationRegionElement(regionID, desc)
	return kf.AddElementToEnd(regionID, &keyframe.ElementWrapper{Element: el, StartTime: when})
}
