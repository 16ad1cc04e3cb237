package animation

import (
	"time"

	"github.com/Logicalshift/flowbetween-sub004/geo"
	"github.com/Logicalshift/flowbetween-sub004/keyframe"
	"github.com/Logicalshift/flowbetween-sub004/storage"
	"github.com/Logicalshift/flowbetween-sub004/vector"
)

// cutElements implements spec §4.G's LayerEdit::Cut: every path-shaped
// element currently in the keyframe is cut against cutPath, and the
// resulting inside/outside fragments are collected into two new
// GroupNormal elements, replacing the cut elements in the render order.
//
// Grounded on original_source's path_cut editor operation and geo.PathCut
// (which already implements the cut-join law of spec §8.2).
func cutElements(kf *keyframe.Core, when time.Duration, cutPath *geo.Path, insideID, outsideID vector.ElementID) []storage.Command {
	if cutPath == nil {
		return nil
	}

	var insideChildren, outsideChildren []vector.Element
	var toRemove []vector.ElementID

	for _, w := range kf.RenderOrder() {
		pe, ok := w.Element.(*vector.PathElement)
		if !ok {
			continue
		}

		result := geo.PathCut(pe.PathData, cutPath)
		if len(result.Inside) == 0 && len(result.Outside) == 0 {
			continue
		}

		for _, p := range result.Inside {
			insideChildren = append(insideChildren, vector.NewPathElement(vector.Unassigned(), p))
		}
		for _, p := range result.Outside {
			outsideChildren = append(outsideChildren, vector.NewPathElement(vector.Unassigned(), p))
		}
		toRemove = append(toRemove, pe.ID())
	}

	var cmds []storage.Command
	for _, id := range toRemove {
		cmds = append(cmds, kf.UnlinkElement(id)...)
	}

	if len(insideChildren) > 0 {
		inside := vector.NewGroupElement(insideID, vector.GroupNormal, insideChildren)
		cmds = append(cmds, kf.AddElementToEnd(insideID, &keyframe.ElementWrapper{Element: inside, StartTime: when})...)
	}
	if len(outsideChildren) > 0 {
		outside := vector.NewGroupElement(outsideID, vector.GroupNormal, outsideChildren)
		cmds = append(cmds, kf.AddElementToEnd(outsideID, &keyframe.ElementWrapper{Element: outside, StartTime: when})...)
	}
	return cmds
}
