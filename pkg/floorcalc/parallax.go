package floorcalc

import "math"

// LoopedOffset computes the vertical backdrop offset for a floor level
// inside one background zone. The image scrolls stepPx per floor and wraps
// over a cycle of loopHeightPx+stepPx so a finite image appears endless.
//
// When loopHeightPx is unknown (image metrics not loaded yet) the offset
// degrades to an unbounded linear scroll; callers recompute once the real
// height is available. Crossing into another zone restarts the basis; there
// is no continuity requirement across zones.
func LoopedOffset(level, zoneStartFloor int, stepPx, loopHeightPx, baseOffsetPx, extraOffsetPx float64) float64 {
	movePx := float64(level-zoneStartFloor) * stepPx

	if !(loopHeightPx > 0) || math.IsInf(loopHeightPx, 0) {
		return baseOffsetPx - movePx + extraOffsetPx
	}

	cycle := loopHeightPx + stepPx
	modPx := math.Mod(movePx, cycle)
	if modPx < 0 {
		modPx += cycle
	}
	if modPx > loopHeightPx {
		// Snap the partial step at the wrap boundary back to the top,
		// otherwise the seam shows for one floor.
		modPx = 0
	}
	return baseOffsetPx - modPx + extraOffsetPx
}

// ZoneOffset is the common case: offset for a level using its zone's own
// geometry and no extra adjustment.
func ZoneOffset(level int) float64 {
	z := ZoneForLevel(level)
	return LoopedOffset(level, z.StartFloor, z.StepPx, z.LoopPx, z.BasePx, 0)
}
