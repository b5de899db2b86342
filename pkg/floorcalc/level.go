package floorcalc

// FloorForDoneCount maps a completed-task count to the floor the elevator
// should display. Level 1 is the lobby; every completion adds one floor,
// clamped to the highest floor the building defines.
func FloorForDoneCount(doneCount, maxFloor int) int {
	if maxFloor < 1 {
		maxFloor = 1
	}
	level := 1 + doneCount
	if level < 1 {
		return 1
	}
	if level > maxFloor {
		return maxFloor
	}
	return level
}

// Zone describes a contiguous band of floors that shares one background
// image and one looping geometry. EndFloor of 0 means the zone is open-ended.
type Zone struct {
	Name       string  `json:"name"`
	StartFloor int     `json:"startFloor"`
	EndFloor   int     `json:"endFloor"`
	StepPx     float64 `json:"stepPx"`
	LoopPx     float64 `json:"loopPx"`
	BasePx     float64 `json:"basePx"`
}

// DefaultStepPx is the vertical distance one floor moves the backdrop.
const DefaultStepPx = 55

// Zones is the background table. Bands are contiguous and non-overlapping,
// so any level >= 1 resolves to exactly one zone. Loop heights are whole
// multiples of the step so a full wrap lands exactly on a floor boundary.
var Zones = []Zone{
	{Name: "image20", StartFloor: 1, EndFloor: 10, StepPx: DefaultStepPx, LoopPx: 20 * DefaultStepPx, BasePx: 0},
	{Name: "sky", StartFloor: 11, EndFloor: 249, StepPx: DefaultStepPx, LoopPx: 44 * DefaultStepPx, BasePx: -120},
	{Name: "moon", StartFloor: 250, EndFloor: 499, StepPx: DefaultStepPx, LoopPx: 44 * DefaultStepPx, BasePx: -80},
	{Name: "aurora", StartFloor: 500, EndFloor: 749, StepPx: DefaultStepPx, LoopPx: 44 * DefaultStepPx, BasePx: -80},
	{Name: "space", StartFloor: 750, EndFloor: 0, StepPx: DefaultStepPx, LoopPx: 60 * DefaultStepPx, BasePx: -40},
}

// ZoneForLevel resolves the zone a floor level falls into. Levels below 1
// are treated as 1.
func ZoneForLevel(level int) Zone {
	if level < 1 {
		level = 1
	}
	for _, z := range Zones {
		if level >= z.StartFloor && (z.EndFloor == 0 || level <= z.EndFloor) {
			return z
		}
	}
	return Zones[len(Zones)-1]
}
