package floorcalc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/floorcalc"
)

func TestFloorForDoneCount_Clamping(t *testing.T) {
	require.Equal(t, 1, floorcalc.FloorForDoneCount(-5, 100))
	require.Equal(t, 100, floorcalc.FloorForDoneCount(500, 100))
	require.Equal(t, 10, floorcalc.FloorForDoneCount(9, 100))
}

func TestFloorForDoneCount_Monotonic(t *testing.T) {
	prev := 0
	for done := -3; done <= 120; done++ {
		level := floorcalc.FloorForDoneCount(done, 100)
		require.GreaterOrEqual(t, level, 1)
		require.LessOrEqual(t, level, 100)
		require.GreaterOrEqual(t, level, prev)
		prev = level
	}
}

func TestZoneForLevel_CoversEveryLevel(t *testing.T) {
	require.Equal(t, "image20", floorcalc.ZoneForLevel(1).Name)
	require.Equal(t, "image20", floorcalc.ZoneForLevel(10).Name)
	require.Equal(t, "sky", floorcalc.ZoneForLevel(11).Name)
	require.Equal(t, "sky", floorcalc.ZoneForLevel(249).Name)
	require.Equal(t, "moon", floorcalc.ZoneForLevel(250).Name)
	require.Equal(t, "aurora", floorcalc.ZoneForLevel(500).Name)
	require.Equal(t, "space", floorcalc.ZoneForLevel(750).Name)
	require.Equal(t, "space", floorcalc.ZoneForLevel(100000).Name)

	// Bands are contiguous: each zone ends one floor before the next starts.
	for i := 0; i < len(floorcalc.Zones)-1; i++ {
		require.Equal(t, floorcalc.Zones[i].EndFloor+1, floorcalc.Zones[i+1].StartFloor)
	}
}
