package floorcalc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/floorcalc"
)

func TestLoopedOffset_PeriodicWithinZone(t *testing.T) {
	// Exact periodicity needs the loop height to be a whole number of
	// steps, which the zone table guarantees.
	const (
		step      = 55.0
		loop      = 20 * step
		zoneStart = 11
		base      = -120.0
	)
	period := int(math.Ceil((loop + step) / step))

	for k := 0; k < 40; k += 3 {
		a := floorcalc.LoopedOffset(zoneStart+k, zoneStart, step, loop, base, 0)
		b := floorcalc.LoopedOffset(zoneStart+k+period, zoneStart, step, loop, base, 0)
		require.InDelta(t, a, b, 1e-9, "k=%d", k)
	}
}

func TestLoopedOffset_SnapsAtWrapBoundary(t *testing.T) {
	// One step past the loop height lands in the partial-step band and must
	// snap back to the base offset.
	const step, loop = 55.0, 1000.0
	level := 11 + int(loop)/int(step) + 1 // movePx = 1045 > loop
	got := floorcalc.LoopedOffset(level, 11, step, loop, -120, 0)
	require.Equal(t, -120.0, got)
}

func TestLoopedOffset_LinearFallbackWithoutMetrics(t *testing.T) {
	// Unknown image height: no wrap, plain linear scroll.
	require.Equal(t, -120.0-3*55, floorcalc.LoopedOffset(14, 11, 55, 0, -120, 0))
	require.Equal(t, -120.0-3*55, floorcalc.LoopedOffset(14, 11, 55, math.Inf(1), -120, 0))
	require.Equal(t, -120.0-3*55, floorcalc.LoopedOffset(14, 11, 55, math.NaN(), -120, 0))
}

func TestLoopedOffset_ExtraOffsetShifts(t *testing.T) {
	without := floorcalc.LoopedOffset(20, 11, 55, 1000, -120, 0)
	with := floorcalc.LoopedOffset(20, 11, 55, 1000, -120, 30)
	require.Equal(t, without+30, with)
}

func TestZoneOffset_UsesOwnZoneGeometry(t *testing.T) {
	z := floorcalc.ZoneForLevel(300)
	require.Equal(t,
		floorcalc.LoopedOffset(300, z.StartFloor, z.StepPx, z.LoopPx, z.BasePx, 0),
		floorcalc.ZoneOffset(300))
}
