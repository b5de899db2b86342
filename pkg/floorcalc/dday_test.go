package floorcalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/floorcalc"
)

var june15 = time.Date(2025, time.June, 15, 10, 45, 0, 0, time.Local)

func TestDDay_Labels(t *testing.T) {
	info, ok := floorcalc.DDay("2025-06-15", june15)
	require.True(t, ok)
	require.Equal(t, "D-DAY", info.Label)
	require.Equal(t, 0, info.DiffDays)
	require.False(t, info.IsOverdue)

	info, ok = floorcalc.DDay("2025-06-10", june15)
	require.True(t, ok)
	require.Equal(t, "D+5", info.Label)
	require.True(t, info.IsOverdue)

	info, ok = floorcalc.DDay("2025-06-20", june15)
	require.True(t, ok)
	require.Equal(t, "D-5", info.Label)
	require.False(t, info.IsOverdue)
}

func TestDDay_Unparseable(t *testing.T) {
	_, ok := floorcalc.DDay("soon", june15)
	require.False(t, ok)
	_, ok = floorcalc.DDay("", june15)
	require.False(t, ok)
}

func TestDDay_TimeOfDayIrrelevant(t *testing.T) {
	lateEvening := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.Local)
	info, ok := floorcalc.DDay("2025-06-16", lateEvening)
	require.True(t, ok)
	require.Equal(t, 1, info.DiffDays)
	require.False(t, info.IsOverdue)
}

func TestShouldReward_ClientOverdueVetoesServer(t *testing.T) {
	res := floorcalc.CompletionResult{Completed: true, CoinsAwarded: 10, AlreadyCompleted: false, Late: false}

	// Server says not late, client disagrees: no reward.
	require.False(t, floorcalc.ShouldReward(res, "2025-06-10", june15))

	// On time and coins awarded: reward.
	require.True(t, floorcalc.ShouldReward(res, "2025-06-20", june15))
	require.True(t, floorcalc.ShouldReward(res, "2025-06-15", june15))
}

func TestShouldReward_RequiresFreshCoins(t *testing.T) {
	require.False(t, floorcalc.ShouldReward(floorcalc.CompletionResult{Completed: true}, "2025-06-20", june15))
	require.False(t, floorcalc.ShouldReward(
		floorcalc.CompletionResult{Completed: true, CoinsAwarded: 10, AlreadyCompleted: true},
		"2025-06-20", june15))
}
