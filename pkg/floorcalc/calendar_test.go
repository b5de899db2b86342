package floorcalc_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/floorcalc"
)

func TestBuildMonthMatrix_AlwaysFullWeeks(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			ref := time.Date(year, month, 15, 12, 30, 0, 0, time.Local)
			cells := floorcalc.BuildMonthMatrix(ref)

			require.Equal(t, 0, len(cells)%7, "%d-%d grid not a multiple of 7", year, month)

			daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
			var nonPad int
			for _, c := range cells {
				if !c.Pad {
					nonPad++
				}
			}
			require.Equal(t, daysInMonth, nonPad, "%d-%d day cell count", year, month)
		}
	}
}

func TestBuildMonthMatrix_MondayFirst(t *testing.T) {
	// September 2025 starts on a Monday: no leading pads.
	cells := floorcalc.BuildMonthMatrix(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.Local))
	require.False(t, cells[0].Pad)
	require.Equal(t, time.Monday, cells[0].Date.Weekday())

	// June 2025 starts on a Sunday: six leading pads.
	cells = floorcalc.BuildMonthMatrix(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local))
	for i := 0; i < 6; i++ {
		require.True(t, cells[i].Pad, "cell %d", i)
	}
	require.Equal(t, 1, cells[6].Date.Day())
	require.Equal(t, time.Sunday, cells[6].Date.Weekday())
}

func TestBuildMonthMatrix_LeapFebruary(t *testing.T) {
	cells := floorcalc.BuildMonthMatrix(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local))
	var nonPad int
	for _, c := range cells {
		if !c.Pad {
			nonPad++
		}
	}
	require.Equal(t, 29, nonPad)
}
