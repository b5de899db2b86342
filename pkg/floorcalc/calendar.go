// Package floorcalc holds the pure computation core of the service:
// calendar grids, date-range intersection, floor-level progression,
// parallax offsets, D-day math and pagination. Nothing here does I/O.
package floorcalc

import "time"

// Cell is one slot in a month grid. Pad cells align the first day of the
// month to a Monday column and the last day to a Sunday column.
type Cell struct {
	Date time.Time `json:"date"`
	Pad  bool      `json:"pad"`
}

// BuildMonthMatrix lays out the month containing t as a Monday-first grid.
// The result length is always a multiple of 7; pad cells carry a zero Date.
func BuildMonthMatrix(t time.Time) []Cell {
	year, month, _ := t.Date()
	loc := t.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Go's Weekday has Sunday=0; shift so Monday occupies column 0.
	lead := (int(first.Weekday()) + 6) % 7

	cells := make([]Cell, 0, lead+daysInMonth+6)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Pad: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, Cell{Date: time.Date(year, month, day, 0, 0, 0, 0, loc)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{Pad: true})
	}
	return cells
}
