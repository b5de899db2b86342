package floorcalc

import (
	"fmt"
	"math"
	"time"
)

// DDayInfo is the signed day distance to a due date.
type DDayInfo struct {
	DiffDays  int    `json:"diffDays"`
	Label     string `json:"label"`
	IsOverdue bool   `json:"isOverdue"`
}

// DDay computes the D-day info for a due date relative to now. The second
// return is false when the due date cannot be parsed; callers render "-"
// in that case instead of failing.
func DDay(dueDateLike string, now time.Time) (DDayInfo, bool) {
	due, ok := ParseDate(dueDateLike)
	if !ok {
		return DDayInfo{}, false
	}

	dueMid := midnight(due)
	nowMid := midnight(now.In(due.Location()))

	diff := int(math.Ceil(dueMid.Sub(nowMid).Hours() / 24))

	info := DDayInfo{DiffDays: diff, IsOverdue: diff < 0}
	switch {
	case diff == 0:
		info.Label = "D-DAY"
	case diff > 0:
		info.Label = fmt.Sprintf("D-%d", diff)
	default:
		info.Label = fmt.Sprintf("D+%d", -diff)
	}
	return info, true
}
