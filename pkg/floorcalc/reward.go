package floorcalc

import "time"

// CompletionResult is the payload a completion action returns.
type CompletionResult struct {
	Completed        bool `json:"completed"`
	TeamLevel        int  `json:"teamLevel,omitempty"`
	CoinsAwarded     int  `json:"coinsAwarded"`
	AlreadyCompleted bool `json:"alreadyCompleted"`
	Late             bool `json:"late"`
}

// ShouldReward decides whether a completion earns the coin popup. Coins must
// actually have been awarded, the item must not have been completed before,
// and the due date must not be overdue when recomputed here. The local
// overdue check deliberately outranks the payload's Late flag: a mismatched
// clock on either side must never mint a spurious reward.
func ShouldReward(res CompletionResult, dueDate string, now time.Time) bool {
	if res.CoinsAwarded <= 0 || res.AlreadyCompleted {
		return false
	}
	if info, ok := DDay(dueDate, now); ok && info.IsOverdue {
		return false
	}
	return true
}
