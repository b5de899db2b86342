package domain

import "time"

// Schedule is a user-owned plan spanning a date range. Dates are plain
// "YYYY-MM-DD" strings, normalized once at the API boundary; everything
// downstream (calendar math, D-day) consumes them as-is.
type Schedule struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Color     string    `json:"color,omitempty"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Subtasks  []Subtask `json:"subtasks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDateRange reports whether both bounds are present; schedules missing
// either bound are excluded from date-range rendering.
func (s *Schedule) HasDateRange() bool {
	return s != nil && s.StartDate != "" && s.EndDate != ""
}

// Subtask is one dated step of a schedule, owned exclusively by it.
type Subtask struct {
	ID            string `json:"id"`
	ScheduleID    string `json:"schedule_id"`
	ScheduledDate string `json:"scheduledDate"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
}
