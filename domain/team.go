package domain

import "time"

// Team is a shared workspace with its own floor-level progression. Level is
// authoritative here on the server; clients only animate toward it.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	JoinCode  string    `json:"joinCode"`
	Level     int       `json:"teamLevel"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamFloor is one unit of team work. Completion acts on the floor itself;
// assignees are display rows sharing the same completion flag.
type TeamFloor struct {
	ID          string     `json:"teamFloorId"`
	TeamID      string     `json:"team_id"`
	Title       string     `json:"title"`
	DueDate     string     `json:"dueDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Assignees   []Assignee `json:"assignees"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Assignee is a member attached to a team floor.
type Assignee struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// TeamBoard is the floor listing a team view renders from.
type TeamBoard struct {
	TeamLevel int         `json:"teamLevel"`
	Floors    []TeamFloor `json:"floors"`
}
