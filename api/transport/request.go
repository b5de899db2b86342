package transport

type ProfileUpdateRequest struct {
	Email    string            `json:"email"`
	Username string            `json:"username"`
	Role     string            `json:"role"`
	Status   string            `json:"status"`
	Meta     map[string]string `json:"metadata"`
}

type SubtaskRequest struct {
	ID            string `json:"id"`
	ScheduledDate string `json:"scheduledDate"`
	Title         string `json:"title"`
}

type ScheduleRequest struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Color     string           `json:"color"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Subtasks  []SubtaskRequest `json:"subtasks"`
}

type TeamCreateRequest struct {
	Name string `json:"name"`
}

type TeamJoinRequest struct {
	JoinCode string `json:"joinCode"`
}

type FloorCreateRequest struct {
	Title     string   `json:"title"`
	DueDate   string   `json:"dueDate"`
	Assignees []string `json:"assignees"`
}

type AuthLoginRequest struct {
	UserID string `json:"user_id"`
	TTL    int    `json:"ttl_seconds"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}
