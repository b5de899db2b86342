package domain

import "time"

// Grant sources.
const (
	GrantSourceSubtask   = "subtask"
	GrantSourceTeamFloor = "team_floor"
)

// CoinGrant records one coin award. Grants are append-only; the user's
// balance is derived from them and kept denormalized on the user row.
type CoinGrant struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Source    string    `json:"source"`
	SourceID  string    `json:"source_id"`
	Amount    int       `json:"amount"`
	GrantedAt time.Time `json:"granted_at"`
}

func (g *CoinGrant) Touch() {
	if g == nil {
		return
	}
	if g.GrantedAt.IsZero() {
		g.GrantedAt = time.Now()
	}
}
