package repository

import (
	"context"
	"time"

	"github.com/floorida/backend/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team, ownerID string) (*domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	GetByJoinCode(ctx context.Context, code string) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)

	ListFloors(ctx context.Context, teamID string) ([]domain.TeamFloor, error)
	GetFloor(ctx context.Context, floorID string) (*domain.TeamFloor, error)
	CreateFloor(ctx context.Context, floor *domain.TeamFloor) (*domain.TeamFloor, error)
	// SetFloorCompleted flips the floor's flag and reports the previous
	// value so callers can detect an already-completed floor.
	SetFloorCompleted(ctx context.Context, floorID string, completed bool, completedAt *time.Time) (wasCompleted bool, err error)
	// BumpLevel adjusts the team level by delta (floored at 1) and returns
	// the new value.
	BumpLevel(ctx context.Context, teamID string, delta int) (int, error)
}
