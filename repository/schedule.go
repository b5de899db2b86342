package repository

import (
	"context"
	"time"

	"github.com/floorida/backend/domain"
)

type ScheduleFilter struct {
	UserID string
	Year   int
	Month  time.Month
	Limit  int
	Offset int
}

type ScheduleRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
	// ListForMonth returns schedules whose date range intersects the
	// filter's month, subtasks included.
	ListForMonth(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, error)
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id string) error

	GetSubtask(ctx context.Context, id string) (*domain.Subtask, error)
	// SetSubtaskCompleted flips the flag and reports the previous value.
	SetSubtaskCompleted(ctx context.Context, id string, completed bool) (wasCompleted bool, err error)
	// CountDoneSubtasks feeds the personal floor-level computation.
	CountDoneSubtasks(ctx context.Context, userID string) (int, error)
}
