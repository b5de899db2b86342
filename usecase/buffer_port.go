package usecase

import (
	"context"

	"github.com/floorida/backend/domain"
)

// Operation names shared with the offline buffer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline buffer so use cases stay
// storage-agnostic. Mutations land here when primary storage is down and
// are replayed later.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferSchedule(ctx context.Context, operation string, schedule *domain.Schedule) error
}
