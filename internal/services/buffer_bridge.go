package services

import (
	"context"
	"encoding/json"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/internal/infrastructure/buffer"
	"github.com/floorida/backend/usecase"
)

type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	item := buffer.Item{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferSchedule(ctx context.Context, operation string, schedule *domain.Schedule) error {
	if b.processor == nil || schedule == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:        schedule.ID,
		UserID:    schedule.UserID,
		Entity:    buffer.EntitySchedule,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
