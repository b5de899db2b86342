// Package schedule implements the personal calendar: month views built from
// the computation core, schedule CRUD, and subtask toggles with coin
// awarding gated on the due date.
package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/floorcalc"
	"github.com/floorida/backend/repository"
	"github.com/floorida/backend/usecase"
)

// Config tunes game behavior.
type Config struct {
	MaxFloor    int
	CoinsPerWin int
}

type UseCase struct {
	schedules repository.ScheduleRepository
	users     repository.UserRepository
	buffer    usecase.OperationBuffer
	cfg       Config
	now       func() time.Time
	logger    *zap.Logger
}

func New(schedules repository.ScheduleRepository, users repository.UserRepository, buffer usecase.OperationBuffer, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.MaxFloor <= 0 {
		cfg.MaxFloor = 999
	}
	if cfg.CoinsPerWin <= 0 {
		cfg.CoinsPerWin = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		schedules: schedules,
		users:     users,
		buffer:    buffer,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the time source; tests use it to pin "today".
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// ScheduleDays pairs a schedule with the day numbers it covers in the
// viewed month.
type ScheduleDays struct {
	domain.Schedule
	PlannedDays []int `json:"plannedDays"`
}

// MonthView is everything a calendar page renders: the Monday-first grid,
// schedules with their in-month days, and the caller's elevator position.
type MonthView struct {
	Matrix    []floorcalc.Cell `json:"matrix"`
	Schedules []ScheduleDays   `json:"schedules"`
	DoneCount int              `json:"doneCount"`
	Level     int              `json:"level"`
	Zone      floorcalc.Zone   `json:"zone"`
	OffsetPx  float64          `json:"offsetPx"`
}

func (uc *UseCase) MonthView(ctx context.Context, userID string, year int, month time.Month) (*MonthView, error) {
	schedules, err := uc.schedules.ListForMonth(ctx, repository.ScheduleFilter{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		return nil, err
	}

	withDays := make([]ScheduleDays, 0, len(schedules))
	for _, s := range schedules {
		entry := ScheduleDays{Schedule: s}
		if s.HasDateRange() {
			entry.PlannedDays = floorcalc.PlannedDays(s.StartDate, s.EndDate, year, month)
		}
		withDays = append(withDays, entry)
	}

	done, err := uc.schedules.CountDoneSubtasks(ctx, userID)
	if err != nil {
		return nil, err
	}

	level := floorcalc.FloorForDoneCount(done, uc.cfg.MaxFloor)
	return &MonthView{
		Matrix:    floorcalc.BuildMonthMatrix(time.Date(year, month, 1, 0, 0, 0, 0, time.Local)),
		Schedules: withDays,
		DoneCount: done,
		Level:     level,
		Zone:      floorcalc.ZoneForLevel(level),
		OffsetPx:  floorcalc.ZoneOffset(level),
	}, nil
}

func (uc *UseCase) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	return uc.schedules.GetByID(ctx, id)
}

func (uc *UseCase) CreateSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if err := validateRange(schedule); err != nil {
		return nil, err
	}
	created, err := uc.schedules.Create(ctx, schedule)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, schedule) {
			return schedule, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if err := validateRange(schedule); err != nil {
		return nil, err
	}
	if err := uc.schedules.Update(ctx, schedule); err != nil {
		if err == domain.ErrScheduleNotFound {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, schedule) {
			return schedule, nil
		}
		return nil, err
	}
	return schedule, nil
}

func (uc *UseCase) DeleteSchedule(ctx context.Context, id string) error {
	if err := uc.schedules.Delete(ctx, id); err != nil {
		if err == domain.ErrScheduleNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Schedule{ID: id}) {
			return nil
		}
		return err
	}
	return nil
}

// ToggleSubtask flips a subtask's completion. Completing an on-time subtask
// for the first time grants coins; lateness is derived from the scheduled
// date here, never taken from the caller.
func (uc *UseCase) ToggleSubtask(ctx context.Context, userID, subtaskID string) (floorcalc.CompletionResult, error) {
	sub, err := uc.schedules.GetSubtask(ctx, subtaskID)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}

	completed := !sub.Completed
	was, err := uc.schedules.SetSubtaskCompleted(ctx, subtaskID, completed)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}

	result := floorcalc.CompletionResult{
		Completed:        completed,
		AlreadyCompleted: completed && was,
	}
	if !completed || was {
		return result, nil
	}

	now := uc.now()
	if info, ok := floorcalc.DDay(sub.ScheduledDate, now); ok && info.IsOverdue {
		result.Late = true
		return result, nil
	}

	grant := &domain.CoinGrant{
		UserID:   userID,
		Source:   domain.GrantSourceSubtask,
		SourceID: subtaskID,
		Amount:   uc.cfg.CoinsPerWin,
	}
	if err := uc.users.GrantCoins(ctx, grant); err != nil {
		// The toggle already landed; losing the grant is logged, not fatal.
		uc.logger.Error("coin grant failed", zap.String("subtask_id", subtaskID), zap.Error(err))
		return result, nil
	}
	result.CoinsAwarded = grant.Amount
	return result, nil
}

func validateRange(schedule *domain.Schedule) error {
	if schedule == nil || schedule.Title == "" {
		return domain.ErrInvalidPayload
	}
	if !schedule.HasDateRange() {
		return nil
	}
	start, okS := floorcalc.ParseDate(schedule.StartDate)
	end, okE := floorcalc.ParseDate(schedule.EndDate)
	if !okS || !okE {
		return domain.ErrInvalidPayload
	}
	if start.After(end) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, schedule *domain.Schedule) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferSchedule(ctx, operation, schedule); err != nil {
		uc.logger.Error("failed to buffer schedule operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("schedule operation buffered", zap.String("operation", operation))
	return true
}
