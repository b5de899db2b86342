package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/floorcalc"
	"github.com/floorida/backend/repository"
	scheduleUC "github.com/floorida/backend/usecase/schedule"
)

type fakeScheduleRepo struct {
	schedules map[string]*domain.Schedule
	subtasks  map[string]*domain.Subtask
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		schedules: map[string]*domain.Schedule{},
		subtasks:  map[string]*domain.Subtask{},
	}
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id string) (*domain.Schedule, error) {
	s, ok := r.schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	return s, nil
}

func (r *fakeScheduleRepo) ListForMonth(_ context.Context, filter repository.ScheduleFilter) ([]domain.Schedule, error) {
	var out []domain.Schedule
	for _, s := range r.schedules {
		if s.UserID == filter.UserID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	r.schedules[s.ID] = s
	return s, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, s *domain.Schedule) error {
	if _, ok := r.schedules[s.ID]; !ok {
		return domain.ErrScheduleNotFound
	}
	r.schedules[s.ID] = s
	return nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.schedules[id]; !ok {
		return domain.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) GetSubtask(_ context.Context, id string) (*domain.Subtask, error) {
	s, ok := r.subtasks[id]
	if !ok {
		return nil, domain.ErrSubtaskNotFound
	}
	return s, nil
}

func (r *fakeScheduleRepo) SetSubtaskCompleted(_ context.Context, id string, completed bool) (bool, error) {
	s, ok := r.subtasks[id]
	if !ok {
		return false, domain.ErrSubtaskNotFound
	}
	was := s.Completed
	s.Completed = completed
	return was, nil
}

func (r *fakeScheduleRepo) CountDoneSubtasks(_ context.Context, userID string) (int, error) {
	count := 0
	for _, s := range r.subtasks {
		if s.Completed {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users  map[string]*domain.User
	grants []*domain.CoinGrant
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*domain.User{}} }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GrantCoins(_ context.Context, g *domain.CoinGrant) error {
	r.grants = append(r.grants, g)
	if u, ok := r.users[g.UserID]; ok {
		u.Coins += g.Amount
	}
	return nil
}

var clock = func() time.Time {
	return time.Date(2025, time.June, 15, 9, 0, 0, 0, time.Local)
}

func newUseCase(schedules *fakeScheduleRepo, users *fakeUserRepo) *scheduleUC.UseCase {
	return scheduleUC.New(schedules, users, nil,
		scheduleUC.Config{MaxFloor: 999, CoinsPerWin: 10}, zap.NewNop()).WithClock(clock)
}

func TestToggleSubtask_OnTimeCompletionAwardsCoins(t *testing.T) {
	schedules := newFakeScheduleRepo()
	users := newFakeUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	schedules.subtasks["s1"] = &domain.Subtask{ID: "s1", ScheduledDate: "2025-06-20"}

	uc := newUseCase(schedules, users)
	res, err := uc.ToggleSubtask(context.Background(), "u1", "s1")
	require.NoError(t, err)

	require.True(t, res.Completed)
	require.False(t, res.Late)
	require.Equal(t, 10, res.CoinsAwarded)
	require.Equal(t, 10, users.users["u1"].Coins)
	require.True(t, floorcalc.ShouldReward(res, "2025-06-20", clock()))
}

func TestToggleSubtask_LateCompletionKeepsCoins(t *testing.T) {
	schedules := newFakeScheduleRepo()
	users := newFakeUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	schedules.subtasks["s1"] = &domain.Subtask{ID: "s1", ScheduledDate: "2025-06-10"}

	uc := newUseCase(schedules, users)
	res, err := uc.ToggleSubtask(context.Background(), "u1", "s1")
	require.NoError(t, err)

	require.True(t, res.Completed)
	require.True(t, res.Late)
	require.Zero(t, res.CoinsAwarded)
	require.Empty(t, users.grants)
	require.False(t, floorcalc.ShouldReward(res, "2025-06-10", clock()))
}

func TestToggleSubtask_RepeatCompletionDoesNotReaward(t *testing.T) {
	schedules := newFakeScheduleRepo()
	users := newFakeUserRepo()
	users.users["u1"] = &domain.User{ID: "u1"}
	schedules.subtasks["s1"] = &domain.Subtask{ID: "s1", ScheduledDate: "2025-06-20"}

	uc := newUseCase(schedules, users)
	ctx := context.Background()

	_, err := uc.ToggleSubtask(ctx, "u1", "s1")
	require.NoError(t, err)
	res, err := uc.ToggleSubtask(ctx, "u1", "s1") // un-complete
	require.NoError(t, err)
	require.False(t, res.Completed)
	require.Zero(t, res.CoinsAwarded)

	require.Len(t, users.grants, 1)
}

func TestMonthView_LevelAndPlannedDays(t *testing.T) {
	schedules := newFakeScheduleRepo()
	users := newFakeUserRepo()
	schedules.schedules["sch1"] = &domain.Schedule{
		ID: "sch1", UserID: "u1", Title: "exam prep",
		StartDate: "2025-01-28", EndDate: "2025-02-03",
	}
	schedules.subtasks["a"] = &domain.Subtask{ID: "a", Completed: true}
	schedules.subtasks["b"] = &domain.Subtask{ID: "b", Completed: true}
	schedules.subtasks["c"] = &domain.Subtask{ID: "c"}

	uc := newUseCase(schedules, users)
	view, err := uc.MonthView(context.Background(), "u1", 2025, time.January)
	require.NoError(t, err)

	require.Equal(t, 0, len(view.Matrix)%7)
	require.Len(t, view.Schedules, 1)
	require.Equal(t, []int{28, 29, 30, 31}, view.Schedules[0].PlannedDays)

	require.Equal(t, 2, view.DoneCount)
	require.Equal(t, 3, view.Level)
	require.Equal(t, "image20", view.Zone.Name)
}

func TestCreateSchedule_RejectsInvertedRange(t *testing.T) {
	uc := newUseCase(newFakeScheduleRepo(), newFakeUserRepo())
	_, err := uc.CreateSchedule(context.Background(), &domain.Schedule{
		ID: "x", UserID: "u1", Title: "bad",
		StartDate: "2025-06-20", EndDate: "2025-06-10",
	})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
}
