package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/repository"
)

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a Postgres-backed ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) repository.ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	const query = `
	SELECT id, user_id, title, color, start_date, end_date, created_at, updated_at
	FROM schedules
	WHERE id = $1
	`
	schedule, err := scanSchedule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachSubtasks(ctx, []*domain.Schedule{schedule}); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) ListForMonth(ctx context.Context, filter repository.ScheduleFilter) ([]domain.Schedule, error) {
	monthStart := time.Date(filter.Year, filter.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	const query = `
	SELECT id, user_id, title, color, start_date, end_date, created_at, updated_at
	FROM schedules
	WHERE user_id = $1
	  AND start_date IS NOT NULL AND end_date IS NOT NULL
	  AND start_date <= $3 AND end_date >= $2
	ORDER BY start_date, created_at
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.UserID, monthStart, monthEnd, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSubtasks(ctx, rowRefs(schedules)); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	if schedule == nil {
		return nil, domain.ErrInvalidPayload
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `
	INSERT INTO schedules (id, user_id, title, color, start_date, end_date)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`
	if err := tx.QueryRow(ctx, query,
		schedule.ID,
		schedule.UserID,
		schedule.Title,
		schedule.Color,
		nullDay(schedule.StartDate),
		nullDay(schedule.EndDate),
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
		return nil, err
	}

	for i := range schedule.Subtasks {
		sub := &schedule.Subtasks[i]
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		sub.ScheduleID = schedule.ID

		const insertSub = `
		INSERT INTO subtasks (id, schedule_id, scheduled_date, title, completed)
		VALUES ($1, $2, $3, $4, $5)
		`
		if _, err := tx.Exec(ctx, insertSub,
			sub.ID, sub.ScheduleID, nullDay(sub.ScheduledDate), sub.Title, sub.Completed); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	if schedule == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE schedules
	SET title = $2,
		color = $3,
		start_date = $4,
		end_date = $5,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		schedule.ID,
		schedule.Title,
		schedule.Color,
		nullDay(schedule.StartDate),
		nullDay(schedule.EndDate),
	).Scan(&schedule.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrScheduleNotFound
		}
		return err
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedules WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func (r *scheduleRepository) GetSubtask(ctx context.Context, id string) (*domain.Subtask, error) {
	const query = `
	SELECT id, schedule_id, scheduled_date, title, completed
	FROM subtasks
	WHERE id = $1
	`
	return scanSubtask(r.pool.QueryRow(ctx, query, id))
}

func (r *scheduleRepository) SetSubtaskCompleted(ctx context.Context, id string, completed bool) (bool, error) {
	const query = `
	UPDATE subtasks AS s
	SET completed = $2
	FROM (SELECT completed AS was FROM subtasks WHERE id = $1 FOR UPDATE) prev
	WHERE s.id = $1
	RETURNING prev.was
	`
	var was bool
	if err := r.pool.QueryRow(ctx, query, id, completed).Scan(&was); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrSubtaskNotFound
		}
		return false, err
	}
	return was, nil
}

func (r *scheduleRepository) CountDoneSubtasks(ctx context.Context, userID string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM subtasks s
	JOIN schedules sch ON sch.id = s.schedule_id
	WHERE sch.user_id = $1 AND s.completed
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *scheduleRepository) attachSubtasks(ctx context.Context, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	ids := make([]string, 0, len(schedules))
	byID := make(map[string]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Subtasks = []domain.Subtask{}
	}

	const query = `
	SELECT id, schedule_id, scheduled_date, title, completed
	FROM subtasks
	WHERE schedule_id = ANY($1)
	ORDER BY scheduled_date, id
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		sub, err := scanSubtask(rows)
		if err != nil {
			return err
		}
		if owner, ok := byID[sub.ScheduleID]; ok {
			owner.Subtasks = append(owner.Subtasks, *sub)
		}
	}
	return rows.Err()
}

func scanSchedule(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var start, end *time.Time

	if err := row.Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&schedule.Color,
		&start,
		&end,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}

	schedule.StartDate = dayString(start)
	schedule.EndDate = dayString(end)
	return &schedule, nil
}

func scanSubtask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Subtask, error) {
	var sub domain.Subtask
	var scheduled *time.Time

	if err := row.Scan(&sub.ID, &sub.ScheduleID, &scheduled, &sub.Title, &sub.Completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubtaskNotFound
		}
		return nil, err
	}

	sub.ScheduledDate = dayString(scheduled)
	return &sub, nil
}
