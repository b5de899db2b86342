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

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository returns a Postgres-backed TeamRepository.
func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team, ownerID string) (*domain.Team, error) {
	if team == nil || team.Name == "" || ownerID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	if team.Level < 1 {
		team.Level = 1
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertTeam = `
	INSERT INTO teams (id, name, join_code, level)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insertTeam,
		team.ID, team.Name, team.JoinCode, team.Level).Scan(&team.CreatedAt); err != nil {
		return nil, err
	}

	const insertOwner = `
	INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)
	`
	if _, err := tx.Exec(ctx, insertOwner, team.ID, ownerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return team, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	const query = `
	SELECT id, name, join_code, level, created_at FROM teams WHERE id = $1
	`
	return scanTeam(r.pool.QueryRow(ctx, query, id))
}

func (r *teamRepository) GetByJoinCode(ctx context.Context, code string) (*domain.Team, error) {
	const query = `
	SELECT id, name, join_code, level, created_at FROM teams WHERE join_code = $1
	`
	return scanTeam(r.pool.QueryRow(ctx, query, code))
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	const query = `
	INSERT INTO team_members (team_id, user_id)
	VALUES ($1, $2)
	ON CONFLICT DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, teamID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyMember
	}
	return nil
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	const query = `
	SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)
	`
	var ok bool
	if err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *teamRepository) ListFloors(ctx context.Context, teamID string) ([]domain.TeamFloor, error) {
	const query = `
	SELECT id, team_id, title, due_date, completed, completed_at, created_at
	FROM team_floors
	WHERE team_id = $1
	ORDER BY due_date NULLS LAST, created_at
	`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var floors []domain.TeamFloor
	for rows.Next() {
		floor, err := scanFloor(rows)
		if err != nil {
			return nil, err
		}
		floors = append(floors, *floor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAssignees(ctx, rowRefs(floors)); err != nil {
		return nil, err
	}
	return floors, nil
}

func (r *teamRepository) GetFloor(ctx context.Context, floorID string) (*domain.TeamFloor, error) {
	const query = `
	SELECT id, team_id, title, due_date, completed, completed_at, created_at
	FROM team_floors
	WHERE id = $1
	`
	floor, err := scanFloor(r.pool.QueryRow(ctx, query, floorID))
	if err != nil {
		return nil, err
	}
	if err := r.attachAssignees(ctx, []*domain.TeamFloor{floor}); err != nil {
		return nil, err
	}
	return floor, nil
}

func (r *teamRepository) CreateFloor(ctx context.Context, floor *domain.TeamFloor) (*domain.TeamFloor, error) {
	if floor == nil || floor.TeamID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if floor.ID == "" {
		floor.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const insertFloor = `
	INSERT INTO team_floors (id, team_id, title, due_date, completed)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	if err := tx.QueryRow(ctx, insertFloor,
		floor.ID, floor.TeamID, floor.Title, nullDay(floor.DueDate), floor.Completed,
	).Scan(&floor.CreatedAt); err != nil {
		return nil, err
	}

	for _, a := range floor.Assignees {
		const insertAssignee = `
		INSERT INTO floor_assignees (floor_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertAssignee, floor.ID, a.UserID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return floor, nil
}

func (r *teamRepository) SetFloorCompleted(ctx context.Context, floorID string, completed bool, completedAt *time.Time) (bool, error) {
	const query = `
	UPDATE team_floors AS f
	SET completed = $2, completed_at = $3
	FROM (SELECT completed AS was FROM team_floors WHERE id = $1 FOR UPDATE) prev
	WHERE f.id = $1
	RETURNING prev.was
	`
	var at interface{}
	if completedAt != nil {
		at = *completedAt
	}

	var was bool
	if err := r.pool.QueryRow(ctx, query, floorID, completed, at).Scan(&was); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrFloorNotFound
		}
		return false, err
	}
	return was, nil
}

func (r *teamRepository) BumpLevel(ctx context.Context, teamID string, delta int) (int, error) {
	const query = `
	UPDATE teams
	SET level = GREATEST(1, level + $2)
	WHERE id = $1
	RETURNING level
	`
	var level int
	if err := r.pool.QueryRow(ctx, query, teamID, delta).Scan(&level); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrTeamNotFound
		}
		return 0, err
	}
	return level, nil
}

func (r *teamRepository) attachAssignees(ctx context.Context, floors []*domain.TeamFloor) error {
	if len(floors) == 0 {
		return nil
	}

	ids := make([]string, 0, len(floors))
	byID := make(map[string]*domain.TeamFloor, len(floors))
	for _, f := range floors {
		ids = append(ids, f.ID)
		byID[f.ID] = f
		f.Assignees = []domain.Assignee{}
	}

	const query = `
	SELECT fa.floor_id, fa.user_id, u.username
	FROM floor_assignees fa
	JOIN users u ON u.id = fa.user_id
	WHERE fa.floor_id = ANY($1)
	ORDER BY u.username
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var floorID string
		var a domain.Assignee
		if err := rows.Scan(&floorID, &a.UserID, &a.Username); err != nil {
			return err
		}
		if owner, ok := byID[floorID]; ok {
			owner.Assignees = append(owner.Assignees, a)
		}
	}
	return rows.Err()
}

func scanTeam(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Team, error) {
	var team domain.Team
	if err := row.Scan(&team.ID, &team.Name, &team.JoinCode, &team.Level, &team.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func scanFloor(row interface {
	Scan(dest ...interface{}) error
}) (*domain.TeamFloor, error) {
	var floor domain.TeamFloor
	var due *time.Time

	if err := row.Scan(
		&floor.ID,
		&floor.TeamID,
		&floor.Title,
		&due,
		&floor.Completed,
		&floor.CompletedAt,
		&floor.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFloorNotFound
		}
		return nil, err
	}

	floor.DueDate = dayString(due)
	return &floor, nil
}
