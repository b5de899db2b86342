package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
		SELECT id, email, username, role, status, coins, metadata, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var user domain.User
	var metadata []byte

	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.Role, &user.Status,
		&user.Coins, &metadata, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if len(metadata) > 0 {
		_ = json.Unmarshal(metadata, &user.Metadata)
	}

	return &user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO users (id, email, username, role, status, coins, metadata, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET email = EXCLUDED.email,
		username = EXCLUDED.username,
		role = EXCLUDED.role,
		status = EXCLUDED.status,
		metadata = EXCLUDED.metadata,
		updated_at = NOW()
	RETURNING coins, created_at, updated_at;
	`

	metadata := marshalMap(user.Metadata)
	var createdAt, updatedAt time.Time
	var coins int

	if err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.Role,
		user.Status,
		user.Coins,
		metadata,
		nullTime(user.CreatedAt),
	).Scan(&coins, &createdAt, &updatedAt); err != nil {
		return err
	}

	// Coins are never overwritten by a profile upsert; the balance moves
	// only through grants.
	user.Coins = coins
	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func (r *userRepository) GrantCoins(ctx context.Context, grant *domain.CoinGrant) error {
	if grant == nil || grant.UserID == "" || grant.Amount <= 0 {
		return domain.ErrInvalidPayload
	}
	if grant.ID == "" {
		grant.ID = uuid.NewString()
	}
	grant.Touch()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insertGrant = `
	INSERT INTO coin_grants (id, user_id, source, source_id, amount, granted_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, insertGrant,
		grant.ID, grant.UserID, grant.Source, grant.SourceID, grant.Amount, grant.GrantedAt); err != nil {
		return err
	}

	const bumpBalance = `
	UPDATE users SET coins = coins + $2, updated_at = NOW() WHERE id = $1
	`
	tag, err := tx.Exec(ctx, bumpBalance, grant.UserID, grant.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit(ctx)
}
