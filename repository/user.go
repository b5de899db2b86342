package repository

import (
	"context"

	"github.com/floorida/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
	// GrantCoins appends the grant and bumps the user's balance atomically.
	GrantCoins(ctx context.Context, grant *domain.CoinGrant) error
}
