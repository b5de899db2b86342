package profile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/ttlcache"
	"github.com/floorida/backend/repository"
	"github.com/floorida/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	buffer usecase.OperationBuffer
	cache  *ttlcache.Cache[*domain.User]
	ttl    time.Duration
	logger *zap.Logger
}

// New builds the profile use case. Reads are memoized for ttl so a page
// burst does not hammer the users table; mutations invalidate the entry.
func New(users repository.UserRepository, buffer usecase.OperationBuffer, cache *ttlcache.Cache[*domain.User], ttl time.Duration, logger *zap.Logger) *UseCase {
	if cache == nil {
		cache = ttlcache.New[*domain.User](nil)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		buffer: buffer,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.cache.GetOrFetch(ctx, userID, uc.ttl, func(ctx context.Context) (*domain.User, error) {
		return uc.users.GetByID(ctx, userID)
	})
}

func (uc *UseCase) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	uc.cache.Invalidate(user.ID)

	if err := uc.users.Upsert(ctx, user); err != nil {
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferProfile(ctx, usecase.OperationUpdate, user); bufErr != nil {
				uc.logger.Error("failed to buffer profile update", zap.Error(bufErr))
				return nil, err
			}
			uc.logger.Warn("profile update buffered due to repository error", zap.Error(err))
			return user, nil
		}
		return nil, err
	}

	uc.cache.Put(user.ID, user)
	return user, nil
}
