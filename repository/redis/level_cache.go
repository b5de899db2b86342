package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/floorida/backend/pkg/elevator"
)

// LevelCache persists the last applied floor level per team so a reload can
// paint the elevator immediately before the authoritative value arrives.
type LevelCache struct {
	client *redislib.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewLevelCache creates the cache; entries expire after ttl so a long-dead
// team does not pin stale keys forever.
func NewLevelCache(client *redislib.Client, ttl time.Duration, logger *zap.Logger) *LevelCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LevelCache{client: client, ttl: ttl, logger: logger}
}

func (c *LevelCache) Load(ctx context.Context, teamID string) (int, bool) {
	raw, err := c.client.Get(ctx, c.key(teamID)).Result()
	if err != nil {
		if err != redislib.Nil {
			c.logger.Warn("level cache read failed", zap.String("team_id", teamID), zap.Error(err))
		}
		return 0, false
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return level, true
}

func (c *LevelCache) Store(ctx context.Context, teamID string, level int) {
	if err := c.client.Set(ctx, c.key(teamID), strconv.Itoa(level), c.ttl).Err(); err != nil {
		c.logger.Warn("level cache write failed", zap.String("team_id", teamID), zap.Error(err))
	}
}

func (c *LevelCache) key(teamID string) string {
	return fmt.Sprintf("team:%s:floor_level", teamID)
}

var _ elevator.LevelCache = (*LevelCache)(nil)
