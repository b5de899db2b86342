package elevator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/floorida/backend/pkg/elevator"
)

// queueScheduler collects callbacks and runs them only when drained, so
// tests step through the door sequence deterministically.
type queueScheduler struct {
	queue []func()
}

func (s *queueScheduler) After(_ time.Duration, fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *queueScheduler) drain() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

type fakeCache struct {
	levels map[string]int
}

func newFakeCache() *fakeCache { return &fakeCache{levels: map[string]int{}} }

func (c *fakeCache) Load(_ context.Context, teamID string) (int, bool) {
	level, ok := c.levels[teamID]
	return level, ok
}

func (c *fakeCache) Store(_ context.Context, teamID string, level int) {
	c.levels[teamID] = level
}

func newReconciler(sched elevator.Scheduler, cache elevator.LevelCache, rides *int) *elevator.Reconciler {
	hooks := elevator.Hooks{}
	if rides != nil {
		hooks.DoorsClosed = func() { *rides++ }
	}
	return elevator.NewReconciler("team-1", elevator.DefaultTimings, sched, cache, hooks, zap.NewNop())
}

func TestFirstLoadAppliesWithoutAnimation(t *testing.T) {
	sched := &queueScheduler{}
	rides := 0
	r := newReconciler(sched, newFakeCache(), &rides)

	r.Apply(context.Background(), 7)

	require.Equal(t, 7, r.Level())
	require.Equal(t, elevator.Synced, r.CurrentState())
	require.Empty(t, sched.queue)
	require.Zero(t, rides)
}

func TestSameLevelIsNoOp(t *testing.T) {
	sched := &queueScheduler{}
	rides := 0
	r := newReconciler(sched, newFakeCache(), &rides)
	ctx := context.Background()

	r.Apply(ctx, 3)
	r.Apply(ctx, 4)
	sched.drain()
	require.Equal(t, 1, rides)

	// Reporting the settled level again must not replay the animation.
	r.Apply(ctx, 4)
	sched.drain()
	require.Equal(t, 1, rides)
	require.Equal(t, 4, r.Level())
}

func TestLevelChangeRunsDoorSequence(t *testing.T) {
	sched := &queueScheduler{}
	r := newReconciler(sched, newFakeCache(), nil)
	ctx := context.Background()

	r.Apply(ctx, 1)
	r.Apply(ctx, 5)
	require.Equal(t, elevator.Animating, r.CurrentState())
	require.Equal(t, 1, r.Level())

	sched.drain()
	require.Equal(t, elevator.Synced, r.CurrentState())
	require.Equal(t, 5, r.Level())
}

func TestMidRideUpdatesCoalesceToNewestTarget(t *testing.T) {
	sched := &queueScheduler{}
	rides := 0
	r := newReconciler(sched, newFakeCache(), &rides)
	ctx := context.Background()

	r.Apply(ctx, 1)
	r.Apply(ctx, 2)
	// Two more reports land while the doors are closing.
	r.Apply(ctx, 3)
	r.Apply(ctx, 6)

	sched.drain()
	require.Equal(t, 6, r.Level())
	require.Equal(t, elevator.Synced, r.CurrentState())
	// First ride to 2, one follow-up ride straight to 6.
	require.Equal(t, 2, rides)
}

func TestCachePrimedReloadReconcilesSilently(t *testing.T) {
	cache := newFakeCache()
	cache.levels["team-1"] = 9

	sched := &queueScheduler{}
	rides := 0
	r := newReconciler(sched, cache, &rides)
	ctx := context.Background()

	r.Prime(ctx)
	require.Equal(t, 9, r.Level())

	// Authoritative value differs from the cached paint: adopt it without
	// a door sequence, like a first load.
	r.Apply(ctx, 11)
	require.Equal(t, 11, r.Level())
	require.Zero(t, rides)
	require.Equal(t, 11, cache.levels["team-1"])

	// Next change animates normally.
	r.Apply(ctx, 12)
	sched.drain()
	require.Equal(t, 1, rides)
}

func TestSettledLevelPersistsToCache(t *testing.T) {
	cache := newFakeCache()
	sched := &queueScheduler{}
	r := newReconciler(sched, cache, nil)
	ctx := context.Background()

	r.Apply(ctx, 2)
	r.Apply(ctx, 8)
	sched.drain()

	require.Equal(t, 8, cache.levels["team-1"])
}
