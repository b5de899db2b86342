// Package elevator reconciles a view's displayed floor level with the
// authoritative server level, playing the door animation sequence on level
// changes. Timing is data and the scheduler is injected, so the sequence is
// fully testable without real timers.
package elevator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State of one reconciler instance.
type State int

const (
	Uninitialized State = iota
	Synced
	Animating
)

// Timings are the door sequence durations: close, ride, open.
type Timings struct {
	DoorClose time.Duration
	Move      time.Duration
	DoorOpen  time.Duration
}

// DefaultTimings mirror the reference door choreography.
var DefaultTimings = Timings{
	DoorClose: 600 * time.Millisecond,
	Move:      900 * time.Millisecond,
	DoorOpen:  600 * time.Millisecond,
}

// Scheduler defers a callback. Production code uses TimerScheduler; tests
// inject a manual one.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// TimerScheduler runs callbacks on real timers.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// LevelCache persists the last applied level per team so a reload can paint
// immediately before the server answers.
type LevelCache interface {
	Load(ctx context.Context, teamID string) (int, bool)
	Store(ctx context.Context, teamID string, level int)
}

// Hooks observe the door sequence. Nil funcs are skipped.
type Hooks struct {
	DoorsClosed  func()
	FloorChanged func(level int)
	DoorsOpened  func(level int)
}

// Reconciler is the per-team state machine
// Uninitialized -> Synced(level) -> Animating(from,to) -> Synced(to).
type Reconciler struct {
	teamID  string
	timings Timings
	sched   Scheduler
	cache   LevelCache
	hooks   Hooks
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	primed  bool
	level   int
	target  int
	pending int
	queued  bool
}

func NewReconciler(teamID string, timings Timings, sched Scheduler, cache LevelCache, hooks Hooks, logger *zap.Logger) *Reconciler {
	if sched == nil {
		sched = TimerScheduler{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		teamID:  teamID,
		timings: timings,
		sched:   sched,
		cache:   cache,
		hooks:   hooks,
		logger:  logger,
	}
}

// Prime paints from the cached level, if any, without animating. It only
// has an effect before the first Apply.
func (r *Reconciler) Prime(ctx context.Context) {
	if r.cache == nil {
		return
	}
	level, ok := r.cache.Load(ctx, r.teamID)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Uninitialized {
		return
	}
	r.level = level
	r.state = Synced
	r.primed = true
	r.notifyFloor(level)
}

// Apply reconciles the server-reported level. The first report (including
// right after a cache-primed reload) applies instantly; an unchanged level
// is a no-op; a change runs the door sequence; reports arriving mid-ride
// coalesce to the newest target.
func (r *Reconciler) Apply(ctx context.Context, level int) {
	r.mu.Lock()

	switch r.state {
	case Uninitialized:
		r.level = level
		r.state = Synced
		r.store(ctx, level)
		r.notifyFloor(level)
		r.mu.Unlock()
		return

	case Animating:
		if level == r.target {
			r.mu.Unlock()
			return
		}
		r.pending = level
		r.queued = true
		r.mu.Unlock()
		return

	case Synced:
		if r.primed {
			// First authoritative report after a cache-primed reload:
			// reconcile silently, same as a first load.
			r.primed = false
			if level != r.level {
				r.level = level
				r.store(ctx, level)
				r.notifyFloor(level)
			}
			r.mu.Unlock()
			return
		}
		if level == r.level {
			r.mu.Unlock()
			return
		}
		r.startRide(ctx, level)
		r.mu.Unlock()
	}
}

// Level returns the currently displayed floor.
func (r *Reconciler) Level() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.level
}

// State reports the machine state.
func (r *Reconciler) CurrentState() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// startRide requires r.mu held.
func (r *Reconciler) startRide(ctx context.Context, to int) {
	from := r.level
	r.state = Animating
	r.target = to
	r.logger.Debug("elevator ride started",
		zap.String("team_id", r.teamID), zap.Int("from", from), zap.Int("to", to))

	r.sched.After(r.timings.DoorClose, func() {
		r.mu.Lock()
		if r.hooks.DoorsClosed != nil {
			r.hooks.DoorsClosed()
		}
		r.level = r.target
		r.notifyFloor(r.level)
		r.mu.Unlock()

		r.sched.After(r.timings.Move, func() {
			r.sched.After(r.timings.DoorOpen, func() {
				r.finishRide(ctx)
			})
		})
	})
}

func (r *Reconciler) finishRide(ctx context.Context) {
	r.mu.Lock()
	r.state = Synced
	r.store(ctx, r.level)
	if r.hooks.DoorsOpened != nil {
		r.hooks.DoorsOpened(r.level)
	}
	if r.queued {
		next := r.pending
		r.queued = false
		if next != r.level {
			r.startRide(ctx, next)
		}
	}
	r.mu.Unlock()
}

// store requires r.mu held.
func (r *Reconciler) store(ctx context.Context, level int) {
	if r.cache != nil {
		r.cache.Store(ctx, r.teamID, level)
	}
}

// notifyFloor requires r.mu held.
func (r *Reconciler) notifyFloor(level int) {
	if r.hooks.FloorChanged != nil {
		r.hooks.FloorChanged(level)
	}
}
