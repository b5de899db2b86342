// Package team implements teamplace: team creation with join codes,
// membership, and floor completion driving the shared level.
package team

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/floorida/backend/domain"
	"github.com/floorida/backend/pkg/elevator"
	"github.com/floorida/backend/pkg/floorcalc"
	"github.com/floorida/backend/repository"
)

// Config tunes team game behavior.
type Config struct {
	CoinsPerWin int
}

type UseCase struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	levels elevator.LevelCache
	cfg    Config
	now    func() time.Time
	logger *zap.Logger
}

func New(teams repository.TeamRepository, users repository.UserRepository, cfg Config, logger *zap.Logger) *UseCase {
	if cfg.CoinsPerWin <= 0 {
		cfg.CoinsPerWin = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		teams:  teams,
		users:  users,
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// WithLevelCache persists every applied team level, letting a reloading
// client paint the elevator before the board arrives.
func (uc *UseCase) WithLevelCache(levels elevator.LevelCache) *UseCase {
	uc.levels = levels
	return uc
}

// WithClock overrides the time source for tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// CreateTeam creates a team with a fresh join code and the creator as first
// member. A join-code collision (unique constraint) retries with a new code.
func (uc *UseCase) CreateTeam(ctx context.Context, ownerID, name string) (*domain.Team, error) {
	for attempt := 0; attempt < 3; attempt++ {
		team := &domain.Team{
			Name:     name,
			JoinCode: newJoinCode(),
			Level:    1,
		}
		created, err := uc.teams.Create(ctx, team, ownerID)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		team.ID = ""
	}
	return nil, domain.WrapError(domain.ErrCodeInternal, "could not allocate a join code", nil)
}

// JoinTeam adds the user to the team behind the invite code.
func (uc *UseCase) JoinTeam(ctx context.Context, userID, joinCode string) (*domain.Team, error) {
	team, err := uc.teams.GetByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, err
	}
	if err := uc.teams.AddMember(ctx, team.ID, userID); err != nil {
		return nil, err
	}
	return team, nil
}

// Board returns the team's floors together with the authoritative level.
func (uc *UseCase) Board(ctx context.Context, teamID, userID string) (*domain.TeamBoard, error) {
	if err := uc.requireMember(ctx, teamID, userID); err != nil {
		return nil, err
	}

	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	floors, err := uc.teams.ListFloors(ctx, teamID)
	if err != nil {
		return nil, err
	}
	uc.cacheLevel(ctx, teamID, team.Level)
	return &domain.TeamBoard{TeamLevel: team.Level, Floors: floors}, nil
}

// CreateFloor adds a floor to the team board.
func (uc *UseCase) CreateFloor(ctx context.Context, userID string, floor *domain.TeamFloor) (*domain.TeamFloor, error) {
	if floor == nil || floor.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.requireMember(ctx, floor.TeamID, userID); err != nil {
		return nil, err
	}
	return uc.teams.CreateFloor(ctx, floor)
}

// CompleteFloor marks a floor done. The first on-time completion bumps the
// team level and grants coins to every assignee; a repeat completion or a
// late one changes nothing beyond the flag.
func (uc *UseCase) CompleteFloor(ctx context.Context, userID, floorID string) (floorcalc.CompletionResult, error) {
	floor, err := uc.teams.GetFloor(ctx, floorID)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}
	if err := uc.requireMember(ctx, floor.TeamID, userID); err != nil {
		return floorcalc.CompletionResult{}, err
	}

	now := uc.now()
	was, err := uc.teams.SetFloorCompleted(ctx, floorID, true, &now)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}

	team, err := uc.teams.GetByID(ctx, floor.TeamID)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}

	result := floorcalc.CompletionResult{
		Completed:        true,
		TeamLevel:        team.Level,
		AlreadyCompleted: was,
	}
	if was {
		return result, nil
	}

	// First completion always moves the elevator; lateness only gates the
	// coin reward, so cancel can decrement symmetrically.
	level, err := uc.teams.BumpLevel(ctx, floor.TeamID, 1)
	if err != nil {
		return result, err
	}
	result.TeamLevel = level
	uc.cacheLevel(ctx, floor.TeamID, level)

	if info, ok := floorcalc.DDay(floor.DueDate, now); ok && info.IsOverdue {
		result.Late = true
		return result, nil
	}

	for _, a := range floor.Assignees {
		grant := &domain.CoinGrant{
			UserID:   a.UserID,
			Source:   domain.GrantSourceTeamFloor,
			SourceID: floorID,
			Amount:   uc.cfg.CoinsPerWin,
		}
		if err := uc.users.GrantCoins(ctx, grant); err != nil {
			uc.logger.Error("assignee coin grant failed",
				zap.String("floor_id", floorID), zap.String("user_id", a.UserID), zap.Error(err))
		}
	}
	result.CoinsAwarded = uc.cfg.CoinsPerWin

	return result, nil
}

// CancelFloor reverts a completion; a previously-completed floor also drops
// the team level back down. Awarded coins are intentionally kept.
func (uc *UseCase) CancelFloor(ctx context.Context, userID, floorID string) (floorcalc.CompletionResult, error) {
	floor, err := uc.teams.GetFloor(ctx, floorID)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}
	if err := uc.requireMember(ctx, floor.TeamID, userID); err != nil {
		return floorcalc.CompletionResult{}, err
	}

	was, err := uc.teams.SetFloorCompleted(ctx, floorID, false, nil)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}

	team, err := uc.teams.GetByID(ctx, floor.TeamID)
	if err != nil {
		return floorcalc.CompletionResult{}, err
	}
	level := team.Level

	if was {
		level, err = uc.teams.BumpLevel(ctx, floor.TeamID, -1)
		if err != nil {
			return floorcalc.CompletionResult{}, err
		}
		uc.cacheLevel(ctx, floor.TeamID, level)
	}
	return floorcalc.CompletionResult{Completed: false, TeamLevel: level}, nil
}

func (uc *UseCase) cacheLevel(ctx context.Context, teamID string, level int) {
	if uc.levels != nil {
		uc.levels.Store(ctx, teamID, level)
	}
}

func (uc *UseCase) requireMember(ctx context.Context, teamID, userID string) error {
	ok, err := uc.teams.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotMember
	}
	return nil
}

// joinCodeAlphabet avoids vowels and look-alike glyphs so codes read
// cleanly off a screen.
const joinCodeAlphabet = "BCDFGHJKMNPQRSTVWXYZ23456789"

func newJoinCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(buf)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
