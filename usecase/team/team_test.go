package team_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/floorida/backend/domain"
	teamUC "github.com/floorida/backend/usecase/team"
)

type fakeTeamRepo struct {
	teams   map[string]*domain.Team
	members map[string]map[string]bool
	floors  map[string]*domain.TeamFloor
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:   map[string]*domain.Team{},
		members: map[string]map[string]bool{},
		floors:  map[string]*domain.TeamFloor{},
	}
}

func (r *fakeTeamRepo) Create(_ context.Context, t *domain.Team, ownerID string) (*domain.Team, error) {
	if t.ID == "" {
		t.ID = "team-" + t.JoinCode
	}
	r.teams[t.ID] = t
	r.members[t.ID] = map[string]bool{ownerID: true}
	return t, nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*domain.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) GetByJoinCode(_ context.Context, code string) (*domain.Team, error) {
	for _, t := range r.teams {
		if t.JoinCode == code {
			return t, nil
		}
	}
	return nil, domain.ErrTeamNotFound
}

func (r *fakeTeamRepo) AddMember(_ context.Context, teamID, userID string) error {
	if r.members[teamID][userID] {
		return domain.ErrAlreadyMember
	}
	r.members[teamID][userID] = true
	return nil
}

func (r *fakeTeamRepo) IsMember(_ context.Context, teamID, userID string) (bool, error) {
	return r.members[teamID][userID], nil
}

func (r *fakeTeamRepo) ListFloors(_ context.Context, teamID string) ([]domain.TeamFloor, error) {
	var out []domain.TeamFloor
	for _, f := range r.floors {
		if f.TeamID == teamID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) GetFloor(_ context.Context, floorID string) (*domain.TeamFloor, error) {
	f, ok := r.floors[floorID]
	if !ok {
		return nil, domain.ErrFloorNotFound
	}
	return f, nil
}

func (r *fakeTeamRepo) CreateFloor(_ context.Context, f *domain.TeamFloor) (*domain.TeamFloor, error) {
	if f.ID == "" {
		f.ID = "floor-1"
	}
	r.floors[f.ID] = f
	return f, nil
}

func (r *fakeTeamRepo) SetFloorCompleted(_ context.Context, floorID string, completed bool, completedAt *time.Time) (bool, error) {
	f, ok := r.floors[floorID]
	if !ok {
		return false, domain.ErrFloorNotFound
	}
	was := f.Completed
	f.Completed = completed
	f.CompletedAt = completedAt
	return was, nil
}

func (r *fakeTeamRepo) BumpLevel(_ context.Context, teamID string, delta int) (int, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return 0, domain.ErrTeamNotFound
	}
	t.Level += delta
	if t.Level < 1 {
		t.Level = 1
	}
	return t.Level, nil
}

type fakeUserRepo struct {
	grants []*domain.CoinGrant
}

func (r *fakeUserRepo) GetByID(context.Context, string) (*domain.User, error) { return nil, nil }
func (r *fakeUserRepo) Upsert(context.Context, *domain.User) error { return nil }
func (r *fakeUserRepo) GrantCoins(_ context.Context, g *domain.CoinGrant) error {
	r.grants = append(r.grants, g)
	return nil
}

type fakeLevelCache struct {
	stored map[string]int
}

func (c *fakeLevelCache) Load(_ context.Context, teamID string) (int, bool) {
	v, ok := c.stored[teamID]
	return v, ok
}

func (c *fakeLevelCache) Store(_ context.Context, teamID string, level int) {
	c.stored[teamID] = level
}

var clock = func() time.Time {
	return time.Date(2025, time.June, 15, 9, 0, 0, 0, time.Local)
}

func setup(t *testing.T) (*teamUC.UseCase, *fakeTeamRepo, *fakeUserRepo, *domain.Team) {
	t.Helper()
	teams := newFakeTeamRepo()
	users := &fakeUserRepo{}
	uc := teamUC.New(teams, users, teamUC.Config{CoinsPerWin: 10}, zap.NewNop()).WithClock(clock)

	team, err := uc.CreateTeam(context.Background(), "owner", "study group")
	require.NoError(t, err)
	return uc, teams, users, team
}

func TestCreateTeam_GeneratesJoinCode(t *testing.T) {
	_, _, _, team := setup(t)
	require.Len(t, team.JoinCode, 6)
	require.Equal(t, 1, team.Level)
}

func TestJoinTeam_ByCode(t *testing.T) {
	uc, teams, _, team := setup(t)
	ctx := context.Background()

	joined, err := uc.JoinTeam(ctx, "u2", team.JoinCode)
	require.NoError(t, err)
	require.Equal(t, team.ID, joined.ID)
	require.True(t, teams.members[team.ID]["u2"])

	_, err = uc.JoinTeam(ctx, "u2", team.JoinCode)
	require.ErrorIs(t, err, domain.ErrAlreadyMember)

	_, err = uc.JoinTeam(ctx, "u3", "NOPE42")
	require.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestCompleteFloor_OnTimeBumpsLevelAndPaysAssignees(t *testing.T) {
	uc, teams, users, team := setup(t)
	ctx := context.Background()

	teams.floors["f1"] = &domain.TeamFloor{
		ID: "f1", TeamID: team.ID, Title: "deploy", DueDate: "2025-06-20",
		Assignees: []domain.Assignee{{UserID: "owner"}, {UserID: "u2"}},
	}

	res, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)

	require.True(t, res.Completed)
	require.False(t, res.AlreadyCompleted)
	require.False(t, res.Late)
	require.Equal(t, 2, res.TeamLevel)
	require.Equal(t, 10, res.CoinsAwarded)
	require.Len(t, users.grants, 2)
}

func TestCompleteFloor_LateBumpsLevelButNoCoins(t *testing.T) {
	uc, teams, users, team := setup(t)
	ctx := context.Background()

	teams.floors["f1"] = &domain.TeamFloor{
		ID: "f1", TeamID: team.ID, Title: "deploy", DueDate: "2025-06-10",
		Assignees: []domain.Assignee{{UserID: "owner"}},
	}

	res, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)

	require.True(t, res.Late)
	require.Equal(t, 2, res.TeamLevel)
	require.Zero(t, res.CoinsAwarded)
	require.Empty(t, users.grants)
}

func TestCompleteFloor_RepeatIsIdempotent(t *testing.T) {
	uc, teams, users, team := setup(t)
	ctx := context.Background()

	teams.floors["f1"] = &domain.TeamFloor{
		ID: "f1", TeamID: team.ID, Title: "deploy", DueDate: "2025-06-20",
		Assignees: []domain.Assignee{{UserID: "owner"}},
	}

	_, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)
	res, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)

	require.True(t, res.AlreadyCompleted)
	require.Zero(t, res.CoinsAwarded)
	require.Equal(t, 2, res.TeamLevel)
	require.Len(t, users.grants, 1)
}

func TestCancelFloor_RevertsLevel(t *testing.T) {
	uc, teams, _, team := setup(t)
	ctx := context.Background()

	teams.floors["f1"] = &domain.TeamFloor{
		ID: "f1", TeamID: team.ID, Title: "deploy", DueDate: "2025-06-20",
	}

	_, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)

	res, err := uc.CancelFloor(ctx, "owner", "f1")
	require.NoError(t, err)
	require.False(t, res.Completed)
	require.Equal(t, 1, res.TeamLevel)

	// Cancelling an already-open floor leaves the level alone.
	res, err = uc.CancelFloor(ctx, "owner", "f1")
	require.NoError(t, err)
	require.Equal(t, 1, res.TeamLevel)
}

func TestCompleteFloor_PersistsLevelForElevator(t *testing.T) {
	uc, teams, _, team := setup(t)
	ctx := context.Background()

	levels := &fakeLevelCache{stored: map[string]int{}}
	uc.WithLevelCache(levels)

	teams.floors["f1"] = &domain.TeamFloor{
		ID: "f1", TeamID: team.ID, Title: "deploy", DueDate: "2025-06-20",
	}

	_, err := uc.CompleteFloor(ctx, "owner", "f1")
	require.NoError(t, err)
	require.Equal(t, 2, levels.stored[team.ID])

	_, err = uc.CancelFloor(ctx, "owner", "f1")
	require.NoError(t, err)
	require.Equal(t, 1, levels.stored[team.ID])
}

func TestBoard_RequiresMembership(t *testing.T) {
	uc, _, _, team := setup(t)
	ctx := context.Background()

	_, err := uc.Board(ctx, team.ID, "stranger")
	require.ErrorIs(t, err, domain.ErrNotMember)

	board, err := uc.Board(ctx, team.ID, "owner")
	require.NoError(t, err)
	require.Equal(t, 1, board.TeamLevel)
}
