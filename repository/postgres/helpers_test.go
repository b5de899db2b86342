package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/domain"
)

func TestRowRefs_SurviveAppendReallocation(t *testing.T) {
	// Grow the slice one element at a time so the backing array reallocates
	// several times, the way a scan loop does.
	var floors []domain.TeamFloor
	for _, id := range []string{"f1", "f2", "f3", "f4", "f5"} {
		floors = append(floors, domain.TeamFloor{ID: id})
	}

	refs := rowRefs(floors)
	require.Len(t, refs, len(floors))

	// Writes through the refs must land in the slice the caller keeps.
	for _, f := range refs {
		f.Assignees = append(f.Assignees, domain.Assignee{UserID: "u-" + f.ID})
	}
	for i, f := range floors {
		require.Len(t, f.Assignees, 1, "floors[%d] (%s) lost its attachment", i, f.ID)
		require.Equal(t, "u-"+f.ID, f.Assignees[0].UserID)
	}
}

func TestRowRefs_EmptySlice(t *testing.T) {
	require.Empty(t, rowRefs([]domain.Schedule(nil)))
}
