package floorcalc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/floorida/backend/pkg/floorcalc"
)

func TestPaginate_Basics(t *testing.T) {
	list := []int{1, 2, 3, 4, 5, 6, 7}

	page := floorcalc.Paginate(list, 0, 3)
	require.Equal(t, []int{1, 2, 3}, page.Items)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 0, page.PageIndex)

	page = floorcalc.Paginate(list, 2, 3)
	require.Equal(t, []int{7}, page.Items)
	require.Equal(t, 2, page.PageIndex)
}

func TestPaginate_ClampsAfterShrink(t *testing.T) {
	// On the last page (index 2) of 7 items, one item is deleted. The stale
	// index must clamp to the new last page, never an empty slice.
	shrunk := []int{1, 2, 3, 4, 5, 6}
	page := floorcalc.Paginate(shrunk, 2, 3)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 1, page.PageIndex)
	require.Equal(t, []int{4, 5, 6}, page.Items)
}

func TestPaginate_NegativeIndexClampsToFirstPage(t *testing.T) {
	// A hostile or buggy caller can hand a negative index straight from a
	// query string; it must clamp to page 0, not slice out of range.
	page := floorcalc.Paginate([]int{1, 2, 3, 4, 5}, -1, 20)
	require.Equal(t, []int{1, 2, 3, 4, 5}, page.Items)
	require.Equal(t, 1, page.TotalPages)
	require.Equal(t, 0, page.PageIndex)

	page = floorcalc.Paginate([]int{1, 2, 3, 4, 5}, -7, 2)
	require.Equal(t, []int{1, 2}, page.Items)
	require.Equal(t, 0, page.PageIndex)
}

func TestPaginate_EmptyList(t *testing.T) {
	page := floorcalc.Paginate([]string{}, 4, 10)
	require.Empty(t, page.Items)
	require.Equal(t, 0, page.TotalPages)
	require.Equal(t, 0, page.PageIndex)
}
