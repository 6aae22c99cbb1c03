package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	req := NormalizePage(0, 0)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 20, req.Limit)

	req = NormalizePage(-3, 500)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 100, req.Limit)

	req = NormalizePage(4, 25)
	assert.Equal(t, 75, req.Offset())
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"exact multiple", 40, 1, 10, 4, true, false},
		{"remainder rounds up", 41, 1, 10, 5, true, false},
		{"last page", 41, 5, 10, 5, false, true},
		{"middle page", 41, 3, 10, 5, true, true},
		{"empty set", 0, 1, 10, 0, false, false},
		{"single item", 1, 1, 10, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, NormalizePage(tc.page, tc.limit))
			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.total, p.TotalItems)
			assert.Equal(t, tc.page, p.CurrentPage)
			assert.Equal(t, tc.limit, p.ItemsPerPage)
			assert.Equal(t, tc.hasNext, p.HasNext)
			assert.Equal(t, tc.hasPrev, p.HasPrev)
		})
	}
}

func TestSlicePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, SlicePage(items, NormalizePage(1, 3)))
	assert.Equal(t, []int{4, 5, 6}, SlicePage(items, NormalizePage(2, 3)))
	assert.Equal(t, []int{7}, SlicePage(items, NormalizePage(3, 3)))
	assert.Empty(t, SlicePage(items, NormalizePage(4, 3)))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("ord-12", "ORD-12345", "other"))
	assert.True(t, ContainsFold("ALICE", "alice@example.com"))
	assert.True(t, ContainsFold("  ", "anything"))
	assert.False(t, ContainsFold("bob", "alice", "carol"))
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
}
