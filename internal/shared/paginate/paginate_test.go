package paginate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClampsInputs(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults pass through", 1, 20, 1, 20},
		{"zero page clamps to 1", 0, 20, 1, 20},
		{"negative page clamps to 1", -5, 20, 1, 20},
		{"zero page size clamps to 1", 1, 0, 1, 1},
		{"oversized page size capped at 100", 1, 500, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPageSize, p.PageSize)
		})
	}
}

func TestOffsetAndLimit(t *testing.T) {
	p := New(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())

	p = New(1, 25)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 25, p.Limit())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{-1, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{100, 100, 1},
		{101, 100, 2},
		{7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("total=%d size=%d", tt.total, tt.pageSize), func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
		})
	}
}

// ceil invariant over a range of totals and sizes
func TestTotalPagesInvariant(t *testing.T) {
	for total := 0; total <= 250; total++ {
		for pageSize := 1; pageSize <= 30; pageSize++ {
			got := TotalPages(total, pageSize)
			if total == 0 {
				assert.Equal(t, 0, got)
				continue
			}
			// smallest n such that n*pageSize >= total
			assert.GreaterOrEqual(t, got*pageSize, total)
			assert.Less(t, (got-1)*pageSize, total)
		}
	}
}

func TestBuildResponse(t *testing.T) {
	p := New(1, 10)
	items := []int{1, 2, 3}

	resp := BuildResponse(p, items, 25, "spots", func(n int) string {
		return fmt.Sprintf("item-%d", n)
	})

	require.Contains(t, resp, "spots")
	assert.Equal(t, []string{"item-1", "item-2", "item-3"}, resp["spots"])
	assert.Equal(t, 25, resp["total"])
	assert.Equal(t, 1, resp["page"])
	assert.Equal(t, 10, resp["page_size"])
	assert.Equal(t, 3, resp["total_pages"])
}

func TestBuildResponseIdentityAndEmpty(t *testing.T) {
	p := New(3, 10)

	resp := BuildResponse(p, []string{}, 25, "items", Identity[string])
	assert.Equal(t, []string{}, resp["items"])
	assert.Equal(t, 3, resp["total_pages"])
	assert.Equal(t, 3, resp["page"])
}

// Scenario: 25 items, page size 10 -> 3 pages, last page holds 5.
func TestPageBoundaryArithmetic(t *testing.T) {
	total := 25
	p1 := New(1, 10)
	p3 := New(3, 10)

	assert.Equal(t, 3, p1.TotalPages(total))
	assert.Equal(t, 0, p1.Offset())
	assert.Equal(t, 20, p3.Offset())
	// items on page 3 = min(page_size, total - offset)
	remaining := total - p3.Offset()
	assert.Equal(t, 5, remaining)
}
