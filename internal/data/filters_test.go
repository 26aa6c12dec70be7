package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMetadata(t *testing.T) {
	tests := []struct {
		name       string
		totalGames int64
		page       int
		pageSize   int
		wantPages  int
		wantWindow []int
		wantPrev   bool
		wantNext   bool
	}{
		{
			name:       "95 items at 20 per page means 5 pages",
			totalGames: 95, page: 3, pageSize: 20,
			wantPages:  5,
			wantWindow: []int{1, 2, 3, 4, 5},
			wantPrev:   true, wantNext: true,
		},
		{
			name:       "first page has no previous",
			totalGames: 95, page: 1, pageSize: 20,
			wantPages:  5,
			wantWindow: []int{1, 2, 3},
			wantPrev:   false, wantNext: true,
		},
		{
			name:       "last page has no next",
			totalGames: 95, page: 5, pageSize: 20,
			wantPages:  5,
			wantWindow: []int{3, 4, 5},
			wantPrev:   true, wantNext: false,
		},
		{
			name:       "window clips at both ends",
			totalGames: 200, page: 6, pageSize: 20,
			wantPages:  10,
			wantWindow: []int{4, 5, 6, 7, 8},
			wantPrev:   true, wantNext: true,
		},
		{
			name:       "exact multiple",
			totalGames: 100, page: 1, pageSize: 20,
			wantPages:  5,
			wantWindow: []int{1, 2, 3},
			wantPrev:   false, wantNext: true,
		},
		{
			name:       "single partial page",
			totalGames: 7, page: 1, pageSize: 20,
			wantPages:  1,
			wantWindow: []int{1},
			wantPrev:   false, wantNext: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calculateMetadata(tt.totalGames, tt.page, tt.pageSize)

			assert.Equal(t, tt.wantPages, m.TotalPages)
			assert.Equal(t, tt.wantWindow, m.Pages)
			assert.Equal(t, tt.wantPrev, m.HasPrev)
			assert.Equal(t, tt.wantNext, m.HasNext)
			assert.Equal(t, tt.totalGames, m.TotalGames)
		})
	}
}

func TestCalculateMetadata_Empty(t *testing.T) {
	m := calculateMetadata(0, 1, 20)

	assert.Equal(t, 0, m.TotalPages, "zero items means zero pages")
	assert.Empty(t, m.Pages)
	assert.False(t, m.HasPrev)
	assert.False(t, m.HasNext)
}

func TestFiltersNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Filters
		wantPage int
		wantSize int
	}{
		{"zero page clamps to 1", Filters{Page: 0, PageSize: 20}, 1, 20},
		{"negative page clamps to 1", Filters{Page: -3, PageSize: 20}, 1, 20},
		{"zero size defaults to 20", Filters{Page: 2, PageSize: 0}, 2, 20},
		{"oversized page size caps at 100", Filters{Page: 1, PageSize: 5000}, 1, 100},
		{"in-range values untouched", Filters{Page: 4, PageSize: 50}, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()

			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantSize, tt.in.PageSize)
		})
	}
}

func TestFiltersOffset(t *testing.T) {
	f := Filters{Page: 3, PageSize: 20}

	assert.Equal(t, 40, f.offset())
	assert.Equal(t, 20, f.limit())
}
