package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct {
		name          string
		in            PaginationParams
		page, perPage int
	}{
		{"zero values", PaginationParams{}, 1, defaultPerPage},
		{"too large", PaginationParams{Page: 3, PerPage: 1000}, 3, maxPerPage},
		{"in range", PaginationParams{Page: 2, PerPage: 10}, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.perPage, p.PerPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)

	params := &PaginationParams{Page: 3, PerPage: 10}
	assert.Equal(t, 20, params.Offset())
}
