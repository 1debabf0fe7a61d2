package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: -2, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)

	p = &PaginationParams{}
	p.Validate()
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, meta := Slice(items, &PaginationParams{Page: 2, PerPage: 3})
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	page, meta = Slice(items, &PaginationParams{Page: 3, PerPage: 3})
	assert.Equal(t, []int{7}, page)
	assert.False(t, meta.HasNext)

	page, meta = Slice(items, &PaginationParams{Page: 9, PerPage: 3})
	assert.Empty(t, page)
	assert.EqualValues(t, 7, meta.Total)
}
