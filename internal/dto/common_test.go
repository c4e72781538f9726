package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagedResponse(t *testing.T) {
	page := NewPagedResponse([]int{1, 2, 3}, 1, 10, 3)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PageSize)
	assert.EqualValues(t, 3, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)

	// partial last page rounds up
	page = NewPagedResponse(nil, 2, 10, 25)
	assert.Equal(t, 3, page.TotalPages)

	// empty result set
	page = NewPagedResponse(nil, 1, 10, 0)
	assert.Equal(t, 0, page.TotalPages)
}
