package catalog_service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 3, 20)
	assert.Equal(t, 100, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.Len(t, page.Items, 20)
	assert.Equal(t, 40, page.Items[0])
	assert.Equal(t, 59, page.Items[19])

	page = Paginate(items, 3, 30)
	assert.Equal(t, 4, page.TotalPages)

	last := Paginate(items, 4, 30)
	assert.Equal(t, []int{90, 91, 92, 93, 94, 95, 96, 97, 98, 99}, last.Items)
}

func TestPaginateOutOfRange(t *testing.T) {
	page := Paginate([]string{"a", "b"}, 7, 10)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	empty := Paginate([]string(nil), 1, 10)
	assert.Empty(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)

	clamped := Paginate([]string{"a", "b"}, 0, 0)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, []string{"a"}, clamped.Items)
}

func TestPaginateHugePage(t *testing.T) {
	items := make([]int, 5)
	for _, page := range []int{math.MaxInt, math.MaxInt / 10, math.MaxInt/1000 + 1} {
		var result Page[int]
		assert.NotPanics(t, func() { result = Paginate(items, page, 1000) })
		assert.Empty(t, result.Items)
		assert.Equal(t, page, result.Page)
		assert.Equal(t, 1, result.TotalPages)
	}

	result := Paginate(items, 2, math.MaxInt)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.TotalPages)
}
