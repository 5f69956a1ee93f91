package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func letters(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = string(rune('a' + i))
	}
	return items
}

func TestPaginateMiddlePage(t *testing.T) {
	items := letters(10)

	page := Paginate(items, 1, 4)
	assert.Equal(t, []string{"e", "f", "g", "h"}, page.Items)
	assert.Equal(t, 10, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 4, page.PageSize)
}

func TestPaginateLastPartialPage(t *testing.T) {
	items := letters(10)

	page := Paginate(items, 2, 4)
	assert.Equal(t, []string{"i", "j"}, page.Items)
	assert.Equal(t, 10, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateOutOfRangeIsEmptyNotError(t *testing.T) {
	items := letters(10)

	page := Paginate(items, 5, 4)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 10, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginateExactBoundary(t *testing.T) {
	items := letters(8)

	// start == len(items): an empty page, still a success.
	page := Paginate(items, 2, 4)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)
}

func TestPaginateEmptyInput(t *testing.T) {
	page := Paginate([]string{}, 0, 4)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
}

func TestPaginateInvalidSize(t *testing.T) {
	page := Paginate(letters(3), 0, 0)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	items := letters(5)
	Paginate(items, 0, 2)
	assert.Equal(t, letters(5), items)
}
