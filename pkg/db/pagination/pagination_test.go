package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowFor(t *testing.T) {
	cases := []struct {
		name string
		page int
		size int
		want Window
	}{
		{name: "first page", page: 1, size: 6, want: Window{Limit: 6, Offset: 0}},
		{name: "third page", page: 3, size: 6, want: Window{Limit: 6, Offset: 12}},
		{name: "zero page", page: 0, size: 6, want: Window{Limit: 6, Offset: 0}},
		{name: "default size", page: 2, size: 0, want: Window{Limit: DefaultPageSize, Offset: DefaultPageSize}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WindowFor(tc.page, tc.size))
		})
	}
}

func TestTotalPagesBoundsRowCount(t *testing.T) {
	for count := int64(0); count <= 40; count++ {
		pages := TotalPages(count, DefaultPageSize)
		assert.GreaterOrEqual(t, int64(pages*DefaultPageSize), count, "count %d", count)
		assert.Less(t, int64(pages*DefaultPageSize), count+DefaultPageSize, "count %d", count)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-3, 4))
	assert.Equal(t, 4, ClampPage(9, 4))
	assert.Equal(t, 2, ClampPage(2, 4))
	assert.Equal(t, 1, ClampPage(1, 0))
}
