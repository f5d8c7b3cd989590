// AngelaMos | 2026
// dto_test.go

package contact

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     ListParams
		page   int
		limit  int
		offset int
	}{
		{"defaults", ListParams{}, 1, 10, 0},
		{"regular page", ListParams{Page: 3, Limit: 5}, 3, 5, 10},
		{"huge page", ListParams{Page: math.MaxInt, Limit: 10}, math.MaxInt/10 + 1, 10, math.MaxInt / 10 * 10},
		{"huge limit", ListParams{Page: 2, Limit: math.MaxInt}, 2, math.MaxInt, math.MaxInt},
		{"huge both", ListParams{Page: math.MaxInt, Limit: math.MaxInt}, 2, math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset())
			assert.GreaterOrEqual(t, p.Offset(), 0)
		})
	}
}
