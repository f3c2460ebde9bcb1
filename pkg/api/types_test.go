package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name          string
		page, limit   int
		total         int
		expectedPages int
	}{
		{"exact multiple", 1, 10, 20, 2},
		{"remainder rounds up", 2, 10, 23, 3},
		{"empty", 1, 10, 0, 0},
		{"single partial page", 1, 50, 1, 1},
		{"zero limit", 1, 0, 5, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.expectedPages, p.Pages)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.page, p.Page)
		})
	}
}
