package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		limit    int
		expected int64
	}{
		{"empty", 0, 50, 0},
		{"exact fit", 100, 50, 2},
		{"partial last page", 101, 50, 3},
		{"single record", 1, 50, 1},
		{"zero limit", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, totalPages(tt.total, tt.limit))
		})
	}
}

func TestPopString(t *testing.T) {
	m := map[string]interface{}{
		"user_id": " u1 ",
		"count":   7,
		"empty":   nil,
	}

	assert.Equal(t, "u1", popString(m, "user_id"))
	assert.Equal(t, "7", popString(m, "count"))
	assert.Equal(t, "", popString(m, "missing"))
	assert.Equal(t, "", popString(m, "empty"))

	// popped keys are removed so leftovers land in the extra column
	_, exists := m["user_id"]
	assert.False(t, exists)
	_, exists = m["count"]
	assert.False(t, exists)
}
