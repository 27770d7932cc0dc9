package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{ORDER_PENDING, true},
		{ORDER_CONFIRMED, true},
		{ORDER_DELIVERED, true},
		{ORDER_CANCELLED, true},
		{"SHIPPED", false},
		{"pending", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidOrderStatus(tt.status))
		})
	}
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()

	assert.True(t, strings.HasPrefix(id, "ORD"))
	// ORD + 13 millisecond digits + 3 random digits
	assert.Len(t, id, 19)
	for _, r := range id[3:] {
		assert.True(t, r >= '0' && r <= '9', "unexpected character %q in %s", r, id)
	}
}
