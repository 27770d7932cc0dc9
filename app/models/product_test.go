package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductBeforeSaveFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		expected float64
	}{
		{"no discount", 100, 0, 100},
		{"ten percent", 200, 10, 180},
		{"half off", 50, 50, 25},
		{"full discount", 80, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Price: tt.price, Discount: tt.discount}
			require.NoError(t, p.BeforeSave(nil))
			assert.Equal(t, tt.expected, p.FinalPrice)
		})
	}
}

func TestProductBeforeSaveRecomputesOnUpdate(t *testing.T) {
	p := &Product{Price: 100, Discount: 20, FinalPrice: 999}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 80.0, p.FinalPrice)
}
