package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidWebhookType(t *testing.T) {
	tests := []struct {
		name        string
		webhookType string
		valid       bool
	}{
		{"reaction", WEBHOOK_REACTION, true},
		{"comment", WEBHOOK_COMMENT, true},
		{"order", WEBHOOK_ORDER, true},
		{"user ban", WEBHOOK_USER_BAN, true},
		{"data cleanup", WEBHOOK_DATA_CLEANUP, true},
		{"lowercase", "reaction", false},
		{"unknown", "PAYMENT", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidWebhookType(tt.webhookType))
		})
	}
}
