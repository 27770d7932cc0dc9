package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseActionType(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		action Action
		verb   string
	}{
		{"empty defaults to added", "", ActionAdd, "ADDED"},
		{"whitespace only defaults to added", "   ", ActionAdd, "ADDED"},
		{"added stays added", "added", ActionAdd, "ADDED"},
		{"uppercase added", "ADDED", ActionAdd, "ADDED"},
		{"removed", "removed", ActionRemove, "REMOVED"},
		{"remove", "REMOVE", ActionRemove, "REMOVED"},
		{"delete", "delete", ActionRemove, "DELETED"},
		{"deleted", "Deleted", ActionRemove, "DELETED"},
		{"delete wins over remove wording", "removed_then_deleted", ActionRemove, "DELETED"},
		{"embedded remove", "reaction_removed", ActionRemove, "REMOVED"},
		{"unknown action is an addition kept verbatim", "changed", ActionAdd, "CHANGED"},
		{"mixed case unknown is uppercased", "Toggled", ActionAdd, "TOGGLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActionType(tt.raw)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.verb, got.Verb)
		})
	}
}

func TestIsRemoval(t *testing.T) {
	assert.True(t, IsRemoval("REMOVED"))
	assert.True(t, IsRemoval("deleted"))
	assert.False(t, IsRemoval("ADDED"))
	assert.False(t, IsRemoval(""))
	assert.False(t, IsRemoval("REPLY"))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "ADD", ActionAdd.String())
	assert.Equal(t, "REMOVE", ActionRemove.String())
	assert.Equal(t, "REPLY", ActionReply.String())
}
