package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdminHashesPassword(t *testing.T) {
	admin, err := CreateAdmin("operator", "s3cret-pass", ROLE_ADMIN, "boss")
	require.NoError(t, err)

	assert.Equal(t, "operator", admin.Username)
	assert.Equal(t, ROLE_ADMIN, admin.Role)
	assert.Equal(t, "boss", admin.CreatedBy)
	assert.True(t, admin.IsActive)
	assert.NotEqual(t, "s3cret-pass", admin.Password)
	assert.True(t, CheckPasswordHash("s3cret-pass", admin.Password))
	assert.False(t, CheckPasswordHash("wrong-pass", admin.Password))
}

func TestCreateAdminRejectsInvalidRole(t *testing.T) {
	_, err := CreateAdmin("operator", "s3cret-pass", "SUPERUSER", "")
	assert.Error(t, err)
}

func TestCreateAdminRejectsShortUsername(t *testing.T) {
	_, err := CreateAdmin("ab", "s3cret-pass", ROLE_ADMIN, "")
	assert.Error(t, err)
}
