package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()

	assert.Len(t, a, 64)
	assert.Len(t, b, 64)
	assert.NotEqual(t, a, b)
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set("tok", &Data{AdminID: 1, Username: "boss", Role: "OWNER"}))

	data, err := s.Get("tok")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, uint(1), data.AdminID)
	assert.Equal(t, "boss", data.Username)
	assert.Equal(t, "OWNER", data.Role)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	s := NewMemoryStore()

	data, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set("tok", &Data{AdminID: 1, Username: "boss"}))

	now = now.Add(TTL + time.Minute)

	data, err := s.Get("tok")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStoreSlidingExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return now })

	require.NoError(t, s.Set("tok", &Data{AdminID: 1, Username: "boss"}))

	// touch the session shortly before expiry, pushing the deadline out
	now = now.Add(TTL - time.Minute)
	data, err := s.Get("tok")
	require.NoError(t, err)
	require.NotNil(t, data)

	// past the original deadline but within the refreshed one
	now = now.Add(2 * time.Minute)
	data, err = s.Get("tok")
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set("tok", &Data{AdminID: 1, Username: "boss"}))
	require.NoError(t, s.Delete("tok"))

	data, err := s.Get("tok")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStoreDeleteForAdmin(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Set("t1", &Data{AdminID: 1, Username: "boss"}))
	require.NoError(t, s.Set("t2", &Data{AdminID: 1, Username: "boss"}))
	require.NoError(t, s.Set("t3", &Data{AdminID: 2, Username: "other"}))

	require.NoError(t, s.DeleteForAdmin("boss"))

	for _, token := range []string{"t1", "t2"} {
		data, err := s.Get(token)
		require.NoError(t, err)
		assert.Nil(t, data)
	}

	data, err := s.Get("t3")
	require.NoError(t, err)
	assert.NotNil(t, data)
}
