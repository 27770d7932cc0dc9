package controllers

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
)

func newBanTestApp(t *testing.T, bans *fakeBanRepo) *fiber.App {
	t.Helper()
	installFakeRepos(t, &repository.Repositories{Ban: bans})

	app := fiber.New()
	app.Post("/api/ban-user", HandleBanUser)
	app.Get("/api/banned-users", HandleBannedUsers)
	app.Get("/api/ban-stats", HandleBanStats)
	return app
}

func TestHandleBanUserCreatesBan(t *testing.T) {
	bans := &fakeBanRepo{}
	app := newBanTestApp(t, bans)

	status, body := doJSON(t, app, "POST", "/api/ban-user",
		`{"user_id":"u1","user_name":"Alice","ban_type":"reaction","reason":"spam","banned_by":"admin"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User banned successfully", body["message"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "REACTION", data["ban_type"])
	assert.Equal(t, true, data["isActive"])

	require.Len(t, bans.rows, 1)
	assert.Equal(t, "REACTION", bans.rows[0].BanType)
}

func TestHandleBanUserMissingFields(t *testing.T) {
	app := newBanTestApp(t, &fakeBanRepo{})

	status, body := doJSON(t, app, "POST", "/api/ban-user", `{"user_id":"u1"}`)

	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "user_id, ban_type, and banned_by are required", body["message"])
}

func TestHandleBanUserConflictReturnsExistingBan(t *testing.T) {
	bannedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	bans := &fakeBanRepo{}
	require.NoError(t, bans.Create(&models.UserBan{
		UserID:    "u9",
		UserName:  "Bob",
		BanType:   models.BAN_REACTION,
		Reason:    "spam",
		BannedBy:  "boss",
		IsActive:  true,
		CreatedAt: bannedAt,
	}))
	app := newBanTestApp(t, bans)

	status, body := doJSON(t, app, "POST", "/api/ban-user",
		`{"user_id":"u9","ban_type":"ALL","banned_by":"root"}`)

	require.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "This user is already banned", body["message"])
	assert.Equal(t, true, body["can_remove_data"])

	existing, ok := body["existing_ban"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), existing["ban_id"])
	assert.Equal(t, "REACTION", existing["ban_type"])
	assert.Equal(t, "spam", existing["reason"])
	assert.Equal(t, "boss", existing["banned_by"])
	assert.Equal(t, bannedAt.Format(time.RFC3339), existing["banned_at"])

	// No second ban row was written.
	assert.Len(t, bans.rows, 1)
}

// The ALL ban type is counted literally in the stats breakdown; it is not a
// shorthand for "every active ban".
func TestHandleBanStatsCountsAllTypeLiterally(t *testing.T) {
	now := time.Now()
	bans := &fakeBanRepo{}
	seed := []models.UserBan{
		{UserID: "u1", BanType: models.BAN_REACTION, BannedBy: "a", IsActive: true, CreatedAt: now},
		{UserID: "u2", BanType: models.BAN_COMMENT, BannedBy: "a", IsActive: true, CreatedAt: now},
		{UserID: "u3", BanType: models.BAN_ALL, BannedBy: "a", IsActive: true, CreatedAt: now},
		{UserID: "u4", BanType: models.BAN_ALL, BannedBy: "a", IsActive: false, CreatedAt: now},
	}
	for i := range seed {
		require.NoError(t, bans.Create(&seed[i]))
	}
	app := newBanTestApp(t, bans)

	status, body := doJSON(t, app, "GET", "/api/ban-stats", "")

	require.Equal(t, fiber.StatusOK, status)
	stats, ok := body["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["totalBanned"])
	assert.Equal(t, float64(1), stats["reactionBans"])
	assert.Equal(t, float64(1), stats["commentBans"])
	assert.Equal(t, float64(1), stats["allBans"])
	assert.Equal(t, float64(3), stats["recentBans"])
}

func TestHandleBannedUsersFilterAllMeansNoFilter(t *testing.T) {
	now := time.Now()
	bans := &fakeBanRepo{}
	seed := []models.UserBan{
		{UserID: "u1", BanType: models.BAN_REACTION, BannedBy: "a", IsActive: true, CreatedAt: now},
		{UserID: "u2", BanType: models.BAN_ALL, BannedBy: "a", IsActive: true, CreatedAt: now},
	}
	for i := range seed {
		require.NoError(t, bans.Create(&seed[i]))
	}
	app := newBanTestApp(t, bans)

	status, body := doJSON(t, app, "GET", "/api/banned-users?filterType=ALL", "")
	require.Equal(t, fiber.StatusOK, status)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 2)

	status, body = doJSON(t, app, "GET", "/api/banned-users?filterType=REACTION", "")
	require.Equal(t, fiber.StatusOK, status)
	data, ok = body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	row, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", row["user_id"])
}
