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

func newReactionTestApp(t *testing.T, reactions *fakeReactionRepo) *fiber.App {
	t.Helper()
	installFakeRepos(t, &repository.Repositories{Reaction: reactions})

	app := fiber.New()
	app.Post("/api/save-reaction", HandleSaveReaction)
	return app
}

func TestHandleSaveReactionNormalizesAddPayload(t *testing.T) {
	reactions := &fakeReactionRepo{}
	app := newReactionTestApp(t, reactions)

	status, body := doJSON(t, app, "POST", "/api/save-reaction",
		`{"user_id":"u1","reaction_type":"love","previous_reaction":"like","post_id":"p1","name":"Alice","platform":"facebook"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Reaction data saved successfully. Action: ADDED", body["message"])

	require.Len(t, reactions.rows, 1)
	saved := reactions.rows[0]
	assert.Equal(t, "LOVE", saved.ReactionType)
	assert.Equal(t, "LIKE", saved.PreviousReaction)
	assert.Equal(t, "ADDED", saved.ActionType)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, "p1", saved.PostID)

	// Unknown payload fields land in the Extra blob, not on the floor.
	require.NotNil(t, saved.Extra)
	assert.Equal(t, "facebook", saved.Extra["platform"])
}

func TestHandleSaveReactionRemoveErasesAllMatches(t *testing.T) {
	reactions := &fakeReactionRepo{}
	seed := []models.Reaction{
		{UserID: "u1", PostID: "p1", ReactionType: "LIKE", ActionType: "ADDED"},
		{UserID: "u1", PostID: "p1", ReactionType: "LIKE", ActionType: "ADDED"},
		{UserID: "u1", PostID: "p2", ReactionType: "LIKE", ActionType: "ADDED"},
	}
	for i := range seed {
		require.NoError(t, reactions.Create(&seed[i]))
	}
	app := newReactionTestApp(t, reactions)

	status, body := doJSON(t, app, "POST", "/api/save-reaction",
		`{"user_id":"u1","post_id":"p1","reaction_type":"like","action_type":"removed"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Reaction removed from database - no history kept", body["message"])
	assert.Equal(t, "REMOVED", body["verb"])
	assert.Equal(t, float64(2), body["deleted_count"])
	assert.Equal(t, "Reaction successfully removed", body["note"])

	removed, ok := body["removed_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", removed["user_id"])
	assert.Equal(t, "p1", removed["post_id"])
	assert.Equal(t, "LIKE", removed["reaction_type"])

	// Only the non-matching row survives.
	require.Len(t, reactions.rows, 1)
	assert.Equal(t, "p2", reactions.rows[0].PostID)
}

func TestHandleSaveReactionRemoveWithNothingToRemove(t *testing.T) {
	reactions := &fakeReactionRepo{}
	app := newReactionTestApp(t, reactions)

	status, body := doJSON(t, app, "POST", "/api/save-reaction",
		`{"user_id":"u1","post_id":"p1","reaction_type":"LOVE","action_type":"deleted"}`)

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "DELETED", body["verb"])
	assert.Equal(t, float64(0), body["deleted_count"])
	assert.Equal(t, "No existing reaction found to remove", body["note"])
}

func TestHandleSaveReactionMissingMandatoryFields(t *testing.T) {
	app := newReactionTestApp(t, &fakeReactionRepo{})

	status, body := doJSON(t, app, "POST", "/api/save-reaction", `{"user_id":"u1"}`)

	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "user_id and reaction_type are mandatory fields. Data is incomplete.", body["message"])
}

func TestFakeReactionRepoKeepsTimestamps(t *testing.T) {
	reactions := &fakeReactionRepo{}
	require.NoError(t, reactions.Create(&models.Reaction{UserID: "u1", ReactionType: "LIKE"}))
	require.Len(t, reactions.rows, 1)
	assert.WithinDuration(t, time.Now(), reactions.rows[0].CreatedAt, time.Minute)
}
