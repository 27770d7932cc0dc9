package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
)

// fakeReactionRepo keeps reactions in a slice, mirroring the matching rules
// of the database-backed repository.
type fakeReactionRepo struct {
	mu     sync.Mutex
	rows   []models.Reaction
	nextID uint
}

func (r *fakeReactionRepo) Create(reaction *models.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reaction.ID = r.nextID
	reaction.CreatedAt = time.Now()
	r.rows = append(r.rows, *reaction)
	return nil
}

func (r *fakeReactionRepo) List(offset, limit int) ([]models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return append([]models.Reaction(nil), r.rows[offset:end]...), nil
}

func (r *fakeReactionRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeReactionRepo) Find(filter repository.ReactionFilter) ([]models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reaction
	for _, row := range r.rows {
		if filter.UserID != "" && row.UserID != filter.UserID {
			continue
		}
		if filter.ReactionType != "" && row.ReactionType != filter.ReactionType {
			continue
		}
		if filter.PostID != "" && row.PostID != filter.PostID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeReactionRepo) ListByUser(userID string) ([]models.Reaction, error) {
	return r.Find(repository.ReactionFilter{UserID: userID})
}

func (r *fakeReactionRepo) LatestForUserPost(userID, postID string) (*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID && r.rows[i].PostID == postID {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) Latest() (*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rows) == 0 {
		return nil, nil
	}
	row := r.rows[len(r.rows)-1]
	return &row, nil
}

func (r *fakeReactionRepo) Recent(limit int) ([]models.Reaction, error) {
	return r.List(0, limit)
}

func (r *fakeReactionRepo) DeleteMatching(userID, postID, reactionType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Reaction
	var deleted int64
	for _, row := range r.rows {
		if row.UserID == userID && row.PostID == postID && row.ReactionType == reactionType {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

func (r *fakeReactionRepo) DeleteByUser(userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Reaction
	var deleted int64
	for _, row := range r.rows {
		if row.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

func (r *fakeReactionRepo) DeleteOlderThan(cutoff time.Time) (int64, error) { return 0, nil }

func (r *fakeReactionRepo) CountsByType() ([]repository.GroupCount, error)   { return nil, nil }
func (r *fakeReactionRepo) CountsByAction() ([]repository.GroupCount, error) { return nil, nil }
func (r *fakeReactionRepo) TopUsers(limit int) ([]repository.UserCount, error) {
	return nil, nil
}
func (r *fakeReactionRepo) TopPosts(limit int) ([]repository.PostCount, error) {
	return nil, nil
}
func (r *fakeReactionRepo) DistinctActionTypes() ([]string, error)   { return nil, nil }
func (r *fakeReactionRepo) DistinctCustomActions() ([]string, error) { return nil, nil }

// fakeBanRepo keeps bans in a slice. Type filters match literally, the way
// the SQL repository does; ALL is a ban type, not a wildcard.
type fakeBanRepo struct {
	mu     sync.Mutex
	rows   []models.UserBan
	nextID uint
}

func (r *fakeBanRepo) Create(ban *models.UserBan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	ban.ID = r.nextID
	if ban.CreatedAt.IsZero() {
		ban.CreatedAt = time.Now()
	}
	r.rows = append(r.rows, *ban)
	return nil
}

func (r *fakeBanRepo) GetActiveByUserID(userID string) (*models.UserBan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && row.IsActive {
			ban := row
			return &ban, nil
		}
	}
	return nil, nil
}

func (r *fakeBanRepo) Update(ban *models.UserBan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == ban.ID {
			r.rows[i] = *ban
			return nil
		}
	}
	return nil
}

func (r *fakeBanRepo) ListActive(banType string, offset, limit int) ([]models.UserBan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.UserBan
	for _, row := range r.rows {
		if !row.IsActive {
			continue
		}
		if banType != "" && row.BanType != banType {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeBanRepo) CountActive(banType string) (int64, error) {
	bans, err := r.ListActive(banType, 0, len(r.rows)+1)
	return int64(len(bans)), err
}

func (r *fakeBanRepo) CountActiveSince(since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.IsActive && !row.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// fakeOrderRepo records created orders; lookups beyond that are unused by
// the ingress tests.
type fakeOrderRepo struct {
	mu     sync.Mutex
	rows   []models.Order
	nextID uint
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	r.rows = append(r.rows, *order)
	return nil
}

func (r *fakeOrderRepo) GetByOrderID(orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.OrderID == orderID {
			order := row
			return &order, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Update(order *models.Order) error { return nil }

func (r *fakeOrderRepo) List(status string, offset, limit int) ([]models.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Count(status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeOrderRepo) Find(status, senderID, orderID string, limit int) ([]models.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) ListBySender(senderID string) ([]models.Order, error)       { return nil, nil }
func (r *fakeOrderRepo) ListByRecipient(recipientID string) ([]models.Order, error) { return nil, nil }
func (r *fakeOrderRepo) Latest() (*models.Order, error)                             { return nil, nil }
func (r *fakeOrderRepo) Recent(limit int) ([]models.Order, error)                   { return nil, nil }
func (r *fakeOrderRepo) CountsByStatus() ([]repository.GroupCount, error)           { return nil, nil }
func (r *fakeOrderRepo) DeleteByUser(userID string) (int64, error)                  { return 0, nil }

// fakeActivityRepo swallows audit writes.
type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []models.AdminActivity
}

func (r *fakeActivityRepo) Log(activity *models.AdminActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *activity)
	return nil
}

func (r *fakeActivityRepo) List(offset, limit int) ([]models.AdminActivity, error) {
	return nil, nil
}

func (r *fakeActivityRepo) ListByAdmin(username string, offset, limit int) ([]models.AdminActivity, error) {
	return nil, nil
}

func (r *fakeActivityRepo) Count() (int64, error)                       { return 0, nil }
func (r *fakeActivityRepo) CountByAdmin(username string) (int64, error) { return 0, nil }

// installFakeRepos swaps the global repository set for the given fakes and
// restores a clean slate when the test ends.
func installFakeRepos(t *testing.T, repos *repository.Repositories) {
	t.Helper()
	if repos.Activity == nil {
		repos.Activity = &fakeActivityRepo{}
	}
	repository.SetGlobalRepositories(repos)
	t.Cleanup(repository.ResetGlobalFactory)
}

// doJSON performs a request against the app and decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}
