package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhubhq/socialhub/app/models"
)

// fakeWebhookRepo serves a fixed subscription list without a database.
type fakeWebhookRepo struct {
	webhooks []models.Webhook
	err      error
}

func (r *fakeWebhookRepo) Create(webhook *models.Webhook) error        { return nil }
func (r *fakeWebhookRepo) GetByID(id uint) (*models.Webhook, error)    { return nil, nil }
func (r *fakeWebhookRepo) Update(webhook *models.Webhook) error        { return nil }
func (r *fakeWebhookRepo) Delete(id uint) error                        { return nil }
func (r *fakeWebhookRepo) List() ([]models.Webhook, error)             { return r.webhooks, nil }
func (r *fakeWebhookRepo) CountActive() (int64, error)                 { return int64(len(r.webhooks)), nil }
func (r *fakeWebhookRepo) ListActiveByType(webhookType string) ([]models.Webhook, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Webhook
	for _, wh := range r.webhooks {
		if wh.Type == webhookType {
			out = append(out, wh)
		}
	}
	return out, nil
}

func TestDispatchDeliversEnvelope(t *testing.T) {
	var received Envelope
	var gotHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotHeader = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	repo := &fakeWebhookRepo{webhooks: []models.Webhook{{
		ID:       1,
		Name:     "discord",
		URL:      srv.URL,
		Type:     models.WEBHOOK_REACTION,
		IsActive: true,
		Headers:  models.JSONMap{"X-Api-Key": "abc123"},
	}}}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), models.WEBHOOK_REACTION, map[string]interface{}{
		"user_id":       "u1",
		"reaction_type": "LIKE",
	})

	assert.Equal(t, models.WEBHOOK_REACTION, received.Type)
	assert.NotEmpty(t, received.Timestamp)
	assert.Equal(t, "u1", received.Data["user_id"])
	assert.Equal(t, "LIKE", received.Data["reaction_type"])
	assert.Equal(t, "abc123", gotHeader)
}

func TestDispatchSkipsOtherTypes(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	repo := &fakeWebhookRepo{webhooks: []models.Webhook{{
		ID:       1,
		Name:     "orders-only",
		URL:      srv.URL,
		Type:     models.WEBHOOK_ORDER,
		IsActive: true,
	}}}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), models.WEBHOOK_COMMENT, map[string]interface{}{"comment_id": "c1"})

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDispatchFailureDoesNotBlockOthers(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	var delivered int32
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&delivered, 1)
	}))
	defer healthy.Close()

	repo := &fakeWebhookRepo{webhooks: []models.Webhook{
		{ID: 1, Name: "broken", URL: failing.URL, Type: models.WEBHOOK_ORDER, IsActive: true},
		{ID: 2, Name: "healthy", URL: healthy.URL, Type: models.WEBHOOK_ORDER, IsActive: true},
	}}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), models.WEBHOOK_ORDER, map[string]interface{}{"order_id": "ORD1"})

	assert.Equal(t, int32(1), atomic.LoadInt32(&delivered))
}

// A subscription flipped inactive between listing and delivery must not be
// posted to, even when the repository still returns it.
func TestDispatchSkipsInactiveSubscriptions(t *testing.T) {
	var activeCalls, inactiveCalls int32
	activeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&activeCalls, 1)
	}))
	defer activeSrv.Close()
	inactiveSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&inactiveCalls, 1)
	}))
	defer inactiveSrv.Close()

	repo := &fakeWebhookRepo{webhooks: []models.Webhook{
		{ID: 1, Name: "live", URL: activeSrv.URL, Type: models.WEBHOOK_USER_BAN, IsActive: true},
		{ID: 2, Name: "paused", URL: inactiveSrv.URL, Type: models.WEBHOOK_USER_BAN, IsActive: false},
	}}

	d := NewDispatcher(repo, 2*time.Second)
	d.Dispatch(context.Background(), models.WEBHOOK_USER_BAN, map[string]interface{}{"user_id": "u1"})

	assert.Equal(t, int32(1), atomic.LoadInt32(&activeCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&inactiveCalls))
}

func TestDispatchRepoErrorIsSwallowed(t *testing.T) {
	repo := &fakeWebhookRepo{err: errors.New("db down")}

	d := NewDispatcher(repo, time.Second)
	// must not panic
	d.Dispatch(context.Background(), models.WEBHOOK_REACTION, map[string]interface{}{})
}

func TestCategorize(t *testing.T) {
	assert.Contains(t, categorize(context.DeadlineExceeded), "timed out")
	assert.Contains(t, categorize(errors.New("dial tcp 127.0.0.1:9: connection refused")), "connection refused")
	assert.Equal(t, "boom", categorize(errors.New("boom")))
}
