package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/app/models"
	"github.com/socialhubhq/socialhub/app/repository"
	"github.com/socialhubhq/socialhub/internal/pkg/env"
	"github.com/socialhubhq/socialhub/internal/pkg/metrics/counter"
)

// DefaultTimeout bounds a single delivery attempt. Overridable via
// WEBHOOK_TIMEOUT_SECONDS.
const DefaultTimeout = 10 * time.Second

// Envelope is the body POSTed to every subscriber.
type Envelope struct {
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Dispatcher delivers event payloads to active webhook subscriptions of the
// matching category. Delivery is best-effort: failures are logged and
// counted, never retried, and never surfaced to the event producer.
type Dispatcher struct {
	repo    repository.WebhookRepository
	client  *http.Client
	timeout time.Duration
}

func NewDispatcher(repo repository.WebhookRepository, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		repo:    repo,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Dispatch sends the payload to every active subscription of the given type,
// sequentially. A failed delivery to one subscriber never blocks the rest.
// Zero active subscriptions is a normal no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, webhookType string, data map[string]interface{}) {
	webhooks, err := d.repo.ListActiveByType(webhookType)
	if err != nil {
		log.Errorf("[Webhook] Failed to load subscriptions for type %s: %v", webhookType, err)
		return
	}

	log.Infof("[Webhook] Triggering %s webhooks: %d active subscription(s)", webhookType, len(webhooks))
	if len(webhooks) == 0 {
		return
	}

	envelope := Envelope{
		Type:      webhookType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("[Webhook] Failed to marshal %s payload: %v", webhookType, err)
		return
	}

	for i := range webhooks {
		// The repository filters on is_active already; skip again here so a
		// subscription deactivated mid-dispatch is never delivered to.
		if !webhooks[i].IsActive {
			continue
		}
		d.deliver(ctx, &webhooks[i], body)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, wh *models.Webhook, body []byte) {
	reqCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		log.Errorf("[Webhook] %s: invalid request for %s: %v", wh.Name, wh.URL, err)
		counter.AddWebhookFailure(wh.ID)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range wh.Headers {
		req.Header.Set(key, fmt.Sprint(value))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		log.Errorf("[Webhook] Delivery failed: %s (%s): %s", wh.Name, wh.URL, categorize(err))
		counter.AddWebhookFailure(wh.ID)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusNotFound {
			log.Errorf("[Webhook] Delivery failed: %s returned 404 - verify the webhook URL %s", wh.Name, wh.URL)
		} else {
			log.Errorf("[Webhook] Delivery failed: %s returned status %d", wh.Name, resp.StatusCode)
		}
		counter.AddWebhookFailure(wh.ID)
		return
	}

	log.Infof("[Webhook] Delivered to %s (%s): status %d", wh.Name, wh.Type, resp.StatusCode)
	counter.AddWebhookSuccess(wh.ID)
}

// categorize maps a transport error to a diagnostic string for the delivery
// log: timeouts, refused connections and DNS problems look different to an
// operator chasing a dead subscriber.
func categorize(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "request timed out - webhook server took too long to respond"
	}
	if strings.Contains(err.Error(), "connection refused") {
		return "connection refused - is the webhook server running?"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("DNS lookup failed for %s", dnsErr.Name)
	}
	return err.Error()
}

// Trigger is the fire-and-forget entry point used by request handlers. When
// the job queue is running the payload is enqueued there; otherwise dispatch
// happens on a detached goroutine so third-party latency never couples to
// the API response.
func Trigger(webhookType string, data map[string]interface{}) {
	if fn := queueFn; fn != nil {
		if err := fn(webhookType, data); err == nil {
			return
		}
		log.Warnf("[Webhook] Enqueue failed for %s, dispatching inline", webhookType)
	}

	d := GetDispatcher()
	if d == nil {
		log.Errorf("[Webhook] Dispatcher not initialized; dropping %s event", webhookType)
		return
	}
	go d.Dispatch(context.Background(), webhookType, data)
}

var (
	defaultDispatcher *Dispatcher
	queueFn           func(webhookType string, data map[string]interface{}) error
)

// Setup initializes the default dispatcher with the configured timeout.
func Setup(repo repository.WebhookRepository) {
	timeout := DefaultTimeout
	if raw := env.GetEnv("WEBHOOK_TIMEOUT_SECONDS", ""); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	defaultDispatcher = NewDispatcher(repo, timeout)
}

// GetDispatcher returns the default dispatcher, or nil before Setup.
func GetDispatcher() *Dispatcher {
	return defaultDispatcher
}

// SetDispatcher swaps the default dispatcher; used by tests.
func SetDispatcher(d *Dispatcher) {
	defaultDispatcher = d
}

// SetQueue installs the async handoff used by Trigger. The job queue
// registers itself here at startup.
func SetQueue(fn func(webhookType string, data map[string]interface{}) error) {
	queueFn = fn
}
