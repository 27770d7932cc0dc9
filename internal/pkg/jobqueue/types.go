package jobqueue

import (
	"encoding/json"
	"fmt"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeWebhookDispatch JobType = "webhook_dispatch"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
}

// MarkAsProcessing transitions the job to the processing state
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted transitions the job to the completed state
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed transitions the job to the failed state
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errorMsg
	j.UpdatedAt = time.Now()
}

// WebhookDispatchPayload carries one outbound webhook event through the
// queue. Delivery itself is best-effort with no retry; the queue exists only
// to decouple third-party webhook latency from API response time.
type WebhookDispatchPayload struct {
	WebhookType string                 `json:"webhook_type"`
	Data        map[string]interface{} `json:"data"`
}

// ToMap converts the payload to a map for storage
func (p WebhookDispatchPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"webhook_type": p.WebhookType,
		"data":         p.Data,
	}
}

// WebhookDispatchPayloadFromMap creates a payload from a stored job payload
func WebhookDispatchPayloadFromMap(data map[string]interface{}) (*WebhookDispatchPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var payload WebhookDispatchPayload
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, err
	}
	if payload.WebhookType == "" {
		return nil, fmt.Errorf("webhook dispatch payload missing webhook_type")
	}
	return &payload, nil
}
