package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobType(t *testing.T) {
	assert.Equal(t, "webhook_dispatch", string(JobTypeWebhookDispatch))
}

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"Pending", JobStatusPending, "pending"},
		{"Processing", JobStatusProcessing, "processing"},
		{"Completed", JobStatusCompleted, "completed"},
		{"Failed", JobStatusFailed, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.status))
		})
	}
}

func TestJobStateTransitions(t *testing.T) {
	job := &Job{ID: "job-1", Type: JobTypeWebhookDispatch, Status: JobStatusPending}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.NotNil(t, job.ProcessedAt)

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
}

func TestJobMarkAsFailed(t *testing.T) {
	job := &Job{ID: "job-2", Type: JobTypeWebhookDispatch, Status: JobStatusProcessing}

	job.MarkAsFailed("malformed payload")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "malformed payload", job.ErrorMsg)
}

func TestWebhookDispatchPayloadRoundTrip(t *testing.T) {
	in := WebhookDispatchPayload{
		WebhookType: "REACTION",
		Data: map[string]interface{}{
			"user_id":       "u1",
			"reaction_type": "LIKE",
		},
	}

	out, err := WebhookDispatchPayloadFromMap(in.ToMap())
	require.NoError(t, err)

	assert.Equal(t, "REACTION", out.WebhookType)
	assert.Equal(t, "u1", out.Data["user_id"])
	assert.Equal(t, "LIKE", out.Data["reaction_type"])
}

func TestWebhookDispatchPayloadMissingType(t *testing.T) {
	_, err := WebhookDispatchPayloadFromMap(map[string]interface{}{
		"data": map[string]interface{}{"user_id": "u1"},
	})
	assert.Error(t, err)
}
