package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/socialhubhq/socialhub/internal/pkg/env"
	metrics "github.com/socialhubhq/socialhub/internal/pkg/metrics/counter"
	"github.com/socialhubhq/socialhub/internal/pkg/webhook"
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue   *Queue
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		// Worker count from env, fallback to 5
		workerCount := 5
		if v, err := strconv.Atoi(env.GetEnv("JOB_QUEUE_WORKERS", "5")); err == nil && v > 0 {
			workerCount = v
		}

		globalManager = &Manager{
			queue:  NewQueue(workerCount),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	// Start the job queue
	m.queue.Start()

	// Route webhook triggers through the queue from now on
	webhook.SetQueue(func(webhookType string, data map[string]interface{}) error {
		payload := WebhookDispatchPayload{WebhookType: webhookType, Data: data}
		_, err := m.queue.EnqueueJob(JobTypeWebhookDispatch, payload.ToMap())
		return err
	})

	// Flush delivery counters (Redis -> DB) every 5 seconds
	m.wg.Add(1)
	go func(stopCh <-chan struct{}) {
		defer m.wg.Done()
		metrics.StartFlusher(5*time.Second, stopCh)
	}(m.stopCh)

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	// Triggers fall back to direct dispatch while the queue is down
	webhook.SetQueue(nil)

	// Signal workers to stop. Start recreates the channel on restart.
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
