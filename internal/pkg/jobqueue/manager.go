package jobqueue

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/dark-store/bukafresh/internal/pkg/env"
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue         *Queue
	billingTicker *time.Ticker
	stopCh        chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
	running       bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 3
		if v, err := strconv.Atoi(env.GetEnv("JOB_QUEUE_WORKERS", "")); err == nil && v > 0 {
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

	// Billing sweep interval, minutes. Defaults to hourly; the sweep itself
	// only touches subscriptions whose billing date has arrived, so running
	// it more often than daily is harmless.
	billingInterval := 60 * time.Minute
	if v, err := strconv.Atoi(env.GetEnv("BILLING_SWEEP_INTERVAL_MINUTES", "")); err == nil && v > 0 {
		billingInterval = time.Duration(v) * time.Minute
	}

	m.billingTicker = time.NewTicker(billingInterval)
	m.wg.Add(1)
	go m.billingWorker(billingInterval)

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

	if m.billingTicker != nil {
		m.billingTicker.Stop()
	}

	// Signal workers to stop
	close(m.stopCh)
	m.running = false

	// Wait for background workers to finish
	m.wg.Wait()

	// Stop the job queue
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// billingWorker periodically enqueues a billing sweep for subscriptions due today
func (m *Manager) billingWorker(interval time.Duration) {
	defer m.wg.Done()
	log.Infof("[JobQueue Manager] Started billing worker (interval: %s)", interval)

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Billing worker stopping")
			return
		case <-m.billingTicker.C:
			payload := BillingSweepJobPayload{Day: time.Now()}
			if _, err := m.queue.EnqueueJob(JobTypeBillingSweep, payload.ToMap()); err != nil {
				log.Errorf("[JobQueue Manager] Error enqueueing billing sweep: %v", err)
			}
		}
	}
}

// EnqueueBillingSweep triggers a one-off billing sweep outside the ticker
// schedule. Exposed through the ops endpoint.
func (m *Manager) EnqueueBillingSweep(day time.Time) (*Job, error) {
	payload := BillingSweepJobPayload{Day: day}
	return m.queue.EnqueueJob(JobTypeBillingSweep, payload.ToMap())
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
