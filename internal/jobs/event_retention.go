package jobs

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// Purger deletes stored events older than a cutoff.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventRetentionJob deletes synthesis events older than the retention period.
// It runs once on start and then on every interval (default: 1 hour).
type EventRetentionJob struct {
	events    Purger
	logger    *log.Logger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// NewEventRetentionJob creates a new retention job. A zero retention keeps
// 30 days.
func NewEventRetentionJob(events Purger, logger *log.Logger, retention, interval time.Duration) *EventRetentionJob {
	if retention == 0 {
		retention = 30 * 24 * time.Hour
	}
	if interval == 0 {
		interval = 1 * time.Hour
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &EventRetentionJob{
		events:    events,
		logger:    logger,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background job.
func (j *EventRetentionJob) Start() {
	j.wg.Add(1)
	go j.run()
	j.logger.Printf("EventRetentionJob: started (retention=%v, interval=%v)", j.retention, j.interval)
}

// Stop gracefully stops the background job. Safe to call more than once.
func (j *EventRetentionJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopCh)
		j.wg.Wait()
		j.logger.Println("EventRetentionJob: stopped")
	})
}

func (j *EventRetentionJob) run() {
	defer j.wg.Done()

	// Run immediately on start
	j.purge()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.purge()
		case <-j.stopCh:
			return
		}
	}
}

func (j *EventRetentionJob) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := j.now().Add(-j.retention)
	n, err := j.events.Purge(ctx, cutoff)
	if err != nil {
		j.logger.Printf("EventRetentionJob: purge failed: %v", err)
		return
	}
	if n > 0 {
		j.logger.Printf("EventRetentionJob: deleted %d events older than %s", n, cutoff.Format(time.RFC3339))
	}
}
