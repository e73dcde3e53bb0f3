package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
)

type resyncJob struct {
	orchestrator SessionOrchestrator
	interval     time.Duration
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewResyncJob creates a resyncJob that re-runs a full sync for the active
// account on a ticker. The job is idle until Start or Run is called.
func NewResyncJob(orchestrator SessionOrchestrator, interval time.Duration, logger *logger.Logger) ResyncJob {
	return &resyncJob{orchestrator: orchestrator, interval: interval, logger: logger}
}

// Run implements workers.Worker by starting the job with its configured
// interval against the background context.
func (j *resyncJob) Run() {
	j.Start(context.Background(), j.interval)
}

// Start stops any previously running job, then launches a background
// goroutine that syncs every interval. If interval is zero or negative it
// falls back to the configured one. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *resyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = j.interval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.syncOnce(jobCtx)
			}
		}
	}()
}

func (j *resyncJob) syncOnce(ctx context.Context) {
	result, err := j.orchestrator.SyncNow(ctx)
	switch {
	case errors.Is(err, ErrNoActiveAccount):
		// Nobody is signed in; the ticker keeps running until Stop.
	case err != nil:
		j.logger.Warn().Err(err).Msg("periodic sync failed")
	default:
		j.logger.Debug().
			Int("succeeded", result.SuccessfulCount).
			Int("failed", result.FailedCount).
			Msg("periodic sync finished")
	}
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the job is not running.
func (j *resyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
