package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

// countingOrchestrator — стаб SessionOrchestrator, считает вызовы SyncNow.
type countingOrchestrator struct {
	SessionOrchestrator
	syncs atomic.Int32
}

func (c *countingOrchestrator) SyncNow(context.Context) (models.SyncResult, error) {
	c.syncs.Add(1)
	return models.SyncResult{SuccessfulCount: 1}, nil
}

func TestResyncJob_TicksAndStops(t *testing.T) {
	orch := &countingOrchestrator{}
	job := NewResyncJob(orch, time.Hour, logger.Nop())

	job.Start(context.Background(), 5*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for orch.syncs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("job never ticked twice")
		case <-time.After(time.Millisecond):
		}
	}

	job.Stop()
	settled := orch.syncs.Load()
	time.Sleep(20 * time.Millisecond)

	if got := orch.syncs.Load(); got != settled {
		t.Fatalf("job kept syncing after Stop: %d -> %d", settled, got)
	}
}

func TestResyncJob_StopWhenIdleIsNoop(t *testing.T) {
	job := NewResyncJob(&countingOrchestrator{}, time.Hour, logger.Nop())
	job.Stop()
	job.Stop()
}

func TestResyncJob_RestartReplacesPreviousRun(t *testing.T) {
	orch := &countingOrchestrator{}
	job := NewResyncJob(orch, time.Hour, logger.Nop())

	job.Start(context.Background(), 5*time.Millisecond)
	job.Start(context.Background(), 5*time.Millisecond)
	defer job.Stop()

	deadline := time.After(2 * time.Second)
	for orch.syncs.Load() < 1 {
		select {
		case <-deadline:
			t.Fatal("restarted job never ticked")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestResyncJob_ContextCancelStopsLoop(t *testing.T) {
	orch := &countingOrchestrator{}
	job := NewResyncJob(orch, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	job.Start(ctx, 5*time.Millisecond)
	cancel()

	time.Sleep(20 * time.Millisecond)
	settled := orch.syncs.Load()
	time.Sleep(20 * time.Millisecond)

	if got := orch.syncs.Load(); got != settled {
		t.Fatalf("job kept syncing after context cancel: %d -> %d", settled, got)
	}
}
