package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

// The record phase owns the 80..100 band of overall progress.
const (
	recordProgressFloor = 80
	recordProgressSpan  = 20
)

// backgroundSyncCoordinator downloads record-level data after metadata is in
// place. One failing collection never aborts the run: the coordinator keeps
// going and reports everything it could not fetch in the final result.
type backgroundSyncCoordinator struct {
	session *adapter.SessionClient
	logger  *logger.Logger
}

func NewBackgroundSyncCoordinator(session *adapter.SessionClient, logger *logger.Logger) BackgroundSyncCoordinator {
	logger.Debug().Msg("creating background sync coordinator")
	return &backgroundSyncCoordinator{session: session, logger: logger}
}

func (c *backgroundSyncCoordinator) RunFullSync(ctx context.Context, st store.Store, report ProgressFunc, onComplete func(models.SyncResult)) {
	if report == nil {
		report = func(int, string) {}
	}

	var once sync.Once
	var result models.SyncResult
	complete := func() {
		once.Do(func() {
			if onComplete != nil {
				onComplete(result)
			}
		})
	}

	// The completion callback fires exactly once even when a repository or
	// the transport panics mid-run; the panic is downgraded to a critical
	// failure so the caller's UI never hangs waiting for a result.
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("background sync panicked")
			result.FailedCount++
			result.CriticalFailures = append(result.CriticalFailures, models.SyncFailure{
				Collection: "sync",
				Reason:     fmt.Sprintf("panic: %v", r),
			})
		}
		complete()
	}()

	engine := c.session.Engine()
	if engine == nil {
		result.FailedCount++
		result.CriticalFailures = append(result.CriticalFailures, models.SyncFailure{
			Collection: "sync",
			Reason:     "remote engine not initialized",
		})
		return
	}

	report(recordProgressFloor, "downloading aggregate data")
	c.syncAggregateValues(ctx, engine, st, &result)

	programs := engine.Metadata().Programs
	for i, program := range programs {
		report(recordProgressFloor+(i+1)*recordProgressSpan/(len(programs)+1), "downloading tracker data")
		c.syncTrackerEvents(ctx, engine, st, program, &result)
	}

	report(recordProgressFloor+recordProgressSpan, "sync complete")
}

func (c *backgroundSyncCoordinator) syncAggregateValues(ctx context.Context, engine adapter.RemoteEngine, st store.Store, result *models.SyncResult) {
	if err := engine.DownloadAggregateData(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("aggregate download failed, continuing")
		result.FailedCount++
		result.NonCriticalFailures = append(result.NonCriticalFailures, models.SyncFailure{
			Collection: "dataValues",
			Reason:     err.Error(),
		})
		return
	}

	values := engine.AggregateValues()
	if len(values) == 0 {
		existing, err := st.Records().CountDataValues(ctx)
		if err == nil && existing > 0 {
			// Remote came back empty while local rows exist. Keeping the
			// local rows: an empty remote answer is indistinguishable from
			// a partial server outage.
			c.logger.Warn().Int64("local_rows", existing).Msg("remote aggregate data empty, keeping local rows")
			result.SuccessfulCount++
			return
		}
	}

	if err := st.Records().ReplaceDataValues(ctx, values); err != nil {
		result.FailedCount++
		result.NonCriticalFailures = append(result.NonCriticalFailures, models.SyncFailure{
			Collection: "dataValues",
			Reason:     err.Error(),
		})
		return
	}
	result.SuccessfulCount++
}

func (c *backgroundSyncCoordinator) syncTrackerEvents(ctx context.Context, engine adapter.RemoteEngine, st store.Store, program models.Program, result *models.SyncResult) {
	if err := engine.DownloadTrackerData(ctx, program.UID); err != nil {
		c.logger.Warn().Err(err).Str("program", program.UID).Msg("tracker download failed, continuing")
		result.FailedCount++
		result.NonCriticalFailures = append(result.NonCriticalFailures, models.SyncFailure{
			Collection: "trackerEvents/" + program.UID,
			Reason:     err.Error(),
		})
		return
	}

	events := engine.TrackerEvents(program.UID)
	if len(events) == 0 {
		existing, err := st.Records().CountTrackerEvents(ctx, program.UID)
		if err == nil && existing > 0 {
			c.logger.Warn().
				Str("program", program.UID).
				Int64("local_rows", existing).
				Msg("remote tracker data empty, keeping local rows")
			result.SuccessfulCount++
			return
		}
	}

	if err := st.Records().ReplaceTrackerEvents(ctx, program.UID, events); err != nil {
		result.FailedCount++
		result.NonCriticalFailures = append(result.NonCriticalFailures, models.SyncFailure{
			Collection: "trackerEvents/" + program.UID,
			Reason:     err.Error(),
		})
		return
	}
	result.SuccessfulCount++
}
