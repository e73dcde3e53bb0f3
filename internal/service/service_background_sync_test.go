package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/mock"
	"github.com/HISP-Uganda/fieldsync/models"
)

func newTestBackgroundSync(t *testing.T, ctrl *gomock.Controller) (BackgroundSyncCoordinator, *mock.MockRemoteEngine) {
	t.Helper()
	engine := mock.NewMockRemoteEngine(ctrl)
	session := adapter.NewSessionClientWithFactory(func() (adapter.RemoteEngine, error) {
		return engine, nil
	}, logger.Nop())
	require.NoError(t, session.Initialize(context.Background()))

	return NewBackgroundSyncCoordinator(session, logger.Nop()), engine
}

func runAndWait(t *testing.T, svc BackgroundSyncCoordinator, st *mock.MockStore) models.SyncResult {
	t.Helper()
	done := make(chan models.SyncResult, 1)
	svc.RunFullSync(context.Background(), st, nil, func(result models.SyncResult) {
		done <- result
	})
	select {
	case result := <-done:
		return result
	default:
		t.Fatal("onComplete was not invoked")
		return models.SyncResult{}
	}
}

func TestBackgroundSync_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	values := []models.DataValue{{DataElementID: "de1", Period: "202601", OrgUnitID: "ou1", Value: "12"}}
	events := []models.TrackerEvent{{UID: "ev1", ProgramID: "prg1"}}

	engine.EXPECT().DownloadAggregateData(gomock.Any()).Return(nil)
	engine.EXPECT().AggregateValues().Return(values)
	records.EXPECT().ReplaceDataValues(gomock.Any(), values).Return(nil)

	engine.EXPECT().Metadata().Return(models.MetadataBundle{
		Programs: []models.Program{{UID: "prg1", Name: "Immunization"}},
	})
	engine.EXPECT().DownloadTrackerData(gomock.Any(), "prg1").Return(nil)
	engine.EXPECT().TrackerEvents("prg1").Return(events)
	records.EXPECT().ReplaceTrackerEvents(gomock.Any(), "prg1", events).Return(nil)

	result := runAndWait(t, svc, st)
	assert.Equal(t, 2, result.SuccessfulCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.False(t, result.IsCritical())
}

func TestBackgroundSync_OneProgramFailureDoesNotAbortOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	engine.EXPECT().DownloadAggregateData(gomock.Any()).Return(nil)
	engine.EXPECT().AggregateValues().Return([]models.DataValue{{DataElementID: "de1"}})
	records.EXPECT().ReplaceDataValues(gomock.Any(), gomock.Any()).Return(nil)

	engine.EXPECT().Metadata().Return(models.MetadataBundle{
		Programs: []models.Program{{UID: "prg1"}, {UID: "prg2"}},
	})

	// первый трекер падает, второй всё равно скачивается
	engine.EXPECT().DownloadTrackerData(gomock.Any(), "prg1").Return(errors.New("timeout"))
	engine.EXPECT().DownloadTrackerData(gomock.Any(), "prg2").Return(nil)
	engine.EXPECT().TrackerEvents("prg2").Return([]models.TrackerEvent{{UID: "ev2"}})
	records.EXPECT().ReplaceTrackerEvents(gomock.Any(), "prg2", gomock.Any()).Return(nil)

	result := runAndWait(t, svc, st)
	assert.Equal(t, 2, result.SuccessfulCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.NonCriticalFailures, 1)
	assert.Equal(t, "trackerEvents/prg1", result.NonCriticalFailures[0].Collection)
	assert.False(t, result.IsCritical())
}

func TestBackgroundSync_EmptyRemoteNeverOverwritesLocalRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	// remote answers are empty while local tables have rows:
	// no Replace* calls may happen.
	engine.EXPECT().DownloadAggregateData(gomock.Any()).Return(nil)
	engine.EXPECT().AggregateValues().Return(nil)
	records.EXPECT().CountDataValues(gomock.Any()).Return(int64(40), nil)

	engine.EXPECT().Metadata().Return(models.MetadataBundle{
		Programs: []models.Program{{UID: "prg1"}},
	})
	engine.EXPECT().DownloadTrackerData(gomock.Any(), "prg1").Return(nil)
	engine.EXPECT().TrackerEvents("prg1").Return(nil)
	records.EXPECT().CountTrackerEvents(gomock.Any(), "prg1").Return(int64(7), nil)

	result := runAndWait(t, svc, st)
	assert.Equal(t, 2, result.SuccessfulCount)
	assert.Equal(t, 0, result.FailedCount)
}

func TestBackgroundSync_EmptyRemoteWithEmptyLocalReplaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	engine.EXPECT().DownloadAggregateData(gomock.Any()).Return(nil)
	engine.EXPECT().AggregateValues().Return(nil)
	records.EXPECT().CountDataValues(gomock.Any()).Return(int64(0), nil)
	records.EXPECT().ReplaceDataValues(gomock.Any(), gomock.Nil()).Return(nil)

	engine.EXPECT().Metadata().Return(models.MetadataBundle{})

	result := runAndWait(t, svc, st)
	assert.Equal(t, 1, result.SuccessfulCount)
}

func TestBackgroundSync_OnCompleteExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	engine.EXPECT().DownloadAggregateData(gomock.Any()).Return(errors.New("down"))
	engine.EXPECT().Metadata().Return(models.MetadataBundle{})

	calls := 0
	svc.RunFullSync(context.Background(), st, nil, func(models.SyncResult) {
		calls++
	})
	assert.Equal(t, 1, calls)
}

func TestBackgroundSync_PanicBecomesCriticalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, engine := newTestBackgroundSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	st.EXPECT().Records().Return(records).AnyTimes()

	engine.EXPECT().DownloadAggregateData(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			panic("repository exploded")
		})

	calls := 0
	var got models.SyncResult
	svc.RunFullSync(context.Background(), st, nil, func(result models.SyncResult) {
		calls++
		got = result
	})

	assert.Equal(t, 1, calls, "onComplete must fire despite the panic")
	assert.True(t, got.IsCritical())
	require.Len(t, got.CriticalFailures, 1)
	assert.Contains(t, got.CriticalFailures[0].Reason, "panic")
}
