package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/mock"
	"github.com/HISP-Uganda/fieldsync/models"
)

func shortBackoff(t *testing.T) {
	t.Helper()
	old := metadataSyncBackoff
	metadataSyncBackoff = time.Millisecond
	t.Cleanup(func() { metadataSyncBackoff = old })
}

func newTestMetadataSync(t *testing.T, ctrl *gomock.Controller) (MetadataSyncEngine, *mock.MockRemoteEngine) {
	t.Helper()
	engine := mock.NewMockRemoteEngine(ctrl)
	session := adapter.NewSessionClientWithFactory(func() (adapter.RemoteEngine, error) {
		return engine, nil
	}, logger.Nop())
	require.NoError(t, session.Initialize(context.Background()))

	return NewMetadataSyncEngine(session, logger.Nop()), engine
}

func nonEmptyBundle() models.MetadataBundle {
	return models.MetadataBundle{
		OrgUnits: []models.OrgUnit{{UID: "ou1", Name: "Kampala"}},
		Programs: []models.Program{{UID: "prg1", Name: "Immunization"}},
	}
}

func expectPersist(st *mock.MockStore, repo *mock.MockMetadataRepository, bundle models.MetadataBundle) {
	st.EXPECT().Metadata().Return(repo).AnyTimes()
	repo.EXPECT().ReplaceOrgUnits(gomock.Any(), bundle.OrgUnits).Return(nil)
	repo.EXPECT().ReplacePrograms(gomock.Any(), bundle.Programs).Return(nil)
	if len(bundle.DataSets) == 0 {
		repo.EXPECT().CountDataSets(gomock.Any()).Return(int64(0), nil)
	}
	repo.EXPECT().ReplaceDataSets(gomock.Any(), bundle.DataSets).Return(nil)
}

func TestMetadataSync_FirstAttemptSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	bundle := nonEmptyBundle()
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, onProgress func(int)) error {
			onProgress(0)
			onProgress(100)
			return nil
		})
	engine.EXPECT().Metadata().Return(bundle).AnyTimes()
	expectPersist(st, repo, bundle)

	var percents []int
	nonCritical, err := svc.Sync(context.Background(), st, func(percent int, _ string) {
		percents = append(percents, percent)
	})
	require.NoError(t, err)

	// dataSets came back empty: a warning, not a failure
	require.Len(t, nonCritical, 1)
	assert.Equal(t, "dataSets", nonCritical[0].Collection)

	// прогресс замаплен в полосу 30..80
	require.NotEmpty(t, percents)
	for _, p := range percents {
		assert.GreaterOrEqual(t, p, 30)
		assert.LessOrEqual(t, p, 80)
	}
	assert.Equal(t, 80, percents[len(percents)-1])
}

func TestMetadataSync_SecondAttemptSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	// первая попытка падает и кэш пуст, вторая наполняет кэш
	bundle := nonEmptyBundle()
	var cached models.MetadataBundle
	gomock.InOrder(
		engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset")),
		engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, func(int)) error {
				cached = bundle
				return nil
			}),
	)
	engine.EXPECT().Metadata().DoAndReturn(func() models.MetadataBundle { return cached }).AnyTimes()
	expectPersist(st, repo, bundle)

	nonCritical, err := svc.Sync(context.Background(), st, nil)
	require.NoError(t, err)
	require.Len(t, nonCritical, 1)
	assert.Equal(t, "dataSets", nonCritical[0].Collection)
}

func TestMetadataSync_ExhaustionYieldsSingleCriticalFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)

	// все три попытки проваливаются — ни одной записи в хранилище
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset")).
		Times(metadataSyncAttempts)
	engine.EXPECT().Metadata().Return(models.MetadataBundle{}).AnyTimes()

	_, err := svc.Sync(context.Background(), st, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMetadataSyncFailed)
}

func TestMetadataSync_EmptyBundleRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)

	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(metadataSyncAttempts)
	engine.EXPECT().Metadata().Return(models.MetadataBundle{}).AnyTimes()

	_, err := svc.Sync(context.Background(), st, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMetadataSyncFailed)
}

func TestMetadataSync_OptionalConfigMissingIsNonCritical(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	bundle := nonEmptyBundle()
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
		Return(adapter.ErrOptionalConfigMissing)
	engine.EXPECT().Metadata().Return(bundle).AnyTimes()
	expectPersist(st, repo, bundle)

	nonCritical, err := svc.Sync(context.Background(), st, nil)
	require.NoError(t, err, "missing optional config must not fail the sync")
	require.Len(t, nonCritical, 2)
	assert.Equal(t, "appConfig", nonCritical[0].Collection)
	assert.Equal(t, "dataSets", nonCritical[1].Collection)
}

func TestMetadataSync_EmptyRemoteCollectionKeepsLocalRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	// dataSets came back empty while the local table has rows: the local
	// rows survive and ReplaceDataSets is never called for them.
	bundle := nonEmptyBundle()
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).Return(nil)
	engine.EXPECT().Metadata().Return(bundle).AnyTimes()

	st.EXPECT().Metadata().Return(repo).AnyTimes()
	repo.EXPECT().ReplaceOrgUnits(gomock.Any(), bundle.OrgUnits).Return(nil)
	repo.EXPECT().ReplacePrograms(gomock.Any(), bundle.Programs).Return(nil)
	repo.EXPECT().CountDataSets(gomock.Any()).Return(int64(4), nil)

	_, err := svc.Sync(context.Background(), st, nil)
	require.NoError(t, err)
}

func TestMetadataSync_StreamErrorWithCachedCollectionsSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	// поток оборвался после оргюнитов: кэш непустой, попытка успешна
	bundle := models.MetadataBundle{
		OrgUnits: []models.OrgUnit{{UID: "ou1", Name: "Kampala"}},
	}
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).
		Return(errors.New("stream reset after org units"))
	engine.EXPECT().Metadata().Return(bundle).AnyTimes()

	st.EXPECT().Metadata().Return(repo).AnyTimes()
	repo.EXPECT().ReplaceOrgUnits(gomock.Any(), bundle.OrgUnits).Return(nil)
	repo.EXPECT().CountPrograms(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().ReplacePrograms(gomock.Any(), bundle.Programs).Return(nil)
	repo.EXPECT().CountDataSets(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().ReplaceDataSets(gomock.Any(), bundle.DataSets).Return(nil)

	nonCritical, err := svc.Sync(context.Background(), st, nil)
	require.NoError(t, err, "partial metadata is usable, a broken stream must not block login")

	collections := make([]string, 0, len(nonCritical))
	for _, failure := range nonCritical {
		collections = append(collections, failure.Collection)
	}
	assert.Equal(t, []string{"metadata", "programs", "dataSets"}, collections)
	assert.Contains(t, nonCritical[0].Reason, "stream reset")
}

func TestMetadataSync_EmptyProbesSurfacedAsWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	shortBackoff(t)

	svc, engine := newTestMetadataSync(t, ctrl)
	st := mock.NewMockStore(ctrl)
	repo := mock.NewMockMetadataRepository(ctrl)

	bundle := models.MetadataBundle{
		OrgUnits: []models.OrgUnit{{UID: "ou1", Name: "Kampala"}},
	}
	engine.EXPECT().DownloadMetadata(gomock.Any(), gomock.Any()).Return(nil)
	engine.EXPECT().Metadata().Return(bundle).AnyTimes()

	st.EXPECT().Metadata().Return(repo).AnyTimes()
	repo.EXPECT().ReplaceOrgUnits(gomock.Any(), bundle.OrgUnits).Return(nil)
	repo.EXPECT().CountPrograms(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().ReplacePrograms(gomock.Any(), bundle.Programs).Return(nil)
	repo.EXPECT().CountDataSets(gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().ReplaceDataSets(gomock.Any(), bundle.DataSets).Return(nil)

	nonCritical, err := svc.Sync(context.Background(), st, nil)
	require.NoError(t, err)
	require.Len(t, nonCritical, 2)
	assert.Equal(t, "programs", nonCritical[0].Collection)
	assert.Equal(t, "dataSets", nonCritical[1].Collection)
}
