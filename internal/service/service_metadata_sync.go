package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/HISP-Uganda/fieldsync/internal/adapter"
	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
	"github.com/HISP-Uganda/fieldsync/models"
)

const (
	// metadataSyncAttempts is the total number of download attempts before
	// the sync is declared critically failed.
	metadataSyncAttempts = 3

	// The metadata phase owns the 30..80 band of overall login progress;
	// authentication happens below it and record sync above it.
	metadataProgressFloor = 30
	metadataProgressSpan  = 50
)

// metadataSyncBackoff is the constant pause between attempts. Variable so
// tests can shorten it.
var metadataSyncBackoff = 2 * time.Second

// metadataSyncEngine downloads reference collections through the shared
// session and persists them into the account store.
type metadataSyncEngine struct {
	session *adapter.SessionClient
	logger  *logger.Logger
}

func NewMetadataSyncEngine(session *adapter.SessionClient, logger *logger.Logger) MetadataSyncEngine {
	logger.Debug().Msg("creating metadata sync engine")
	return &metadataSyncEngine{session: session, logger: logger}
}

func (m *metadataSyncEngine) Sync(ctx context.Context, st store.Store, report ProgressFunc) ([]models.SyncFailure, error) {
	if report == nil {
		report = func(int, string) {}
	}

	engine := m.session.Engine()
	if engine == nil {
		return nil, errors.New("metadata sync: remote engine not initialized")
	}

	var nonCritical []models.SyncFailure
	attempt := 0

	backoff := retry.WithMaxRetries(metadataSyncAttempts-1, retry.NewConstant(metadataSyncBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		nonCritical = nonCritical[:0]

		downloadErr := engine.DownloadMetadata(ctx, func(percent int) {
			report(metadataProgressFloor+percent*metadataProgressSpan/100, "downloading metadata")
		})
		if errors.Is(downloadErr, adapter.ErrOptionalConfigMissing) {
			// The server simply has no optional configuration published.
			// Recorded as a warning, never as a failed sync.
			nonCritical = append(nonCritical, models.SyncFailure{
				Collection: "appConfig",
				Reason:     downloadErr.Error(),
			})
			downloadErr = nil
		}

		// The probe decides the attempt, not the stream: collections cached
		// before a mid-stream failure are still usable.
		bundle := engine.Metadata()
		if bundle.IsEmpty() {
			if downloadErr == nil {
				downloadErr = errors.New("server returned no reference collections")
			}
			m.logger.Warn().Err(downloadErr).Int("attempt", attempt).Msg("metadata attempt failed")
			return retry.RetryableError(downloadErr)
		}

		if downloadErr != nil {
			m.logger.Warn().Err(downloadErr).Int("attempt", attempt).
				Msg("metadata download incomplete, keeping cached collections")
			nonCritical = append(nonCritical, models.SyncFailure{
				Collection: "metadata",
				Reason:     downloadErr.Error(),
			})
		}
		for _, probe := range []struct {
			collection string
			rows       int
		}{
			{"organisationUnits", len(bundle.OrgUnits)},
			{"programs", len(bundle.Programs)},
			{"dataSets", len(bundle.DataSets)},
		} {
			if probe.rows == 0 {
				nonCritical = append(nonCritical, models.SyncFailure{
					Collection: probe.collection,
					Reason:     "collection is empty after download",
				})
			}
		}
		return nil
	})
	if err != nil {
		// One critical failure for the whole phase, not one per attempt.
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrMetadataSyncFailed, attempt, err)
	}

	if err = m.persist(ctx, st, engine.Metadata()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataSyncFailed, err)
	}

	report(metadataProgressFloor+metadataProgressSpan, "metadata stored")
	return nonCritical, nil
}

// persist writes the downloaded bundle into the account store. A collection
// the server returned empty never overwrites local rows: partial server
// responses must not degrade an installation that already has usable
// reference data.
func (m *metadataSyncEngine) persist(ctx context.Context, st store.Store, bundle models.MetadataBundle) error {
	repo := st.Metadata()

	if err := m.replaceGuarded(ctx, "organisationUnits", len(bundle.OrgUnits),
		func() (int64, error) { return repo.CountOrgUnits(ctx) },
		func() error { return repo.ReplaceOrgUnits(ctx, bundle.OrgUnits) },
	); err != nil {
		return err
	}
	if err := m.replaceGuarded(ctx, "programs", len(bundle.Programs),
		func() (int64, error) { return repo.CountPrograms(ctx) },
		func() error { return repo.ReplacePrograms(ctx, bundle.Programs) },
	); err != nil {
		return err
	}
	return m.replaceGuarded(ctx, "dataSets", len(bundle.DataSets),
		func() (int64, error) { return repo.CountDataSets(ctx) },
		func() error { return repo.ReplaceDataSets(ctx, bundle.DataSets) },
	)
}

func (m *metadataSyncEngine) replaceGuarded(ctx context.Context, collection string, incoming int, count func() (int64, error), replace func() error) error {
	if incoming == 0 {
		existing, err := count()
		if err != nil {
			return fmt.Errorf("count %s: %w", collection, err)
		}
		if existing > 0 {
			m.logger.Warn().
				Str("collection", collection).
				Int64("local_rows", existing).
				Msg("remote returned empty collection, keeping local rows")
			return nil
		}
	}
	if err := replace(); err != nil {
		return fmt.Errorf("persist %s: %w", collection, err)
	}
	return nil
}
