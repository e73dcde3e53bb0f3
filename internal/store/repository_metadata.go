package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

// metadataRepository is the SQLite-backed implementation of
// [MetadataRepository]. Every Replace* method runs delete-then-insert inside
// one transaction so readers never observe a half-swapped collection.
type metadataRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewMetadataRepository(db *DB, logger *logger.Logger) MetadataRepository {
	logger.Debug().Msg("creating metadata repository")
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

func (r *metadataRepository) ReplaceOrgUnits(ctx context.Context, rows []models.OrgUnit) error {
	return r.replace(ctx, "org_units", deleteAllOrgUnits, len(rows), func(tx sq.BaseRunner) error {
		for _, ou := range rows {
			_, err := sq.Insert("org_units").
				Columns("uid", "name", "level", "parent_uid").
				Values(ou.UID, ou.Name, ou.Level, ou.ParentID).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("insert org unit %s: %w", ou.UID, err)
			}
		}
		return nil
	})
}

func (r *metadataRepository) ReplacePrograms(ctx context.Context, rows []models.Program) error {
	return r.replace(ctx, "programs", deleteAllPrograms, len(rows), func(tx sq.BaseRunner) error {
		for _, p := range rows {
			_, err := sq.Insert("programs").
				Columns("uid", "name", "program_type").
				Values(p.UID, p.Name, p.ProgramType).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("insert program %s: %w", p.UID, err)
			}
		}
		return nil
	})
}

func (r *metadataRepository) ReplaceDataSets(ctx context.Context, rows []models.DataSet) error {
	return r.replace(ctx, "data_sets", deleteAllDataSets, len(rows), func(tx sq.BaseRunner) error {
		for _, ds := range rows {
			_, err := sq.Insert("data_sets").
				Columns("uid", "name", "period_type").
				Values(ds.UID, ds.Name, ds.PeriodType).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("insert data set %s: %w", ds.UID, err)
			}
		}
		return nil
	})
}

func (r *metadataRepository) CountOrgUnits(ctx context.Context) (int64, error) {
	return r.count(ctx, countOrgUnits)
}

func (r *metadataRepository) CountPrograms(ctx context.Context) (int64, error) {
	return r.count(ctx, countPrograms)
}

func (r *metadataRepository) CountDataSets(ctx context.Context) (int64, error) {
	return r.count(ctx, countDataSets)
}

func (r *metadataRepository) replace(ctx context.Context, table, deleteQuery string, incoming int, insert func(tx sq.BaseRunner) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*metadataRepository.replace").Msg("error: begin transaction")
		return fmt.Errorf("begin replace of %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteQuery); err != nil {
		log.Err(err).Str("func", "*metadataRepository.replace").Msg("error: clearing table")
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err = insert(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of %s: %w", table, err)
	}

	log.Debug().Str("table", table).Int("rows", incoming).Msg("collection replaced")
	return nil
}

func (r *metadataRepository) count(ctx context.Context, query string) (int64, error) {
	log := logger.FromContext(ctx)

	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		log.Err(err).Str("func", "*metadataRepository.count").Msg("error: scanning error")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return n, nil
}
