package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

// recordRepository is the SQLite-backed implementation of [RecordRepository].
type recordRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *recordRepository) ReplaceDataValues(ctx context.Context, rows []models.DataValue) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ReplaceDataValues").Msg("error: begin transaction")
		return fmt.Errorf("begin replace of data_values: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteAllDataValues); err != nil {
		return fmt.Errorf("clear data_values: %w", err)
	}
	for _, dv := range rows {
		_, err = sq.Insert("data_values").
			Columns("data_element_uid", "period", "org_unit_uid", "category_combo", "value", "stored_at").
			Values(dv.DataElementID, dv.Period, dv.OrgUnitID, dv.CategoryCombo, dv.Value, dv.StoredAt).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert data value %s/%s: %w", dv.DataElementID, dv.Period, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of data_values: %w", err)
	}

	log.Debug().Int("rows", len(rows)).Msg("data values replaced")
	return nil
}

func (r *recordRepository) ReplaceTrackerEvents(ctx context.Context, programID string, rows []models.TrackerEvent) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ReplaceTrackerEvents").Msg("error: begin transaction")
		return fmt.Errorf("begin replace of tracker_events: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteTrackerEventsByProgram, programID); err != nil {
		return fmt.Errorf("clear tracker_events for program %s: %w", programID, err)
	}
	for _, ev := range rows {
		_, err = sq.Insert("tracker_events").
			Columns("uid", "program_uid", "org_unit_uid", "status", "occurred_at", "data_json").
			Values(ev.UID, programID, ev.OrgUnitID, ev.Status, ev.OccurredAt, ev.DataJSON).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert tracker event %s: %w", ev.UID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace of tracker_events: %w", err)
	}

	log.Debug().Str("program", programID).Int("rows", len(rows)).Msg("tracker events replaced")
	return nil
}

func (r *recordRepository) CountDataValues(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var n int64
	if err := r.db.QueryRowContext(ctx, countDataValues).Scan(&n); err != nil {
		log.Err(err).Str("func", "*recordRepository.CountDataValues").Msg("error: scanning error")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return n, nil
}

func (r *recordRepository) CountTrackerEvents(ctx context.Context, programID string) (int64, error) {
	log := logger.FromContext(ctx)

	var n int64
	if err := r.db.QueryRowContext(ctx, countTrackerEventsByProgram, programID).Scan(&n); err != nil {
		log.Err(err).Str("func", "*recordRepository.CountTrackerEvents").Msg("error: scanning error")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}
	return n, nil
}
