package store

import (
	"context"

	"github.com/HISP-Uganda/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MetadataRepository is the account store's view of the reference
// collections needed before record-level data is usable.
type MetadataRepository interface {
	// ReplaceOrgUnits atomically swaps the stored organisational units for
	// the given rows. Callers are responsible for never passing an empty
	// slice when the existing rows must be preserved.
	ReplaceOrgUnits(ctx context.Context, rows []models.OrgUnit) error
	ReplacePrograms(ctx context.Context, rows []models.Program) error
	ReplaceDataSets(ctx context.Context, rows []models.DataSet) error

	CountOrgUnits(ctx context.Context) (int64, error)
	CountPrograms(ctx context.Context) (int64, error)
	CountDataSets(ctx context.Context) (int64, error)
}

// RecordRepository is the account store's view of captured record data.
type RecordRepository interface {
	// ReplaceDataValues atomically swaps all stored aggregate values.
	ReplaceDataValues(ctx context.Context, rows []models.DataValue) error
	// ReplaceTrackerEvents atomically swaps the stored events of one
	// program, leaving other programs' events untouched.
	ReplaceTrackerEvents(ctx context.Context, programID string, rows []models.TrackerEvent) error

	CountDataValues(ctx context.Context) (int64, error)
	CountTrackerEvents(ctx context.Context, programID string) (int64, error)
}

// Store is one open account-scoped persistent store.
type Store interface {
	// Name is the account's local store name the handle was opened for.
	Name() string

	Metadata() MetadataRepository
	Records() RecordRepository

	// ClearAllTables empties every table without dropping the schema.
	ClearAllTables(ctx context.Context) error

	// Close releases the underlying database handle.
	Close() error
}
