package store

import (
	"context"
	"fmt"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
)

// accountStore bundles one account's database handle with its repositories.
type accountStore struct {
	name     string
	db       *DB
	metadata MetadataRepository
	records  RecordRepository
}

// NewAccountStore wraps an already opened and migrated database handle as a
// [Store] named after the account's local store file.
func NewAccountStore(name string, db *DB, log *logger.Logger) Store {
	return &accountStore{
		name:     name,
		db:       db,
		metadata: NewMetadataRepository(db, log),
		records:  NewRecordRepository(db, log),
	}
}

func (s *accountStore) Name() string { return s.name }

func (s *accountStore) Metadata() MetadataRepository { return s.metadata }

func (s *accountStore) Records() RecordRepository { return s.records }

func (s *accountStore) ClearAllTables(ctx context.Context) error {
	for _, q := range []string{
		deleteAllTrackerEvents,
		deleteAllDataValues,
		deleteAllDataSets,
		deleteAllPrograms,
		deleteAllOrgUnits,
	} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear tables in %s: %w", s.name, err)
		}
	}
	return nil
}

func (s *accountStore) Close() error {
	return s.db.Close()
}
