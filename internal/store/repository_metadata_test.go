package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestMetadataRepository_ReplaceOrgUnits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetadataRepository(db, logger.Nop())

	rows := []models.OrgUnit{
		{UID: "ou1", Name: "Kampala", Level: 2, ParentID: "ou0"},
		{UID: "ou2", Name: "Gulu", Level: 2, ParentID: "ou0"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM org_units").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO org_units").
		WithArgs("ou1", "Kampala", 2, "ou0").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO org_units").
		WithArgs("ou2", "Gulu", 2, "ou0").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceOrgUnits(context.Background(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetadataRepository_ReplaceOrgUnits_RollsBackOnInsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetadataRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM org_units").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO org_units").
		WithArgs("ou1", "Kampala", 2, "").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.ReplaceOrgUnits(context.Background(), []models.OrgUnit{{UID: "ou1", Name: "Kampala", Level: 2}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetadataRepository_ReplacePrograms_EmptySliceClearsTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetadataRepository(db, logger.Nop())

	// Пустой срез — таблица очищается без вставок. Защита от затирания
	// живёт уровнем выше, в сервисе синхронизации.
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM programs").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplacePrograms(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetadataRepository_Counts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMetadataRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM org_units").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := repo.CountOrgUnits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_ReplaceTrackerEvents_ScopedToProgram(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecordRepository(db, logger.Nop())

	events := []models.TrackerEvent{
		{UID: "ev1", ProgramID: "prg1", OrgUnitID: "ou1", Status: "COMPLETED"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tracker_events\\s+WHERE program_uid").
		WithArgs("prg1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO tracker_events").
		WithArgs("ev1", "prg1", "ou1", "COMPLETED", events[0].OccurredAt, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceTrackerEvents(context.Background(), "prg1", events))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_CountTrackerEvents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecordRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM tracker_events").
		WithArgs("prg1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.CountTrackerEvents(context.Background(), "prg1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}
