package repository

import (
	"context"
	"testing"
	"time"

	"go-health-companion/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var documentColumns = []string{"id", "user_id", "name", "type", "category", "file_type", "file_size", "remote_url", "remote_id", "preview", "upload_date"}

func TestDocumentRecordRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(`SELECT \* FROM "document_records" WHERE user_id = .+ ORDER BY upload_date DESC`).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("doc_2", "user_1", "MRI.pdf", "Report", "Radiology", "application/pdf", "1.2 MB", "https://files/x", "x", "", now).
			AddRow("doc_1", "user_1", "Blood.png", "Lab", "Lab Results", "image/png", "200 KB", "", "", "data:image/png;base64,AA", now.Add(-time.Hour)))

	records, err := repo.FindAll(context.Background(), db, "user_1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "doc_2", records[0].ID)
	assert.True(t, records[0].HasRemoteCopy())
	assert.False(t, records[1].HasRemoteCopy())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRecordRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()

	mock.ExpectQuery(`SELECT \* FROM "document_records" WHERE \(?id = .+ AND user_id = `).
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("doc_1", "user_1", "Blood.png", "Lab", "Lab Results", "image/png", "200 KB", "", "", "", time.Now()))

	record, err := repo.FindByID(context.Background(), db, "user_1", "doc_1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Blood.png", record.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRecordRepository_FindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()

	mock.ExpectQuery(`SELECT \* FROM "document_records"`).
		WillReturnRows(sqlmock.NewRows(documentColumns))

	record, err := repo.FindByID(context.Background(), db, "user_1", "nope")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestDocumentRecordRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()

	mock.ExpectExec(`DELETE FROM "document_records"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "document_records"`).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), db, "user_1", "doc_1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), db, "user_1", "doc_1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDocumentRecordRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "document_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByUserID(context.Background(), db, "user_1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDocumentRecordRepository_ExistsByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRecordRepository()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "document_records" WHERE id = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsByID(context.Background(), db, "doc_1")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProfileRepository_FindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHealthProfileRepository()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "health_profiles" WHERE user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "data", "created_at", "updated_at"}).
			AddRow("user_1", []byte(`{"personal_details":{"name":"Jane","email":"j@x.com"}}`), now, now))

	row, err := repo.FindByUserID(context.Background(), db, "user_1")
	require.NoError(t, err)
	require.NotNil(t, row)

	profile, err := row.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane", profile.PersonalDetails.Name)
	assert.NotNil(t, profile.MedicalHistory.Allergies)
}

func TestHealthProfileRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHealthProfileRepository()

	mock.ExpectExec(`INSERT INTO "health_profiles" .+ ON CONFLICT \("user_id"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), db, &entity.HealthProfile{
		UserID: "user_1",
		Data:   datatypes.JSON(`{}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_FindByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuditLogRepository()

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE user_id = .+ ORDER BY created_at DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "metadata", "created_at"}).
			AddRow(2, "user_1", entity.AuditActionProfileSave, []byte(`{"entity":"health_profile"}`), time.Now()))

	logs, err := repo.FindByUserID(db, "user_1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "health_profile", logs[0].Metadata["entity"])
}
