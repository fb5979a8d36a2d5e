package service

import (
	"context"
	"testing"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestAuditService_OutsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditService(quietLogger(), repository.NewAuditLogRepository())

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := svc.LogCreate(context.Background(), db, "user_1", entity.AuditActionIntakeComplete, "health_profile", "user_1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditService_FailureKeepsTransactionUsable(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAuditService(quietLogger(), repository.NewAuditLogRepository())

	mock.ExpectBegin()
	mock.ExpectExec(`SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnError(assert.AnError)
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx := db.Begin()
	err := svc.LogDelete(context.Background(), tx, "user_1", entity.AuditActionDocumentDelete, "document", "doc_1", nil)
	assert.ErrorIs(t, err, assert.AnError)

	require.NoError(t, tx.Commit().Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
