package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/delivery/http/middleware"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/repository"
	"go-health-companion/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (a *recordingAudit) add(action string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) LogCreate(_ context.Context, _ *gorm.DB, _ string, action, _, _ string, _ any) error {
	return a.add(action)
}

func (a *recordingAudit) LogUpdate(_ context.Context, _ *gorm.DB, _ string, action, _, _ string, _, _ any) error {
	return a.add(action)
}

func (a *recordingAudit) LogDelete(_ context.Context, _ *gorm.DB, _ string, action, _, _ string, _ any) error {
	return a.add(action)
}

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

func userCtx() context.Context {
	return middleware.WithUserID(context.Background(), "user_1")
}

func TestAppointmentUsecase_Lifecycle(t *testing.T) {
	client, _ := newRedis(t)
	audit := &recordingAudit{}
	uc := NewAppointmentUsecase(nil, quietLogger(), storage.NewRedisStore(client, 0), audit, nil)
	ctx := userCtx()

	first, err := uc.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientName: "Jane", DoctorName: "Dr. Rao", Date: "2026-11-02", Time: "09:30", Type: "Checkup",
	})
	require.NoError(t, err)
	second, err := uc.CreateAppointment(ctx, &dto.CreateAppointmentRequest{
		PatientName: "Jane", DoctorName: "Dr. Lee", Date: "2026-11-05", Time: "14:00", Type: "Dental",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), first.Status)

	cancelled, err := uc.CancelAppointment(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), cancelled.Status)
	assert.Equal(t, []string{entity.AuditActionAppointmentCancel}, audit.actions)

	_, err = uc.CancelAppointment(ctx, first.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotScheduled)
	_, err = uc.CompleteAppointment(ctx, first.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotScheduled)

	done, err := uc.CompleteAppointment(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), done.Status)

	require.NoError(t, uc.DeleteAppointment(ctx, first.ID))
	assert.ErrorIs(t, uc.DeleteAppointment(ctx, first.ID), ErrAppointmentNotFound)

	list, err := uc.GetAllAppointments(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, second.ID, list.Appointments[0].ID)
}

func TestAppointmentUsecase_IsolatedPerUser(t *testing.T) {
	client, _ := newRedis(t)
	uc := NewAppointmentUsecase(nil, quietLogger(), storage.NewRedisStore(client, 0), &recordingAudit{}, nil)

	created, err := uc.CreateAppointment(userCtx(), &dto.CreateAppointmentRequest{
		PatientName: "Jane", DoctorName: "Dr. Rao", Date: "2026-11-02", Time: "09:30", Type: "Checkup",
	})
	require.NoError(t, err)

	other := middleware.WithUserID(context.Background(), "user_2")
	_, err = uc.CancelAppointment(other, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDashboardUsecase(t *testing.T) {
	client, _ := newRedis(t)
	kv := storage.NewRedisStore(client, 0)
	db, mock := newMockDB(t)
	ctx := userCtx()

	goals := storage.NewCollection[entity.Goal](kv, storage.FeatureGoals)
	require.NoError(t, goals.Replace(ctx, "user_1", []entity.Goal{
		{ID: "g1", Status: entity.GoalStatusPending},
		{ID: "g2", Status: entity.GoalStatusCompleted},
		{ID: "g3", Status: entity.GoalStatusInProgress},
		{ID: "g4", Status: entity.GoalStatusCompleted},
	}))
	appointments := storage.NewCollection[entity.Appointment](kv, storage.FeatureAppointments)
	require.NoError(t, appointments.Replace(ctx, "user_1", []entity.Appointment{
		{ID: "a1", Date: "2026-10-20", Time: "10:00", Status: entity.AppointmentStatusScheduled},
		{ID: "a2", Date: "2026-10-16", Time: "15:00", Status: entity.AppointmentStatusScheduled},
		{ID: "a3", Date: "2026-10-16", Time: "09:00", Status: entity.AppointmentStatusScheduled},
		{ID: "a4", Date: "2026-10-01", Time: "09:00", Status: entity.AppointmentStatusScheduled},
		{ID: "a5", Date: "2026-11-01", Time: "09:00", Status: entity.AppointmentStatusScheduled},
		{ID: "a6", Date: "2026-10-18", Time: "09:00", Status: entity.AppointmentStatusCancelled},
	}))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "document_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	uc := NewDashboardUsecase(db, quietLogger(), newRegistry(t, kv), kv, repository.NewDocumentRecordRepository()).(*dashboardUsecase)
	uc.now = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) }

	got, err := uc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, got.CompletionPercent)
	assert.Equal(t, dto.GoalCounts{Total: 4, Pending: 1, InProgress: 1, Completed: 2}, got.Goals)
	assert.Equal(t, dto.AppointmentCounts{Scheduled: 5, Cancelled: 1}, got.Appointments)
	require.Len(t, got.UpcomingAppointments, 3)
	assert.Equal(t, "a3", got.UpcomingAppointments[0].ID)
	assert.Equal(t, "a2", got.UpcomingAppointments[1].ID)
	assert.Equal(t, "a1", got.UpcomingAppointments[2].ID)
	assert.Equal(t, int64(7), got.Documents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardUsecase_SourceFailure(t *testing.T) {
	client, _ := newRedis(t)
	kv := storage.NewRedisStore(client, 0)
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "document_records"`).WillReturnError(assert.AnError)

	uc := NewDashboardUsecase(db, quietLogger(), newRegistry(t, kv), kv, repository.NewDocumentRecordRepository())
	_, err := uc.GetDashboard(userCtx())
	assert.Error(t, err)
}

func TestGoalUsecase_SuggestionsDefault(t *testing.T) {
	client, _ := newRedis(t)
	uc := NewGoalUsecase(quietLogger(), storage.NewRedisStore(client, 0), nil)

	got, err := uc.GetSuggestions(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, string(entity.GoalCategoryFitness), got.Category)

	_, err = uc.CreateGoal(userCtx(), &dto.CreateGoalRequest{Title: "x", Category: "fitness", TargetDate: "31/12/2026"})
	assert.ErrorIs(t, err, ErrInvalidTargetDate)
}

func TestAuditLogUsecase_GetActivityEntry(t *testing.T) {
	db, mock := newMockDB(t)
	uc := NewAuditLogUsecase(db, quietLogger(), repository.NewAuditLogRepository())
	columns := []string{"id", "user_id", "action", "metadata", "created_at"}

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE "audit_logs"."id" = `).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(4, "user_1", entity.AuditActionDocumentCreate, []byte(`{"entity":"document"}`), time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE "audit_logs"."id" = `).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(5, "user_2", entity.AuditActionDocumentCreate, []byte(`{}`), time.Now()))

	entry, err := uc.GetActivityEntry(userCtx(), 4)
	require.NoError(t, err)
	assert.Equal(t, "document", entry.Metadata["entity"])

	_, err = uc.GetActivityEntry(userCtx(), 5)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogUsecase_GetActivityCapsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	uc := NewAuditLogUsecase(db, quietLogger(), repository.NewAuditLogRepository())

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE user_id = .+ ORDER BY created_at DESC LIMIT`).
		WithArgs("user_1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action", "metadata", "created_at"}))

	got, err := uc.GetActivity(userCtx(), 500)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
