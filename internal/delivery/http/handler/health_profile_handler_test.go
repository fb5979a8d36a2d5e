package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-health-companion/internal/delivery/http/middleware"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/repository"
	"go-health-companion/internal/service"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/validator"

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

func newHealthProfileHandler(db *gorm.DB) *HealthProfileHandler {
	log := quietLogger()
	audit := service.NewAuditService(log, repository.NewAuditLogRepository())
	uc := usecase.NewHealthProfileUsecase(db, log, repository.NewHealthProfileRepository(), audit)
	return NewHealthProfileHandler(uc, validator.NewValidator())
}

func multipartSaveRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/save_data", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthProfileHandler_SaveData(t *testing.T) {
	db, mock := newMockDB(t)
	h := newHealthProfileHandler(db)

	data, err := json.Marshal(intake.DemoProfile(0))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "health_profiles" WHERE user_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "data", "created_at", "updated_at"}))
	mock.ExpectExec(`INSERT INTO "health_profiles" .+ ON CONFLICT \("user_id"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	rec := httptest.NewRecorder()
	h.SaveData(rec, multipartSaveRequest(t, map[string]string{"id": "user_1", "data": string(data)}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Data saved successfully"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProfileHandler_SaveDataURLEncoded(t *testing.T) {
	db, mock := newMockDB(t)
	h := newHealthProfileHandler(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "health_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "data", "created_at", "updated_at"}).
			AddRow("user_1", []byte(`{}`), time.Now(), time.Now()))
	mock.ExpectExec(`INSERT INTO "health_profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	form := url.Values{"id": {"user_1"}, "data": {`{"personal_details":{"name":"Jane","email":"j@x.com"}}`}}
	req := httptest.NewRequest(http.MethodPost, "/api/save_data", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.SaveData(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProfileHandler_SaveDataSurvivesAuditFailure(t *testing.T) {
	db, mock := newMockDB(t)
	h := newHealthProfileHandler(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "health_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "data", "created_at", "updated_at"}))
	mock.ExpectExec(`INSERT INTO "health_profiles"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).WillReturnError(assert.AnError)
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT audit_log`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rec := httptest.NewRecorder()
	h.SaveData(rec, multipartSaveRequest(t, map[string]string{"id": "user_1", "data": `{}`}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProfileHandler_SaveDataRequiresServiceToken(t *testing.T) {
	db, mock := newMockDB(t)
	h := middleware.NewServiceAuthMiddleware("save-secret").Authenticate(http.HandlerFunc(newHealthProfileHandler(db).SaveData))

	for _, token := range []string{"", "wrong"} {
		req := multipartSaveRequest(t, map[string]string{"id": "victim", "data": `{}`})
		if token != "" {
			req.Header.Set(middleware.ServiceTokenHeader, token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "token %q", token)
		assert.NotContains(t, rec.Body.String(), service.SaveSuccessMessage)
	}
	// Nothing reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProfileHandler_SaveDataRejects(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "missing id", fields: map[string]string{"data": `{}`}},
		{name: "missing data", fields: map[string]string{"id": "user_1"}},
		{name: "data not json", fields: map[string]string{"id": "user_1", "data": "name=Jane"}},
		{name: "data wrong shape", fields: map[string]string{"id": "user_1", "data": `{"personal_details":[]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			h := newHealthProfileHandler(db)

			rec := httptest.NewRecorder()
			h.SaveData(rec, multipartSaveRequest(t, tt.fields))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotContains(t, rec.Body.String(), service.SaveSuccessMessage)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthProfileHandler_GetProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	h := newHealthProfileHandler(db)

	mock.ExpectQuery(`SELECT \* FROM "health_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "data", "created_at", "updated_at"}))

	rec := serve(h.GetProfile, http.MethodGet, "/profile", "/profile", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
