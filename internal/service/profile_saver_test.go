package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/intake"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestProfileSaver_Success(t *testing.T) {
	profile := intake.DemoProfile(0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "save-secret", r.Header.Get("X-Service-Token"))
		assert.Equal(t, "user_1", r.FormValue("id"))

		var got entity.Profile
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &got))
		assert.Equal(t, profile, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Data saved successfully"}`))
	}))
	defer srv.Close()

	saver := NewProfileSaver(srv.URL, "save-secret", time.Second, 0, quietLogger())
	outcome := saver.SaveProfile(context.Background(), "user_1", profile)

	assert.True(t, outcome.Succeeded())
}

func TestProfileSaver_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"message":"Data saved successfully"}`},
		{name: "wrong message", status: http.StatusOK, body: `{"message":"ok"}`},
		{name: "not json", status: http.StatusOK, body: `saved`},
		{name: "bad service token", status: http.StatusUnauthorized, body: `{"success":false,"message":"Invalid service token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			saver := NewProfileSaver(srv.URL, "save-secret", time.Second, 0, quietLogger())
			outcome := saver.SaveProfile(context.Background(), "user_1", entity.NewProfile())

			assert.False(t, outcome.Succeeded())
			assert.NotEmpty(t, outcome.Reason)
		})
	}
}

func TestProfileSaver_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	saver := NewProfileSaver(url, "save-secret", time.Second, 0, quietLogger())
	outcome := saver.SaveProfile(context.Background(), "user_1", entity.NewProfile())

	assert.Equal(t, intake.SaveFailed, outcome.Status)
}
