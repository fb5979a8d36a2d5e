package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/intake"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// serviceTokenHeader carries the shared secret expected by save_data.
const serviceTokenHeader = "X-Service-Token"

// SaveSuccessMessage is the only message body the collaborator sends on success.
const SaveSuccessMessage = "Data saved successfully"

type saveResponse struct {
	Message string `json:"message"`
}

// ProfileSaver submits completed intake profiles to the save_data endpoint as
// a multipart form with fields "id" and "data".
type ProfileSaver struct {
	client *resty.Client
	url    string
	log    *logrus.Logger
}

func NewProfileSaver(url, secret string, timeout time.Duration, retries int, log *logrus.Logger) *ProfileSaver {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(3*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader(serviceTokenHeader, secret)

	return &ProfileSaver{client: client, url: url, log: log}
}

// SaveProfile never returns success unless the endpoint answered 2xx with
// the expected message.
func (s *ProfileSaver) SaveProfile(ctx context.Context, userID string, profile *entity.Profile) intake.SaveOutcome {
	data, err := json.Marshal(profile)
	if err != nil {
		return intake.Failed(fmt.Sprintf("encode profile: %v", err))
	}

	var body saveResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"id":   userID,
			"data": string(data),
		}).
		SetResult(&body).
		ForceContentType("application/json").
		Post(s.url)
	if err != nil {
		s.log.Warnf("Failed to call save_data for %s: %+v", userID, err)
		return intake.Failed(fmt.Sprintf("request failed: %v", err))
	}

	if !resp.IsSuccess() {
		s.log.Warnf("save_data for %s answered %d", userID, resp.StatusCode())
		return intake.Failed(fmt.Sprintf("unexpected status %d", resp.StatusCode()))
	}
	if body.Message != SaveSuccessMessage {
		s.log.Warnf("save_data for %s answered unexpected message %q", userID, body.Message)
		return intake.Failed(fmt.Sprintf("unexpected response message %q", body.Message))
	}

	return intake.Succeeded()
}
