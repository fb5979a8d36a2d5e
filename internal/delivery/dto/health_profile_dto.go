package dto

import (
	"time"

	"go-health-companion/internal/domain/entity"
)

// SaveDataRequest carries the multipart form fields of POST /api/save_data.
type SaveDataRequest struct {
	ID   string `validate:"required,max=255"`
	Data string `validate:"required,json"`
}

type SaveDataResponse struct {
	Message string `json:"message"`
}

type HealthProfileResponse struct {
	UserID    string          `json:"user_id"`
	Profile   *entity.Profile `json:"profile"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
