package converter

import (
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
)

// HealthProfileToResponse converts a stored HealthProfile row to HealthProfileResponse DTO
func HealthProfileToResponse(row *entity.HealthProfile, profile *entity.Profile) *dto.HealthProfileResponse {
	if row == nil {
		return nil
	}

	return &dto.HealthProfileResponse{
		UserID:    row.UserID,
		Profile:   profile,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
