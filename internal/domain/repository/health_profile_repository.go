package repository

import (
	"context"

	"go-health-companion/internal/domain/entity"

	"gorm.io/gorm"
)

type HealthProfileRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, profile *entity.HealthProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*entity.HealthProfile, error)
}
