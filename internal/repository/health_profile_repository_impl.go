package repository

import (
	"context"
	"errors"

	"go-health-companion/internal/domain/entity"
	domainRepo "go-health-companion/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type healthProfileRepository struct{}

func NewHealthProfileRepository() domainRepo.HealthProfileRepository {
	return &healthProfileRepository{}
}

// Upsert inserts the row or replaces its data when the user already has one.
func (r *healthProfileRepository) Upsert(ctx context.Context, db *gorm.DB, profile *entity.HealthProfile) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(profile).Error
}

func (r *healthProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID string) (*entity.HealthProfile, error) {
	var profile entity.HealthProfile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
