package repository

import (
	"context"
	"errors"

	"go-health-companion/internal/domain/entity"
	domainRepo "go-health-companion/internal/domain/repository"

	"gorm.io/gorm"
)

type documentRecordRepository struct{}

func NewDocumentRecordRepository() domainRepo.DocumentRecordRepository {
	return &documentRecordRepository{}
}

// Save inserts or overwrites the record with the same id.
func (r *documentRecordRepository) Save(ctx context.Context, db *gorm.DB, record *entity.DocumentRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *documentRecordRepository) FindByID(ctx context.Context, db *gorm.DB, userID, id string) (*entity.DocumentRecord, error) {
	var record entity.DocumentRecord
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ExistsByID reports whether any user owns a record with this id.
func (r *documentRecordRepository) ExistsByID(ctx context.Context, db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DocumentRecord{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *documentRecordRepository) FindAll(ctx context.Context, db *gorm.DB, userID string) ([]entity.DocumentRecord, error) {
	var records []entity.DocumentRecord
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("upload_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Delete reports whether a row was removed.
func (r *documentRecordRepository) Delete(ctx context.Context, db *gorm.DB, userID, id string) (bool, error) {
	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.DocumentRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *documentRecordRepository) CountByUserID(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.DocumentRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
