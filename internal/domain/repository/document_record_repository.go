package repository

import (
	"context"

	"go-health-companion/internal/domain/entity"

	"gorm.io/gorm"
)

// DocumentRecordRepository stores document metadata. Every lookup is scoped
// to the owning user.
type DocumentRecordRepository interface {
	Save(ctx context.Context, db *gorm.DB, record *entity.DocumentRecord) error
	FindByID(ctx context.Context, db *gorm.DB, userID, id string) (*entity.DocumentRecord, error)
	ExistsByID(ctx context.Context, db *gorm.DB, id string) (bool, error)
	FindAll(ctx context.Context, db *gorm.DB, userID string) ([]entity.DocumentRecord, error)
	Delete(ctx context.Context, db *gorm.DB, userID, id string) (bool, error)
	CountByUserID(ctx context.Context, db *gorm.DB, userID string) (int64, error)
}
