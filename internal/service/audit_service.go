package service

import (
	"context"

	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const auditSavePoint = "audit_log"

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, newValue any) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, oldValue, newValue any) error
	LogDelete(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, oldValue any) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, newValue any) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, nil, newValue)
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, oldValue, newValue any) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, userID string, action string, entityName string, entityID string, oldValue any) error {
	return s.write(ctx, tx, userID, action, entityName, entityID, oldValue, nil)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID, action, entityName, entityID string, oldValue, newValue any) error {
	auditLog := &entity.AuditLog{
		UserID: userID,
		Action: action,
		Metadata: datatypes.JSONMap{
			"entity":    entityName,
			"entity_id": entityID,
			"old_value": oldValue,
			"new_value": newValue,
		},
	}

	db := tx.WithContext(ctx)
	if !inTransaction(db) {
		if err := s.auditRepo.Create(db, auditLog); err != nil {
			s.log.Warnf("Failed to create audit log: %+v", err)
			return err
		}
		return nil
	}

	// A failed insert would abort the caller's transaction; the savepoint
	// keeps the caller's writes committable.
	if err := db.SavePoint(auditSavePoint).Error; err != nil {
		s.log.Warnf("Failed to create audit savepoint: %+v", err)
		return err
	}
	if err := s.auditRepo.Create(db, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		if rbErr := db.RollbackTo(auditSavePoint).Error; rbErr != nil {
			s.log.Warnf("Failed to roll back audit savepoint: %+v", rbErr)
		}
		return err
	}

	return nil
}

func inTransaction(db *gorm.DB) bool {
	committer, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok && committer != nil
}
