package usecase

import (
	"context"
	"errors"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

const defaultActivityLimit = 50

type AuditLogUsecase interface {
	GetActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
	GetActivityEntry(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// GetActivity lists the current user's audit trail, newest first.
func (u *auditLogUsecase) GetActivity(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > defaultActivityLimit {
		limit = defaultActivityLimit
	}

	logs, err := u.auditLogRepo.FindByUserID(u.db.WithContext(ctx), userID, limit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetActivityEntry(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	// Another user's entry is reported as missing.
	if auditLog == nil || auditLog.UserID != userID {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
