package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/domain/repository"
	"go-health-companion/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrHealthProfileNotFound = errors.New("health profile not found")
	ErrInvalidProfileData    = errors.New("invalid profile data")
)

type HealthProfileUsecase interface {
	SaveData(ctx context.Context, req *dto.SaveDataRequest) error
	GetProfile(ctx context.Context) (*dto.HealthProfileResponse, error)
}

type healthProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	healthProfileRepo repository.HealthProfileRepository
	auditService      service.AuditService
}

func NewHealthProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	healthProfileRepo repository.HealthProfileRepository,
	auditService service.AuditService,
) HealthProfileUsecase {
	return &healthProfileUsecase{
		db:                db,
		log:               log,
		healthProfileRepo: healthProfileRepo,
		auditService:      auditService,
	}
}

// SaveData stores the submitted profile as the user's server-side copy,
// replacing any previous one.
func (u *healthProfileUsecase) SaveData(ctx context.Context, req *dto.SaveDataRequest) error {
	profile := entity.NewProfile()
	if err := json.Unmarshal([]byte(req.Data), profile); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfileData, err)
	}
	profile.Normalize()

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfileData, err)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.healthProfileRepo.FindByUserID(ctx, tx, req.ID)
	if err != nil {
		u.log.Warnf("Failed to find health profile: %+v", err)
		return err
	}

	row := &entity.HealthProfile{
		UserID: req.ID,
		Data:   datatypes.JSON(data),
	}
	if err := u.healthProfileRepo.Upsert(ctx, tx, row); err != nil {
		u.log.Warnf("Failed to save health profile: %+v", err)
		return err
	}

	if existing == nil {
		err = u.auditService.LogCreate(ctx, tx, req.ID, entity.AuditActionProfileSave, "health_profile", req.ID, profile)
	} else {
		err = u.auditService.LogUpdate(ctx, tx, req.ID, entity.AuditActionProfileSave, "health_profile", req.ID, existing.Data, profile)
	}
	if err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Health profile saved for %s", req.ID)
	return nil
}

func (u *healthProfileUsecase) GetProfile(ctx context.Context) (*dto.HealthProfileResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	row, err := u.healthProfileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find health profile: %+v", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrHealthProfileNotFound
	}

	profile, err := row.Profile()
	if err != nil {
		u.log.Warnf("Stored health profile for %s is unreadable: %+v", userID, err)
		return nil, ErrHealthProfileNotFound
	}

	return converter.HealthProfileToResponse(row, profile), nil
}
