package usecase

import (
	"context"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/service"

	"github.com/sirupsen/logrus"
)

type InsightUsecase interface {
	GetHealthPlan(ctx context.Context, req *dto.HealthPlanRequest) (*service.HealthPlan, error)
	AnalyzeMedicine(ctx context.Context, req *dto.AnalyzeMedicineRequest) (*service.MedicineInfo, error)
}

type insightUsecase struct {
	log            *logrus.Logger
	registry       *intake.Registry
	insightService  *service.InsightService
	medicineService *service.MedicineService
}

func NewInsightUsecase(log *logrus.Logger, registry *intake.Registry, insightService *service.InsightService, medicineService *service.MedicineService) InsightUsecase {
	return &insightUsecase{
		log:             log,
		registry:        registry,
		insightService:  insightService,
		medicineService: medicineService,
	}
}

// GetHealthPlan builds the plan from the user's current intake profile.
func (u *insightUsecase) GetHealthPlan(ctx context.Context, req *dto.HealthPlanRequest) (*service.HealthPlan, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	ctrl, err := u.registry.Get(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load intake session: %+v", err)
		return nil, err
	}

	return u.insightService.HealthPlan(ctx, userID, ctrl.Snapshot().Profile, req.Note, req.Refresh)
}

func (u *insightUsecase) AnalyzeMedicine(ctx context.Context, req *dto.AnalyzeMedicineRequest) (*service.MedicineInfo, error) {
	if _, err := currentUserID(ctx); err != nil {
		return nil, err
	}
	return u.medicineService.Analyze(ctx, req.Image)
}
