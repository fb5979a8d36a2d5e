package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/domain/repository"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const upcomingAppointmentLimit = 3

type DashboardUsecase interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	registry     *intake.Registry
	goals        *storage.Collection[entity.Goal]
	appointments *storage.Collection[entity.Appointment]
	documentRepo repository.DocumentRecordRepository
	now          func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	registry *intake.Registry,
	kv storage.KVStore,
	documentRepo repository.DocumentRecordRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:           db,
		log:          log,
		registry:     registry,
		goals:        storage.NewCollection[entity.Goal](kv, storage.FeatureGoals),
		appointments: storage.NewCollection[entity.Appointment](kv, storage.FeatureAppointments),
		documentRepo: documentRepo,
		now:          time.Now,
	}
}

// GetDashboard gathers the intake progress, goals, appointments and document
// count concurrently. Any failing source fails the whole call.
func (u *dashboardUsecase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		state        intake.State
		goals        []entity.Goal
		appointments []entity.Appointment
		documents    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ctrl, err := u.registry.Get(gctx, userID)
		if err != nil {
			return err
		}
		state = ctrl.Snapshot()
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = u.goals.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = u.appointments.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		documents, err = u.documentRepo.CountByUserID(gctx, u.db, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to build dashboard: %+v", err)
		return nil, err
	}

	resp := &dto.DashboardResponse{
		CompletionPercent: converter.CompletionPercent(state.Validity),
		CurrentStep:       int(state.CurrentStep),
		IntakeCompleted:   state.Completed,
		Documents:         documents,
	}

	resp.Goals.Total = len(goals)
	for i := range goals {
		switch goals[i].Status {
		case entity.GoalStatusPending:
			resp.Goals.Pending++
		case entity.GoalStatusInProgress:
			resp.Goals.InProgress++
		case entity.GoalStatusCompleted:
			resp.Goals.Completed++
		}
	}

	var upcoming []entity.Appointment
	today := u.now().Format("2006-01-02")
	for _, a := range appointments {
		switch a.Status {
		case entity.AppointmentStatusScheduled:
			resp.Appointments.Scheduled++
			if a.Date >= today {
				upcoming = append(upcoming, a)
			}
		case entity.AppointmentStatusCompleted:
			resp.Appointments.Completed++
		case entity.AppointmentStatusCancelled:
			resp.Appointments.Cancelled++
		}
	}

	// Dates are YYYY-MM-DD and times HH:MM, so string order is time order.
	slices.SortFunc(upcoming, func(a, b entity.Appointment) int {
		return strings.Compare(a.Date+" "+a.Time, b.Date+" "+b.Time)
	})
	if len(upcoming) > upcomingAppointmentLimit {
		upcoming = upcoming[:upcomingAppointmentLimit]
	}
	resp.UpcomingAppointments = converter.AppointmentsToResponses(upcoming)

	return resp, nil
}
