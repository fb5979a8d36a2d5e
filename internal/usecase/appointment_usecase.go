package usecase

import (
	"context"
	"errors"
	"sync"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/observability/metrics"
	"go-health-companion/internal/service"
	"go-health-companion/internal/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotScheduled = errors.New("appointment is not scheduled")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type appointmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	appointments *storage.Collection[entity.Appointment]
	auditService service.AuditService
	metrics      *metrics.IntakeMetrics

	mu sync.Mutex
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	kv storage.KVStore,
	auditService service.AuditService,
	intakeMetrics *metrics.IntakeMetrics,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:           db,
		log:          log,
		appointments: storage.NewCollection[entity.Appointment](kv, storage.FeatureAppointments),
		auditService: auditService,
		metrics:      intakeMetrics,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	appointment := entity.Appointment{
		ID:          uuid.New().String(),
		PatientName: req.PatientName,
		DoctorName:  req.DoctorName,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Status:      entity.AppointmentStatusScheduled,
		Notes:       req.Notes,
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	list, err := u.appointments.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, err
	}

	list = append(list, appointment)
	if err := u.save(ctx, userID, list); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(&appointment), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	list, err := u.appointments.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(list),
		Total:        len(list),
	}, nil
}

// CancelAppointment cancels a scheduled appointment and records it in the
// audit trail.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	list, idx, err := u.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !list[idx].IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	oldValue := *converter.AppointmentToResponse(&list[idx])
	list[idx].Cancel()
	if err := u.save(ctx, userID, list); err != nil {
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db, userID, entity.AuditActionAppointmentCancel, "appointment", id, oldValue, converter.AppointmentToResponse(&list[idx])); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.AppointmentToResponse(&list[idx]), nil
}

func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	list, idx, err := u.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !list[idx].IsScheduled() {
		return nil, ErrAppointmentNotScheduled
	}

	list[idx].Complete()
	if err := u.save(ctx, userID, list); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(&list[idx]), nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id string) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	list, idx, err := u.find(ctx, userID, id)
	if err != nil {
		return err
	}

	list = append(list[:idx], list[idx+1:]...)
	return u.save(ctx, userID, list)
}

// find loads the user's appointments and locates id. Caller holds u.mu.
func (u *appointmentUsecase) find(ctx context.Context, userID, id string) ([]entity.Appointment, int, error) {
	list, err := u.appointments.List(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, -1, err
	}
	for i := range list {
		if list[i].ID == id {
			return list, i, nil
		}
	}
	return nil, -1, ErrAppointmentNotFound
}

func (u *appointmentUsecase) save(ctx context.Context, userID string, list []entity.Appointment) error {
	if err := u.appointments.Replace(ctx, userID, list); err != nil {
		u.metrics.ObservePersistError(storage.FeatureAppointments)
		u.log.Warnf("Failed to save appointments: %+v", err)
		return err
	}
	return nil
}
