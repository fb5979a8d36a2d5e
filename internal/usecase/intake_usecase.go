package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/export"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/observability/metrics"
	"go-health-companion/internal/service"
	"go-health-companion/internal/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidSectionBody = errors.New("invalid section body")
	ErrInvalidUpdate      = errors.New("invalid update message")
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type IntakeUsecase interface {
	GetState(ctx context.Context) (*dto.IntakeStateResponse, error)
	GetFields(ctx context.Context) *dto.IntakeFieldsResponse
	UpdateSection(ctx context.Context, section string, body []byte) (*dto.IntakeStateResponse, error)
	ApplyUpdate(ctx context.Context, req *dto.IntakeUpdateRequest) (*dto.IntakeStateResponse, error)
	GoToStep(ctx context.Context, step int) (*dto.StepMoveResponse, error)
	Advance(ctx context.Context) (*dto.StepMoveResponse, error)
	Retreat(ctx context.Context) (*dto.StepMoveResponse, error)
	LoadDemo(ctx context.Context, req *dto.LoadDemoRequest) (*dto.IntakeStateResponse, error)
	Complete(ctx context.Context) (*dto.CompleteIntakeResponse, error)
	ExportPDF(ctx context.Context) (*dto.ExportFile, error)
	ExportXLSX(ctx context.Context) (*dto.ExportFile, error)
}

type intakeUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	registry     *intake.Registry
	auditService service.AuditService
	metrics      *metrics.IntakeMetrics
	now          func() time.Time
}

func NewIntakeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	registry *intake.Registry,
	auditService service.AuditService,
	intakeMetrics *metrics.IntakeMetrics,
) IntakeUsecase {
	return &intakeUsecase{
		db:           db,
		log:          log,
		registry:     registry,
		auditService: auditService,
		metrics:      intakeMetrics,
		now:          time.Now,
	}
}

func (u *intakeUsecase) controller(ctx context.Context) (*intake.Controller, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	ctrl, err := u.registry.Get(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load intake session: %+v", err)
		return nil, err
	}
	return ctrl, nil
}

func (u *intakeUsecase) GetState(ctx context.Context) (*dto.IntakeStateResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}
	return converter.IntakeStateToResponse(ctrl.Snapshot()), nil
}

func (u *intakeUsecase) GetFields(ctx context.Context) *dto.IntakeFieldsResponse {
	return &dto.IntakeFieldsResponse{Forms: intake.Forms()}
}

// UpdateSection decodes body into the section's type and replaces the section
// wholesale. Unknown JSON fields are rejected.
func (u *intakeUsecase) UpdateSection(ctx context.Context, section string, body []byte) (*dto.IntakeStateResponse, error) {
	var value any
	switch section {
	case entity.SectionPersonalDetails:
		value = &entity.PersonalDetails{}
	case entity.SectionMedicalHistory:
		value = &entity.MedicalHistory{}
	default:
		return nil, fmt.Errorf("%w: %s", intake.ErrUnknownSection, section)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSectionBody, err)
	}

	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctrl.UpdateSection(ctx, section, value); err != nil {
		u.observePersist(err)
		return nil, err
	}

	return converter.IntakeStateToResponse(ctrl.Snapshot()), nil
}

func (u *intakeUsecase) ApplyUpdate(ctx context.Context, req *dto.IntakeUpdateRequest) (*dto.IntakeStateResponse, error) {
	msg := converter.IntakeUpdateToMessage(req)
	if msg == nil {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidUpdate, req.Type)
	}

	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctrl.Apply(ctx, msg); err != nil {
		u.observePersist(err)
		return nil, err
	}

	return converter.IntakeStateToResponse(ctrl.Snapshot()), nil
}

// GoToStep jumps to step. Out-of-range targets leave the step unchanged and
// report moved=false, like any other unreachable step.
func (u *intakeUsecase) GoToStep(ctx context.Context, step int) (*dto.StepMoveResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	moved := ctrl.GoToStep(intake.Step(step))
	return &dto.StepMoveResponse{Moved: moved, State: converter.IntakeStateToResponse(ctrl.Snapshot())}, nil
}

func (u *intakeUsecase) Advance(ctx context.Context) (*dto.StepMoveResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	moved := ctrl.Advance()
	return &dto.StepMoveResponse{Moved: moved, State: converter.IntakeStateToResponse(ctrl.Snapshot())}, nil
}

func (u *intakeUsecase) Retreat(ctx context.Context) (*dto.StepMoveResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	moved := ctrl.Retreat()
	return &dto.StepMoveResponse{Moved: moved, State: converter.IntakeStateToResponse(ctrl.Snapshot())}, nil
}

func (u *intakeUsecase) LoadDemo(ctx context.Context, req *dto.LoadDemoRequest) (*dto.IntakeStateResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctrl.LoadDemo(ctx, req.Index); err != nil {
		u.observePersist(err)
		return nil, err
	}

	u.log.Infof("Loaded demo profile %d for %s", req.Index%intake.DemoProfileCount(), ctrl.UserID())
	return converter.IntakeStateToResponse(ctrl.Snapshot()), nil
}

// Complete submits the profile. A failed remote save is a normal result with
// a failed outcome, not an error.
func (u *intakeUsecase) Complete(ctx context.Context) (*dto.CompleteIntakeResponse, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	outcome, err := ctrl.Complete(ctx)
	if err != nil {
		return nil, err
	}

	if outcome.Succeeded() {
		// Audit failures never fail a completed intake.
		if err := u.auditService.LogCreate(ctx, u.db, ctrl.UserID(), entity.AuditActionIntakeComplete, "health_profile", ctrl.UserID(), map[string]any{
			"completed_at": u.now().UTC(),
		}); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return &dto.CompleteIntakeResponse{
		Outcome: outcome,
		State:   converter.IntakeStateToResponse(ctrl.Snapshot()),
	}, nil
}

func (u *intakeUsecase) ExportPDF(ctx context.Context) (*dto.ExportFile, error) {
	return u.export(ctx, "pdf", contentTypePDF, export.RenderPDF)
}

func (u *intakeUsecase) ExportXLSX(ctx context.Context) (*dto.ExportFile, error) {
	return u.export(ctx, "xlsx", contentTypeXLSX, export.RenderXLSX)
}

func (u *intakeUsecase) export(ctx context.Context, ext, contentType string, render func(export.Report) ([]byte, error)) (*dto.ExportFile, error) {
	ctrl, err := u.controller(ctx)
	if err != nil {
		return nil, err
	}

	profile := ctrl.Snapshot().Profile
	data, err := render(export.BuildReport(profile, u.now()))
	if err != nil {
		u.log.Warnf("Failed to render %s report: %+v", ext, err)
		return nil, err
	}

	return &dto.ExportFile{
		ContentType: contentType,
		Filename:    export.Filename(profile, ext),
		Data:        data,
	}, nil
}

// observePersist counts write-through failures; validation errors from the
// reducer are not persistence failures.
func (u *intakeUsecase) observePersist(err error) {
	if errors.Is(err, storage.ErrInvalidKey) || isIntakeInputError(err) {
		return
	}
	u.metrics.ObservePersistError(storage.FeatureIntake)
}

func isIntakeInputError(err error) bool {
	for _, target := range []error{
		intake.ErrUnknownSection,
		intake.ErrSectionMismatch,
		intake.ErrUnknownField,
		intake.ErrUnknownList,
		intake.ErrItemIndex,
		intake.ErrIncompleteItem,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
