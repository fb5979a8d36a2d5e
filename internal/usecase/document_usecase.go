package usecase

import (
	"context"
	"errors"
	"time"

	"go-health-companion/internal/converter"
	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/domain/entity"
	"go-health-companion/internal/domain/repository"
	"go-health-companion/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDocumentIDConflict = errors.New("document id already in use")
)

type DocumentUsecase interface {
	CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	GetAllDocuments(ctx context.Context) (*dto.DocumentListResponse, error)
	DeleteDocument(ctx context.Context, id string) error
}

type documentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	documentRepo repository.DocumentRecordRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	documentRepo repository.DocumentRecordRepository,
	auditService service.AuditService,
) DocumentUsecase {
	return &documentUsecase{
		db:           db,
		log:          log,
		documentRepo: documentRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

// CreateDocument saves document metadata. A caller-supplied id makes the call
// an idempotent overwrite of that record.
func (u *documentUsecase) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	record := &entity.DocumentRecord{
		ID:         req.ID,
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		Category:   req.Category,
		FileType:   req.FileType,
		FileSize:   req.FileSize,
		RemoteURL:  req.RemoteURL,
		RemoteID:   req.RemoteID,
		Preview:    req.Preview,
		UploadDate: u.now().UTC(),
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if req.UploadDate != nil {
		record.UploadDate = req.UploadDate.UTC()
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Ids are global; never overwrite another user's record.
	if existing, err := u.documentRepo.FindByID(ctx, tx, userID, record.ID); err != nil {
		u.log.Warnf("Failed to find document: %+v", err)
		return nil, err
	} else if existing == nil {
		taken, err := u.documentRepo.ExistsByID(ctx, tx, record.ID)
		if err != nil {
			u.log.Warnf("Failed to check document id: %+v", err)
			return nil, err
		}
		if taken {
			return nil, ErrDocumentIDConflict
		}
	}

	if err := u.documentRepo.Save(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to save document: %+v", err)
		return nil, err
	}

	newValue := converter.DocumentToResponse(record)
	newValue.Preview = ""
	if err := u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionDocumentCreate, "document", record.ID, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DocumentToResponse(record), nil
}

func (u *documentUsecase) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	record, err := u.documentRepo.FindByID(ctx, u.db, userID, id)
	if err != nil {
		u.log.Warnf("Failed to find document: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrDocumentNotFound
	}

	return converter.DocumentToResponse(record), nil
}

func (u *documentUsecase) GetAllDocuments(ctx context.Context) (*dto.DocumentListResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	records, err := u.documentRepo.FindAll(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find documents: %+v", err)
		return nil, err
	}

	return &dto.DocumentListResponse{
		Documents: converter.DocumentsToResponses(records),
		Total:     len(records),
	}, nil
}

func (u *documentUsecase) DeleteDocument(ctx context.Context, id string) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.documentRepo.FindByID(ctx, tx, userID, id)
	if err != nil {
		u.log.Warnf("Failed to find document: %+v", err)
		return err
	}
	if record == nil {
		return ErrDocumentNotFound
	}

	deleted, err := u.documentRepo.Delete(ctx, tx, userID, id)
	if err != nil {
		u.log.Warnf("Failed to delete document: %+v", err)
		return err
	}
	if !deleted {
		return ErrDocumentNotFound
	}

	oldValue := converter.DocumentToResponse(record)
	oldValue.Preview = ""
	if err := u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionDocumentDelete, "document", id, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
