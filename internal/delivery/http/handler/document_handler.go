package handler

import (
	"encoding/json"
	"net/http"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/response"
	"go-health-companion/pkg/validator"

	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doc, err := h.documentUsecase.CreateDocument(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrDocumentIDConflict:
			response.Conflict(w, "Document ID already in use")
		default:
			response.InternalServerError(w, "Failed to save document")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Document saved successfully", doc)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documentUsecase.GetDocument(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			response.InternalServerError(w, "Failed to get document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document retrieved successfully", doc)
}

func (h *DocumentHandler) GetAllDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documentUsecase.GetAllDocuments(r.Context())
	if err != nil {
		if err == usecase.ErrUserNotInContext {
			response.Unauthorized(w, "")
			return
		}
		response.InternalServerError(w, "Failed to get documents")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Documents retrieved successfully", docs, &response.Meta{Total: int64(docs.Total)})
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documentUsecase.DeleteDocument(r.Context(), mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			response.InternalServerError(w, "Failed to delete document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document deleted successfully", nil)
}
