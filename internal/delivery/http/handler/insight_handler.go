package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/service"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/response"
	"go-health-companion/pkg/validator"
)

// Phone photos as base64 data URLs stay well under this.
const maxMedicineImageBody = 10 << 20

type InsightHandler struct {
	insightUsecase usecase.InsightUsecase
	validator      *validator.CustomValidator
}

func NewInsightHandler(insightUsecase usecase.InsightUsecase, validator *validator.CustomValidator) *InsightHandler {
	return &InsightHandler{
		insightUsecase: insightUsecase,
		validator:      validator,
	}
}

// GetHealthPlan returns a daily plan generated from the intake profile
// @Summary Generate a health plan
// @Tags Insights
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.HealthPlanRequest false "Optional note and refresh flag"
// @Success 200 {object} response.Response{data=service.HealthPlan}
// @Failure 502 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /insights/health-plan [post]
func (h *InsightHandler) GetHealthPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.HealthPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	plan, err := h.insightUsecase.GetHealthPlan(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotInContext):
			response.Unauthorized(w, "")
		case errors.Is(err, service.ErrInsightUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "Health plan generation is not available", nil)
		case errors.Is(err, service.ErrInsightParse):
			response.Error(w, http.StatusBadGateway, "Failed to read the generated health plan", nil)
		default:
			response.Error(w, http.StatusBadGateway, "Failed to generate health plan", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "Health plan generated successfully", plan)
}

// AnalyzeMedicine identifies a medicine from a photo
// @Summary Analyze a medicine image
// @Tags Insights
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeMedicineRequest true "Image as a base64 data URL"
// @Success 200 {object} response.Response{data=service.MedicineInfo}
// @Failure 502 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /medicines/analyze [post]
func (h *InsightHandler) AnalyzeMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeMedicineRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMedicineImageBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Image is too large", nil)
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	info, err := h.insightUsecase.AnalyzeMedicine(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotInContext):
			response.Unauthorized(w, "")
		case errors.Is(err, service.ErrInvalidImage):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInsightUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "Medicine analysis is not available", nil)
		case errors.Is(err, service.ErrInsightParse):
			response.Error(w, http.StatusBadGateway, "Failed to read the medicine analysis", nil)
		default:
			response.Error(w, http.StatusBadGateway, "Failed to analyze medicine image", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine analyzed successfully", info)
}
