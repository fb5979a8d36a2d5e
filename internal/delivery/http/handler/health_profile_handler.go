package handler

import (
	"errors"
	"net/http"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/service"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/response"
	"go-health-companion/pkg/validator"
)

const maxSaveDataSize = 10 << 20

type HealthProfileHandler struct {
	healthProfileUsecase usecase.HealthProfileUsecase
	validator            *validator.CustomValidator
}

func NewHealthProfileHandler(healthProfileUsecase usecase.HealthProfileUsecase, validator *validator.CustomValidator) *HealthProfileHandler {
	return &HealthProfileHandler{
		healthProfileUsecase: healthProfileUsecase,
		validator:            validator,
	}
}

// SaveData receives a completed profile
// @Summary Save a completed health profile
// @Description Form fields id (user id) and data (profile JSON). Replies with a bare message body.
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} dto.SaveDataResponse
// @Failure 400 {object} response.Response
// @Router /save_data [post]
func (h *HealthProfileHandler) SaveData(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSaveDataSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		response.Error(w, http.StatusBadRequest, "Invalid form data", nil)
		return
	}

	req := dto.SaveDataRequest{
		ID:   r.FormValue("id"),
		Data: r.FormValue("data"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.healthProfileUsecase.SaveData(r.Context(), &req); err != nil {
		if errors.Is(err, usecase.ErrInvalidProfileData) {
			response.Error(w, http.StatusBadRequest, "Invalid profile data", nil)
			return
		}
		response.InternalServerError(w, "Failed to save data")
		return
	}

	response.JSON(w, http.StatusOK, dto.SaveDataResponse{Message: service.SaveSuccessMessage})
}

func (h *HealthProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.healthProfileUsecase.GetProfile(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrHealthProfileNotFound:
			response.NotFound(w, "Health profile not found")
		default:
			response.InternalServerError(w, "Failed to get health profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health profile retrieved successfully", profile)
}
