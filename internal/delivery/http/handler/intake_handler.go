package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/intake"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/response"
	"go-health-companion/pkg/validator"

	"github.com/gorilla/mux"
)

// Section bodies carry whole medical histories, including list items.
const maxSectionBodySize = 1 << 20

type IntakeHandler struct {
	intakeUsecase usecase.IntakeUsecase
	validator     *validator.CustomValidator
}

func NewIntakeHandler(intakeUsecase usecase.IntakeUsecase, validator *validator.CustomValidator) *IntakeHandler {
	return &IntakeHandler{
		intakeUsecase: intakeUsecase,
		validator:     validator,
	}
}

// GetState returns the user's intake snapshot
// @Summary Get intake state
// @Tags Intake
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=dto.IntakeStateResponse}
// @Router /intake [get]
func (h *IntakeHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.intakeUsecase.GetState(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to get intake state")
		return
	}

	response.Success(w, http.StatusOK, "Intake state retrieved successfully", state)
}

func (h *IntakeHandler) GetFields(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Intake fields retrieved successfully", h.intakeUsecase.GetFields(r.Context()))
}

// UpdateSection replaces personal_details or medical_history wholesale
// @Summary Replace an intake section
// @Tags Intake
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param section path string true "personal_details or medical_history"
// @Success 200 {object} response.Response{data=dto.IntakeStateResponse}
// @Failure 400 {object} response.Response
// @Router /intake/sections/{section} [put]
func (h *IntakeHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	section := mux.Vars(r)["section"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSectionBodySize))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	state, err := h.intakeUsecase.UpdateSection(r.Context(), section, body)
	if err != nil {
		writeIntakeError(w, err, "Failed to update section")
		return
	}

	response.Success(w, http.StatusOK, "Section updated successfully", state)
}

// ApplyUpdate applies one field editor message
// @Summary Apply a field update
// @Tags Intake
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.IntakeUpdateRequest true "Update message"
// @Success 200 {object} response.Response{data=dto.IntakeStateResponse}
// @Failure 400 {object} response.Response
// @Router /intake/updates [post]
func (h *IntakeHandler) ApplyUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.IntakeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.intakeUsecase.ApplyUpdate(r.Context(), &req)
	if err != nil {
		writeIntakeError(w, err, "Failed to apply update")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", state)
}

// GoToStep jumps to a step. An unreachable step is not an error; the
// response reports moved=false.
func (h *IntakeHandler) GoToStep(w http.ResponseWriter, r *http.Request) {
	// Digits too long for an int are just another unreachable step.
	step, err := strconv.Atoi(mux.Vars(r)["step"])
	if err != nil {
		step = -1
	}

	result, err := h.intakeUsecase.GoToStep(r.Context(), step)
	if err != nil {
		writeIntakeError(w, err, "Failed to change step")
		return
	}

	response.Success(w, http.StatusOK, stepMessage(result.Moved), result)
}

func (h *IntakeHandler) Advance(w http.ResponseWriter, r *http.Request) {
	result, err := h.intakeUsecase.Advance(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to change step")
		return
	}

	response.Success(w, http.StatusOK, stepMessage(result.Moved), result)
}

func (h *IntakeHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	result, err := h.intakeUsecase.Retreat(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to change step")
		return
	}

	response.Success(w, http.StatusOK, stepMessage(result.Moved), result)
}

// LoadDemo replaces the profile with a built-in demo profile. The body is
// optional and defaults to the first demo.
func (h *IntakeHandler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	var req dto.LoadDemoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	state, err := h.intakeUsecase.LoadDemo(r.Context(), &req)
	if err != nil {
		writeIntakeError(w, err, "Failed to load demo profile")
		return
	}

	response.Success(w, http.StatusOK, "Demo profile loaded successfully", state)
}

// Complete submits the profile to the save endpoint
// @Summary Complete the intake
// @Tags Intake
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response{data=dto.CompleteIntakeResponse}
// @Failure 409 {object} response.Response
// @Failure 502 {object} response.Response{data=dto.CompleteIntakeResponse}
// @Router /intake/complete [post]
func (h *IntakeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.intakeUsecase.Complete(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to complete intake")
		return
	}

	if !result.Outcome.Succeeded() {
		// The profile is still stored; the client may retry.
		response.JSON(w, http.StatusBadGateway, response.Response{
			Success: false,
			Message: "Failed to save profile",
			Data:    result,
			Error:   result.Outcome.Reason,
		})
		return
	}

	response.Success(w, http.StatusOK, "Profile saved successfully", result)
}

func (h *IntakeHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	file, err := h.intakeUsecase.ExportPDF(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to export profile")
		return
	}

	response.File(w, file.ContentType, file.Filename, file.Data)
}

func (h *IntakeHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	file, err := h.intakeUsecase.ExportXLSX(r.Context())
	if err != nil {
		writeIntakeError(w, err, "Failed to export profile")
		return
	}

	response.File(w, file.ContentType, file.Filename, file.Data)
}

func stepMessage(moved bool) string {
	if moved {
		return "Step changed successfully"
	}
	return "Step is not reachable"
}

func writeIntakeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrUserNotInContext):
		response.Unauthorized(w, "")
	case errors.Is(err, intake.ErrUnknownSection):
		response.NotFound(w, "Unknown profile section")
	case errors.Is(err, usecase.ErrInvalidSectionBody),
		errors.Is(err, usecase.ErrInvalidUpdate),
		errors.Is(err, intake.ErrSectionMismatch),
		errors.Is(err, intake.ErrUnknownField),
		errors.Is(err, intake.ErrUnknownList),
		errors.Is(err, intake.ErrItemIndex),
		errors.Is(err, intake.ErrIncompleteItem):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, intake.ErrNotLastStep),
		errors.Is(err, intake.ErrStepIncomplete),
		errors.Is(err, intake.ErrSaveInFlight):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
