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

type GoalHandler struct {
	goalUsecase usecase.GoalUsecase
	validator   *validator.CustomValidator
}

func NewGoalHandler(goalUsecase usecase.GoalUsecase, validator *validator.CustomValidator) *GoalHandler {
	return &GoalHandler{
		goalUsecase: goalUsecase,
		validator:   validator,
	}
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	goal, err := h.goalUsecase.CreateGoal(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrInvalidGoalCategory, usecase.ErrInvalidTargetDate:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create goal")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Goal created successfully", goal)
}

func (h *GoalHandler) GetAllGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalUsecase.GetAllGoals(r.Context())
	if err != nil {
		if err == usecase.ErrUserNotInContext {
			response.Unauthorized(w, "")
			return
		}
		response.InternalServerError(w, "Failed to get goals")
		return
	}

	response.Success(w, http.StatusOK, "Goals retrieved successfully", goals)
}

func (h *GoalHandler) UpdateGoalStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateGoalStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	goal, err := h.goalUsecase.UpdateGoalStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrGoalNotFound:
			response.NotFound(w, "Goal not found")
		default:
			response.InternalServerError(w, "Failed to update goal")
		}
		return
	}

	response.Success(w, http.StatusOK, "Goal updated successfully", goal)
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.goalUsecase.DeleteGoal(r.Context(), mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "")
		case usecase.ErrGoalNotFound:
			response.NotFound(w, "Goal not found")
		default:
			response.InternalServerError(w, "Failed to delete goal")
		}
		return
	}

	response.Success(w, http.StatusOK, "Goal deleted successfully", nil)
}

func (h *GoalHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.goalUsecase.GetSuggestions(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid goal category", nil)
		return
	}

	response.Success(w, http.StatusOK, "Goal suggestions retrieved successfully", suggestions)
}
