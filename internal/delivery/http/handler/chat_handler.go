package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/service"
	"go-health-companion/internal/usecase"
	"go-health-companion/pkg/response"
	"go-health-companion/pkg/validator"
)

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

// SendMessage asks the health assistant a question
// @Summary Chat with the health assistant
// @Tags Chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendChatMessageRequest true "Question"
// @Success 200 {object} response.Response{data=dto.ChatMessageResponse}
// @Failure 502 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /chat [post]
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SendChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply, err := h.chatUsecase.SendMessage(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotInContext):
			response.Unauthorized(w, "")
		case errors.Is(err, service.ErrInsightUnavailable):
			response.Error(w, http.StatusServiceUnavailable, "Health assistant is not available", nil)
		default:
			response.Error(w, http.StatusBadGateway, "Failed to get a reply from the health assistant", nil)
		}
		return
	}

	response.Success(w, http.StatusOK, "Reply generated successfully", reply)
}

func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.chatUsecase.GetHistory(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotInContext) {
			response.Unauthorized(w, "")
			return
		}
		response.InternalServerError(w, "Failed to get chat history")
		return
	}

	response.Success(w, http.StatusOK, "Chat history retrieved successfully", history)
}

func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.chatUsecase.ClearHistory(r.Context()); err != nil {
		if errors.Is(err, usecase.ErrUserNotInContext) {
			response.Unauthorized(w, "")
			return
		}
		response.InternalServerError(w, "Failed to clear chat history")
		return
	}

	response.Success(w, http.StatusOK, "Chat history cleared successfully", nil)
}
