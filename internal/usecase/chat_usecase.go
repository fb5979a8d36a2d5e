package usecase

import (
	"context"
	"strings"

	"go-health-companion/internal/delivery/dto"
	"go-health-companion/internal/service"

	"github.com/sirupsen/logrus"
)

type ChatUsecase interface {
	SendMessage(ctx context.Context, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error)
	GetHistory(ctx context.Context) (*dto.ChatHistoryResponse, error)
	ClearHistory(ctx context.Context) error
}

type chatUsecase struct {
	log         *logrus.Logger
	chatService *service.ChatService
}

func NewChatUsecase(log *logrus.Logger, chatService *service.ChatService) ChatUsecase {
	return &chatUsecase{
		log:         log,
		chatService: chatService,
	}
}

func (u *chatUsecase) SendMessage(ctx context.Context, req *dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	reply, err := u.chatService.Send(ctx, userID, strings.TrimSpace(req.Message))
	if err != nil {
		return nil, err
	}
	return toChatMessageResponse(*reply), nil
}

func (u *chatUsecase) GetHistory(ctx context.Context) (*dto.ChatHistoryResponse, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	history, err := u.chatService.History(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to load chat history: %+v", err)
		return nil, err
	}

	messages := make([]dto.ChatMessageResponse, 0, len(history))
	for _, m := range history {
		messages = append(messages, *toChatMessageResponse(m))
	}
	return &dto.ChatHistoryResponse{Messages: messages, Total: len(messages)}, nil
}

func (u *chatUsecase) ClearHistory(ctx context.Context) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	if err := u.chatService.Clear(ctx, userID); err != nil {
		u.log.Warnf("Failed to clear chat history: %+v", err)
		return err
	}
	return nil
}

func toChatMessageResponse(m service.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}
