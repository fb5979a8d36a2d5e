package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-health-companion/internal/storage"

	"github.com/sirupsen/logrus"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// MaxChatHistory bounds the stored conversation; older messages are dropped.
const MaxChatHistory = 50

const chatSystemPrompt = "You are an AI Health Assistant designed to provide helpful, accurate, and ethical medical information. " +
	"Focus on general health education, wellness tips, and understanding symptoms. " +
	"Always clarify you're not a doctor and serious concerns require professional medical consultation. " +
	"Be empathetic, clear, and scientifically accurate. Now, please respond to this question: "

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatService runs the health assistant conversation. History is kept per
// user under chat:{user}:items.
type ChatService struct {
	gen     TextGenerator
	history *storage.Collection[ChatMessage]
	log     *logrus.Logger
	now     func() time.Time
	mu      sync.Mutex
}

func NewChatService(gen TextGenerator, kv storage.KVStore, log *logrus.Logger) *ChatService {
	return &ChatService{
		gen:     gen,
		history: storage.NewCollection[ChatMessage](kv, storage.FeatureChat),
		log:     log,
		now:     time.Now,
	}
}

// Send answers message in the context of the stored conversation and
// returns the assistant's reply.
func (s *ChatService) Send(ctx context.Context, userID, message string) (*ChatMessage, error) {
	if s.gen == nil {
		return nil, ErrInsightUnavailable
	}

	history, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	sent := s.now()
	text, err := s.gen.Generate(ctx, ChatPrompt(history, message))
	if err != nil {
		s.log.Warnf("Failed to generate chat reply for %s: %+v", userID, err)
		return nil, err
	}

	reply := ChatMessage{Role: ChatRoleAssistant, Content: stripEmphasis(text), Timestamp: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-read so a reply that finished meanwhile is not lost.
	current, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	current = append(current, ChatMessage{Role: ChatRoleUser, Content: message, Timestamp: sent}, reply)
	if len(current) > MaxChatHistory {
		current = current[len(current)-MaxChatHistory:]
	}
	if err := s.history.Replace(ctx, userID, current); err != nil {
		s.log.Warnf("Failed to store chat history for %s: %+v", userID, err)
		return nil, err
	}
	return &reply, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]ChatMessage, error) {
	return s.history.List(ctx, userID)
}

func (s *ChatService) Clear(ctx context.Context, userID string) error {
	return s.history.Clear(ctx, userID)
}

// ChatPrompt frames the first question with the assistant's instructions and
// later ones with the conversation so far.
func ChatPrompt(history []ChatMessage, message string) string {
	if len(history) == 0 {
		return chatSystemPrompt + message
	}

	turns := make([]string, 0, len(history))
	for _, m := range history {
		speaker := "User"
		if m.Role == ChatRoleAssistant {
			speaker = "Health Assistant"
		}
		turns = append(turns, speaker+": "+m.Content)
	}
	return "Previous conversation:\n\n" + strings.Join(turns, "\n\n") +
		"\n\nRemember you are a medical health assistant. Please respond to this question: " + message
}

// stripEmphasis drops markdown asterisks the chat window would show verbatim.
func stripEmphasis(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "*", ""))
}
