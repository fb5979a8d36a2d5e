package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go-health-companion/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatPrompt(t *testing.T) {
	first := ChatPrompt(nil, "Why do I get headaches?")
	assert.True(t, strings.HasPrefix(first, "You are an AI Health Assistant"))
	assert.True(t, strings.HasSuffix(first, "please respond to this question: Why do I get headaches?"))

	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "Why do I get headaches?"},
		{Role: ChatRoleAssistant, Content: "Often dehydration."},
	}
	later := ChatPrompt(history, "How much water?")
	assert.Equal(t, "Previous conversation:\n\n"+
		"User: Why do I get headaches?\n\n"+
		"Health Assistant: Often dehydration.\n\n"+
		"Remember you are a medical health assistant. Please respond to this question: How much water?", later)
}

func TestChatService_KeepsConversation(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	gen := &fakeGenerator{text: "**Drink** more *water*."}
	svc := NewChatService(gen, kv, quietLogger())

	reply, err := svc.Send(ctx, "u1", "Why do I get headaches?")
	require.NoError(t, err)
	assert.Equal(t, ChatRoleAssistant, reply.Role)
	assert.Equal(t, "Drink more water.", reply.Content)

	_, err = svc.Send(ctx, "u1", "How much?")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 2)
	assert.True(t, strings.HasPrefix(gen.prompts[0], chatSystemPrompt))
	assert.Contains(t, gen.prompts[1], "User: Why do I get headaches?\n\nHealth Assistant: Drink more water.")

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, ChatRoleUser, history[2].Role)
	assert.Equal(t, "How much?", history[2].Content)

	// Stored under chat:{user}:items and scoped per user.
	raw, err := kv.Get(ctx, storage.NewKey("chat", "u1", "items"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "How much?")
	other, err := svc.History(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, svc.Clear(ctx, "u1"))
	history, err = svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChatService_TrimsHistory(t *testing.T) {
	ctx := context.Background()
	svc := NewChatService(&fakeGenerator{text: "ok"}, newKV(t), quietLogger())

	for i := 0; i < MaxChatHistory; i++ {
		_, err := svc.Send(ctx, "u1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, MaxChatHistory)
	assert.Equal(t, fmt.Sprintf("q%d", MaxChatHistory/2), history[0].Content)
	assert.Equal(t, "ok", history[len(history)-1].Content)
}

func TestChatService_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewChatService(nil, newKV(t), quietLogger()).Send(ctx, "u1", "hi")
	assert.ErrorIs(t, err, ErrInsightUnavailable)

	kv := newKV(t)
	boom := errors.New("quota exceeded")
	svc := NewChatService(&fakeGenerator{err: boom}, kv, quietLogger())
	_, err = svc.Send(ctx, "u1", "hi")
	assert.ErrorIs(t, err, boom)

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, history, "a failed turn is not recorded")
}
