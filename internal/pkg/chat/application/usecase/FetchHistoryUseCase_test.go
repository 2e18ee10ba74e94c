package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

func TestFetchHistoryReturnsConversationLog(t *testing.T) {
	repo := newFakeChatRepo()
	users := newFakeUserRepo(chat.User{ID: "u1", Username: "alice"})
	send := NewSendMessageUseCase(repo, users, nil, time.Minute)

	for _, content := range []string{"one", "two", "three"} {
		_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: "conv-1", SenderID: "u1", Content: content})
		require.NoError(t, err)
	}
	_, err := send.Execute(context.Background(), SendMessageInput{ConversationID: "conv-other", SenderID: "u1", Content: "noise"})
	require.NoError(t, err)

	uc := NewFetchHistoryUseCase(repo)
	msgs, err := uc.Execute(context.Background(), FetchHistoryInput{ConversationID: "conv-1"})
	require.NoError(t, err)

	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestFetchHistoryRequiresConversationID(t *testing.T) {
	uc := NewFetchHistoryUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), FetchHistoryInput{})
	assert.Error(t, err)
}

func TestFetchHistoryEmptyConversation(t *testing.T) {
	uc := NewFetchHistoryUseCase(newFakeChatRepo())

	msgs, err := uc.Execute(context.Background(), FetchHistoryInput{ConversationID: "conv-empty"})
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
