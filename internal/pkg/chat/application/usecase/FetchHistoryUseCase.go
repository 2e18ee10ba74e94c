package usecase

import (
	"context"
	"fmt"

	chat "go-huddle/internal/pkg/chat/application/domain"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// FetchHistoryInput wraps the conversation identifier.
type FetchHistoryInput struct {
	ConversationID string
}

// FetchHistoryUseCase returns the full message log of a conversation ordered
// by creation time ascending. No pagination: unbounded history load is an
// accepted simplification of this service.
type FetchHistoryUseCase struct {
	Repo repository.ChatRepository
}

func NewFetchHistoryUseCase(repo repository.ChatRepository) *FetchHistoryUseCase {
	return &FetchHistoryUseCase{Repo: repo}
}

func (uc *FetchHistoryUseCase) Execute(ctx context.Context, in FetchHistoryInput) ([]chat.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversationId is required")
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
