package usecase

import (
	"context"
	"fmt"

	chat "go-huddle/internal/pkg/chat/application/domain"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// GetOrCreateConversationInput identifies the unordered member pair.
type GetOrCreateConversationInput struct {
	UserA string
	UserB string
}

// GetOrCreateConversationUseCase resolves the single conversation for a
// member pair, creating it on first contact. Concurrent calls for the same
// pair resolve to one conversation: the pair is normalized here and the
// repository performs an atomic insert-if-absent against the unique
// member-pair constraint, so the loser of the race reads the winner's row.
type GetOrCreateConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewGetOrCreateConversationUseCase(repo repository.ChatRepository) *GetOrCreateConversationUseCase {
	return &GetOrCreateConversationUseCase{Repo: repo}
}

func (uc *GetOrCreateConversationUseCase) Execute(ctx context.Context, in GetOrCreateConversationInput) (*chat.Conversation, error) {
	conv, err := chat.NewConversation(in.UserA, in.UserB)
	if err != nil {
		return nil, err
	}

	out, err := uc.Repo.GetOrCreateConversation(ctx, *conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &out, nil
}
