package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	cacheport "go-huddle/internal/infrastructure/cache/port"
	"go-huddle/internal/infrastructure/logging"
	chat "go-huddle/internal/pkg/chat/application/domain"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageUseCase validates, persists and materializes a chat message.
// The sender's display name is resolved at send time and embedded into the
// stored row, so later display-name changes never alter historic messages.
// Hexagonal: depends on repository and cache ports, returns a domain entity.
type SendMessageUseCase struct {
	Repo    repository.ChatRepository
	Users   repository.UserRepository
	Cache   cacheport.Cache
	NameTTL time.Duration
}

func NewSendMessageUseCase(repo repository.ChatRepository, users repository.UserRepository, cache cacheport.Cache, nameTTL time.Duration) *SendMessageUseCase {
	if nameTTL <= 0 {
		nameTTL = 10 * time.Minute
	}
	return &SendMessageUseCase{Repo: repo, Users: users, Cache: cache, NameTTL: nameTTL}
}

// Execute persists a new message and returns it fully materialized (ID and
// timestamp assigned) so the caller can broadcast exactly what a later
// history read will return. Ordering relative to other messages in the same
// conversation is the caller's responsibility.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	username, err := uc.resolveUsername(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}

	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, username, in.Content)
	if err != nil {
		return nil, err
	}

	// Persist letting the DB generate the ID
	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id

	if err := uc.Repo.UpdateLastMessage(ctx, msg.ConversationID, msg.Content); err != nil {
		// The message itself is durable; a stale summary is tolerable.
		logging.L().Warn().Err(err).Str("conversation_id", msg.ConversationID).Msg("last-message summary update failed")
	}

	return msg, nil
}

func (uc *SendMessageUseCase) resolveUsername(ctx context.Context, senderID string) (string, error) {
	if senderID == "" {
		return "", chat.ErrInvalidMessage
	}

	key := usernameCacheKey(senderID)
	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, key); err == nil && cached != "" {
			return cached, nil
		} else if err != nil && !errors.Is(err, cacheport.ErrMiss) {
			logging.L().Warn().Err(err).Msg("username cache read failed")
		}
	}

	user, err := uc.Users.FindByID(ctx, senderID)
	if errors.Is(err, chat.ErrUserNotFound) {
		// The session was authenticated, but the account may have been
		// deleted concurrently.
		return "", chat.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if err := uc.Cache.Set(ctx, key, user.Username, uc.NameTTL); err != nil {
			logging.L().Warn().Err(err).Msg("username cache write failed")
		}
	}
	return user.Username, nil
}

func usernameCacheKey(userID string) string {
	return "chat:username:" + userID
}
