package repository

import (
	"context"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations and their
// message log. Implementations must make GetOrCreateConversation atomic for a
// given member pair: concurrent calls for the same pair resolve to a single
// conversation row.
type ChatRepository interface {
	// GetOrCreateConversation returns the conversation for the normalized
	// member pair, creating it if absent.
	GetOrCreateConversation(ctx context.Context, c chat.Conversation) (chat.Conversation, error)

	// SaveMessage appends a message and returns the repository-assigned ID.
	SaveMessage(ctx context.Context, m chat.Message) (string, error)

	// ListMessages returns every message of the conversation ordered by
	// creation time ascending.
	ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error)

	// UpdateLastMessage refreshes the conversation's cached summary.
	UpdateLastMessage(ctx context.Context, conversationID string, content string) error
}
