package chat

import (
	"strings"
	"time"
)

// Message is an immutable, append-only log entry in a conversation.
// SenderUsername is denormalized at send time: later display-name changes
// must not retroactively alter historic messages.
type Message struct {
	ID             string    `db:"id"`
	ConversationID string    `db:"conversation_id"`
	SenderID       string    `db:"sender_id"`
	SenderUsername string    `db:"sender_username"`
	Content        string    `db:"content"`
	Read           bool      `db:"read"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewMessage validates and normalizes an outgoing message. Content is trimmed;
// whitespace-only content is rejected. The ID is left empty for the repository
// to assign on insert.
func NewMessage(conversationID, senderID, senderUsername, content string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, ErrInvalidMessage
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderUsername: senderUsername,
		Content:        trimmed,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
