package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrInvalidMessage      = errors.New("chat: conversation and sender are required")
	ErrEmptyMessage        = errors.New("chat: message content is empty")
	ErrInvalidConversation = errors.New("chat: a conversation needs two distinct members")
	ErrUserNotFound        = errors.New("chat: user not found")
)
