package repository

import (
	"context"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

// UserRepository exposes the slice of the account subsystem the chat core
// consumes: display-name resolution and the online-flag projection.
type UserRepository interface {
	// FindByID returns the user or chat.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*chat.User, error)

	// SetOnline persists the presence projection for the user.
	SetOnline(ctx context.Context, id string, online bool) error
}
