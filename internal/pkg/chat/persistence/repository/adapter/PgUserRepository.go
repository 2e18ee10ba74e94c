package adapter

import (
	"context"
	"errors"

	chat "go-huddle/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u chat.User
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, username, online
		FROM chat.app_user
		WHERE id = $1::uuid
	`, id).Scan(&u.ID, &u.Username, &u.Online)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgUserRepository) SetOnline(ctx context.Context, id string, online bool) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat.app_user
		SET online = $2
		WHERE id = $1::uuid
	`, id, online)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrUserNotFound
	}
	return nil
}
