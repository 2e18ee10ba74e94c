package adapter

import (
	"context"
	"errors"

	chat "go-huddle/internal/pkg/chat/application/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// GetOrCreateConversation relies on the unique (member_a, member_b) index for
// atomic insert-if-absent: the no-op DO UPDATE lets RETURNING yield the row
// whether this call created it or lost the race.
func (r *PgChatRepository) GetOrCreateConversation(ctx context.Context, c chat.Conversation) (chat.Conversation, error) {
	if r == nil || r.pool == nil {
		return chat.Conversation{}, errors.New("PgChatRepository: nil pool")
	}
	var out chat.Conversation
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.conversation (member_a, member_b, created_at)
		VALUES ($1::uuid, $2::uuid, $3)
		ON CONFLICT (member_a, member_b)
		DO UPDATE SET member_a = EXCLUDED.member_a
		RETURNING id::text, member_a::text, member_b::text, last_message, created_at
	`, c.MemberA, c.MemberB, c.CreatedAt).Scan(&out.ID, &out.MemberA, &out.MemberB, &out.LastMessage, &out.CreatedAt)
	return out, err
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.message (conversation_id, sender_id, sender_username, content, read, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6)
		RETURNING id::text
	`, m.ConversationID, m.SenderID, m.SenderUsername, m.Content, m.Read, m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, sender_username, content, read, created_at
		FROM chat.message
		WHERE conversation_id = $1::uuid
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.SenderUsername, &msg.Content, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) UpdateLastMessage(ctx context.Context, conversationID string, content string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE chat.conversation
		SET last_message = $2
		WHERE id = $1::uuid
	`, conversationID, content)
	return err
}
