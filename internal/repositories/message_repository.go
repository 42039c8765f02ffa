package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"social-service/internal/models"
)

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg models.Message) (models.Message, error)
	ListMessages(ctx context.Context, chatID string) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message and returns it with the assigned seq.
func (r *MessageRepo) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (id, chat_id, sender_id, content, kind, created_at)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING seq`,
		msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.Kind, msg.CreatedAt).Scan(&msg.Seq)
	if err != nil {
		return models.Message{}, storeErr(err)
	}
	return msg, nil
}

// ListMessages returns a chat's messages oldest first, seq breaking ties.
func (r *MessageRepo) ListMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, seq, chat_id, sender_id, content, kind, created_at
         FROM messages WHERE chat_id=$1
         ORDER BY created_at ASC, seq ASC`, chatID)
	return msgs, storeErr(err)
}
