package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"social-service/internal/domain"
	"social-service/internal/models"
)

// ChatRepository abstracts chat persistence.
type ChatRepository interface {
	CreateOrGetChat(ctx context.Context, userID, friendID string) (models.Chat, error)
	GetChat(ctx context.Context, chatID string) (models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error)
	TouchLastMessage(ctx context.Context, chatID, summary string, at time.Time) error
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// CreateOrGetChat returns the chat for the unordered pair, creating it if
// absent. Insert-or-fetch over the pair's unique constraint, so concurrent
// calls converge on a single row.
func (r *ChatRepo) CreateOrGetChat(ctx context.Context, userID, friendID string) (models.Chat, error) {
	user1, user2 := orderPair(userID, friendID)

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO chats (id, user1_id, user2_id) VALUES ($1, $2, $3)
         ON CONFLICT (user1_id, user2_id) DO NOTHING`,
		uuid.NewString(), user1, user2); err != nil {
		return models.Chat{}, storeErr(err)
	}

	var chat models.Chat
	err := r.db.GetContext(ctx, &chat,
		`SELECT id, user1_id, user2_id, last_message, last_message_at, created_at, updated_at
         FROM chats WHERE user1_id=$1 AND user2_id=$2`, user1, user2)
	return chat, storeErr(err)
}

// GetChat fetches a chat by id.
func (r *ChatRepo) GetChat(ctx context.Context, chatID string) (models.Chat, error) {
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat,
		`SELECT id, user1_id, user2_id, last_message, last_message_at, created_at, updated_at
         FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, domain.ErrNotFound
	}
	return chat, storeErr(err)
}

// ListChats returns the user's chats, most recently active first.
func (r *ChatRepo) ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, user1_id, user2_id, last_message, last_message_at, created_at, updated_at
         FROM chats WHERE user1_id=$1 OR user2_id=$1
         ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var result []models.ChatSummary
	for rows.Next() {
		var chat models.Chat
		if err := rows.StructScan(&chat); err != nil {
			return nil, storeErr(err)
		}
		friendID := chat.User1ID
		if friendID == userID {
			friendID = chat.User2ID
		}
		result = append(result, models.ChatSummary{
			ChatID:        chat.ID,
			FriendID:      friendID,
			LastMessage:   chat.LastMessage,
			LastMessageAt: chat.LastMessageAt,
			UpdatedAt:     chat.UpdatedAt,
		})
	}
	return result, storeErr(rows.Err())
}

// TouchLastMessage denormalizes the latest message onto the chat row.
func (r *ChatRepo) TouchLastMessage(ctx context.Context, chatID, summary string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE chats SET last_message=$2, last_message_at=$3, updated_at=$3 WHERE id=$1`,
		chatID, summary, at)
	return storeErr(err)
}

func orderPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
