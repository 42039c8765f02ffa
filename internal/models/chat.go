package models

import "time"

// Chat represents a private chat between exactly two mutual friends.
// User1ID < User2ID so each pair has at most one chat.
type Chat struct {
	ID            string     `db:"id" json:"id"`
	User1ID       string     `db:"user1_id" json:"user1_id"`
	User2ID       string     `db:"user2_id" json:"user2_id"`
	LastMessage   *string    `db:"last_message" json:"last_message,omitempty"`
	LastMessageAt *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Participant reports whether userID is one of the chat's two members.
func (c Chat) Participant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// ChatSummary provides an API-friendly view of a chat for one user.
type ChatSummary struct {
	ChatID        string     `json:"chat_id"`
	FriendID      string     `json:"friend_id"`
	LastMessage   *string    `json:"last_message,omitempty"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
