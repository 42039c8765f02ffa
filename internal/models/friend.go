package models

import "time"

// Friend request statuses. pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// FriendRequest is one entry in the relationship ledger. Requests are kept
// as history after they resolve; only a pending request blocks a new one
// between the same pair.
type FriendRequest struct {
	ID         string    `db:"id" json:"id"`
	FromUserID string    `db:"from_user_id" json:"from_user_id"`
	ToUserID   string    `db:"to_user_id" json:"to_user_id"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Friendship is the symmetric edge derived from an accepted request.
// UserA < UserB so each pair stores exactly one row.
type Friendship struct {
	UserA     string    `db:"user_a" json:"user_a"`
	UserB     string    `db:"user_b" json:"user_b"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
