package models

import "time"

// Status content kinds.
const (
	StatusText  = "text"
	StatusImage = "image"
)

// Status is an ephemeral post visible to the owner's friends for 24 hours.
type Status struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	Body      string    `db:"body" json:"body,omitempty"`
	ImageURL  string    `db:"image_url" json:"image_url,omitempty"`
	Caption   string    `db:"caption" json:"caption,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	ViewedBy  []string  `db:"-" json:"viewed_by"`
}

// Expired reports whether the status is past its visibility window.
func (s Status) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
