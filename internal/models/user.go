package models

import "time"

// User is a directory profile. Users are soft-disabled, never deleted.
type User struct {
	ID          string     `db:"id" json:"id"`
	Email       string     `db:"email" json:"email"`
	DisplayName string     `db:"display_name" json:"display_name"`
	IsOnline    bool       `db:"is_online" json:"is_online"`
	LastSeen    *time.Time `db:"last_seen" json:"last_seen,omitempty"`
	Disabled    bool       `db:"disabled" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
