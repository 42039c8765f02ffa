package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"social-service/internal/domain"
	"social-service/internal/models"
)

// UserRepository abstracts directory persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, displayName string) error
	SetPresence(ctx context.Context, id string, online bool, lastSeen *time.Time) error
	SetDisabled(ctx context.Context, id string, disabled bool) error
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new profile. Duplicate emails fail validation.
func (r *UserRepo) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, display_name, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, strings.ToLower(user.Email), user.DisplayName, user.CreatedAt)
	if err != nil {
		return pqConstraintErr(err, "users_email_key", domain.ErrValidation)
	}
	return nil
}

// GetUser fetches a profile by id.
func (r *UserRepo) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, email, display_name, is_online, last_seen, disabled, created_at FROM users WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.ErrNotFound
	}
	return user, storeErr(err)
}

// FindByEmail looks up a profile by exact, case-insensitive email.
// Absence is not an error: the result is nil, nil.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT id, email, display_name, is_online, last_seen, disabled, created_at FROM users WHERE email=$1`,
		strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &user, nil
}

// UpdateProfile changes the display name.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, displayName string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET display_name=$2 WHERE id=$1`, id, displayName)
	if err != nil {
		return storeErr(err)
	}
	return requireRow(res)
}

// SetPresence mutates the presence columns.
func (r *UserRepo) SetPresence(ctx context.Context, id string, online bool, lastSeen *time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_online=$2, last_seen=COALESCE($3, last_seen) WHERE id=$1`,
		id, online, lastSeen)
	if err != nil {
		return storeErr(err)
	}
	return requireRow(res)
}

// SetDisabled soft-disables (or re-enables) a profile.
func (r *UserRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET disabled=$2 WHERE id=$1`, id, disabled)
	if err != nil {
		return storeErr(err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
