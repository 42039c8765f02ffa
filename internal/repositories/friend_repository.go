package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"social-service/internal/domain"
	"social-service/internal/models"
)

// FriendRepository abstracts the relationship ledger: friend requests plus
// the derived friendship edges.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req models.FriendRequest) error
	GetRequest(ctx context.Context, id string) (models.FriendRequest, error)
	Accept(ctx context.Context, requestID string) (models.FriendRequest, error)
	Decline(ctx context.Context, requestID string) (models.FriendRequest, error)
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)
	ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error)
	ListSent(ctx context.Context, userID string) ([]models.FriendRequest, error)
	ListFriends(ctx context.Context, userID string) ([]models.User, error)
}

// FriendRepo is a sqlx implementation of FriendRepository.
type FriendRepo struct {
	db *sqlx.DB
}

// NewFriendRepo constructs a FriendRepo.
func NewFriendRepo(db *sqlx.DB) *FriendRepo {
	return &FriendRepo{db: db}
}

// CreateRequest inserts a pending request. The partial unique index over the
// unordered pair rejects a second pending request in either direction, so
// concurrent sends cannot both land.
func (r *FriendRepo) CreateRequest(ctx context.Context, req models.FriendRequest) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO friend_requests (id, from_user_id, to_user_id, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
		req.ID, req.FromUserID, req.ToUserID, req.Status, req.CreatedAt)
	if err != nil {
		return pqConstraintErr(err, "friend_requests_pending_pair", domain.ErrDuplicateRequest)
	}
	return nil
}

// GetRequest fetches a request by id.
func (r *FriendRepo) GetRequest(ctx context.Context, id string) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.GetContext(ctx, &req,
		`SELECT id, from_user_id, to_user_id, status, created_at FROM friend_requests WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendRequest{}, domain.ErrNotFound
	}
	return req, storeErr(err)
}

// Accept flips a pending request to accepted and creates the friendship edge
// in one transaction. The request row is locked so the state check and the
// two writes cannot interleave with a concurrent resolve.
func (r *FriendRepo) Accept(ctx context.Context, requestID string) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		req, err = lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != models.RequestPending {
			return domain.ErrInvalidState
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE friend_requests SET status=$2 WHERE id=$1`, requestID, models.RequestAccepted); err != nil {
			return storeErr(err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO friendships (user_a, user_b)
             VALUES (LEAST($1, $2), GREATEST($1, $2))
             ON CONFLICT (user_a, user_b) DO NOTHING`,
			req.FromUserID, req.ToUserID); err != nil {
			return storeErr(err)
		}
		req.Status = models.RequestAccepted
		return nil
	})
	return req, err
}

// Decline flips a pending request to declined. No friendship is created and
// the resolved request never blocks a future one.
func (r *FriendRepo) Decline(ctx context.Context, requestID string) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		req, err = lockRequest(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req.Status != models.RequestPending {
			return domain.ErrInvalidState
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE friend_requests SET status=$2 WHERE id=$1`, requestID, models.RequestDeclined); err != nil {
			return storeErr(err)
		}
		req.Status = models.RequestDeclined
		return nil
	})
	return req, err
}

// AreFriends reports whether a friendship edge exists for the pair.
func (r *FriendRepo) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM friendships WHERE user_a=LEAST($1, $2) AND user_b=GREATEST($1, $2))`,
		userID, friendID)
	return exists, storeErr(err)
}

// ListIncoming returns pending requests addressed to the user, newest first.
func (r *FriendRepo) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT id, from_user_id, to_user_id, status, created_at FROM friend_requests
         WHERE to_user_id=$1 AND status=$2 ORDER BY created_at DESC`,
		userID, models.RequestPending)
	return reqs, storeErr(err)
}

// ListSent returns pending requests sent by the user, newest first.
func (r *FriendRepo) ListSent(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	var reqs []models.FriendRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT id, from_user_id, to_user_id, status, created_at FROM friend_requests
         WHERE from_user_id=$1 AND status=$2 ORDER BY created_at DESC`,
		userID, models.RequestPending)
	return reqs, storeErr(err)
}

// ListFriends returns the profiles sharing a friendship edge with the user.
func (r *FriendRepo) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT u.id, u.email, u.display_name, u.is_online, u.last_seen, u.disabled, u.created_at
         FROM friendships f
         JOIN users u ON u.id = CASE WHEN f.user_a=$1 THEN f.user_b ELSE f.user_a END
         WHERE f.user_a=$1 OR f.user_b=$1
         ORDER BY u.display_name ASC`, userID)
	return users, storeErr(err)
}

func lockRequest(ctx context.Context, tx *sqlx.Tx, requestID string) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := tx.GetContext(ctx, &req,
		`SELECT id, from_user_id, to_user_id, status, created_at FROM friend_requests WHERE id=$1 FOR UPDATE`,
		requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendRequest{}, domain.ErrNotFound
	}
	return req, storeErr(err)
}

func (r *FriendRepo) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr(err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	return storeErr(tx.Commit())
}
