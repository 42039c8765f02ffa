package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"social-service/internal/domain"
	"social-service/internal/models"
)

// StatusRepository abstracts ephemeral status persistence. Expiry is a
// read-time filter; expired rows are simply never returned.
type StatusRepository interface {
	CreateStatus(ctx context.Context, st models.Status) error
	GetStatus(ctx context.Context, id string) (models.Status, error)
	ListVisible(ctx context.Context, viewerID string, now time.Time) ([]models.Status, error)
	MarkViewed(ctx context.Context, statusID, viewerID string, at time.Time) error
}

// StatusRepo is a sqlx implementation of StatusRepository.
type StatusRepo struct {
	db *sqlx.DB
}

// NewStatusRepo constructs a StatusRepo.
func NewStatusRepo(db *sqlx.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// CreateStatus stores a new status post.
func (r *StatusRepo) CreateStatus(ctx context.Context, st models.Status) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO statuses (id, user_id, kind, body, image_url, caption, created_at, expires_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		st.ID, st.UserID, st.Kind, st.Body, st.ImageURL, st.Caption, st.CreatedAt, st.ExpiresAt)
	return storeErr(err)
}

const statusColumns = `s.id, s.user_id, s.kind, s.body, s.image_url, s.caption, s.created_at, s.expires_at,
    COALESCE(array_agg(v.viewer_id) FILTER (WHERE v.viewer_id IS NOT NULL), '{}') AS viewed_by`

// GetStatus fetches a status with its viewer set.
func (r *StatusRepo) GetStatus(ctx context.Context, id string) (models.Status, error) {
	row := r.db.QueryRowxContext(ctx,
		`SELECT `+statusColumns+`
         FROM statuses s
         LEFT JOIN status_views v ON v.status_id = s.id
         WHERE s.id=$1
         GROUP BY s.id`, id)
	st, err := scanStatus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Status{}, domain.ErrNotFound
	}
	return st, storeErr(err)
}

// ListVisible returns unexpired statuses posted by the viewer or by one of
// the viewer's friends, newest first.
func (r *StatusRepo) ListVisible(ctx context.Context, viewerID string, now time.Time) ([]models.Status, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT `+statusColumns+`
         FROM statuses s
         LEFT JOIN status_views v ON v.status_id = s.id
         WHERE s.expires_at > $2
           AND (s.user_id = $1 OR EXISTS (
               SELECT 1 FROM friendships f
               WHERE f.user_a = LEAST($1, s.user_id) AND f.user_b = GREATEST($1, s.user_id)))
         GROUP BY s.id
         ORDER BY s.created_at DESC`, viewerID, now)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var result []models.Status
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		result = append(result, st)
	}
	return result, storeErr(rows.Err())
}

// MarkViewed records that viewerID saw the status. Idempotent.
func (r *StatusRepo) MarkViewed(ctx context.Context, statusID, viewerID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO status_views (status_id, viewer_id, viewed_at) VALUES ($1, $2, $3)
         ON CONFLICT (status_id, viewer_id) DO NOTHING`,
		statusID, viewerID, at)
	return storeErr(err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatus(row rowScanner) (models.Status, error) {
	var st models.Status
	var viewedBy pq.StringArray
	err := row.Scan(&st.ID, &st.UserID, &st.Kind, &st.Body, &st.ImageURL, &st.Caption,
		&st.CreatedAt, &st.ExpiresAt, &viewedBy)
	st.ViewedBy = []string(viewedBy)
	return st, err
}
