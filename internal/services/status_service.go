package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"social-service/internal/domain"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

const (
	statusTTL         = 24 * time.Hour
	maxStatusBodyLen  = 500
	maxStatusCaptions = 200
)

// PostStatusInput carries the user-supplied parts of a status post.
type PostStatusInput struct {
	Kind     string
	Body     string
	ImageURL string
	Caption  string
}

// VisibleStatuses partitions a viewer's feed into statuses they have not
// opened yet and ones they have, each newest first.
type VisibleStatuses struct {
	Unseen []models.Status `json:"unseen"`
	Seen   []models.Status `json:"seen"`
}

// StatusService owns the ephemeral status board.
type StatusService struct {
	statuses repositories.StatusRepository
	now      func() time.Time
}

// NewStatusService constructs a StatusService.
func NewStatusService(statuses repositories.StatusRepository) *StatusService {
	return &StatusService{statuses: statuses, now: time.Now}
}

// PostStatus validates and stores a status expiring 24 hours from now.
func (s *StatusService) PostStatus(ctx context.Context, userID string, in PostStatusInput) (models.Status, error) {
	st := models.Status{
		ID:      uuid.NewString(),
		UserID:  userID,
		Kind:    in.Kind,
		Caption: strings.TrimSpace(in.Caption),
	}

	switch in.Kind {
	case models.StatusText:
		st.Body = strings.TrimSpace(in.Body)
		if st.Body == "" {
			return models.Status{}, fmt.Errorf("%w: status text is empty", domain.ErrValidation)
		}
		if len(st.Body) > maxStatusBodyLen {
			return models.Status{}, fmt.Errorf("%w: status text exceeds %d characters", domain.ErrValidation, maxStatusBodyLen)
		}
	case models.StatusImage:
		st.ImageURL = strings.TrimSpace(in.ImageURL)
		if st.ImageURL == "" {
			return models.Status{}, fmt.Errorf("%w: image url is empty", domain.ErrValidation)
		}
	default:
		return models.Status{}, fmt.Errorf("%w: unknown status kind %q", domain.ErrValidation, in.Kind)
	}
	if len(st.Caption) > maxStatusCaptions {
		return models.Status{}, fmt.Errorf("%w: caption exceeds %d characters", domain.ErrValidation, maxStatusCaptions)
	}

	st.CreatedAt = s.now()
	st.ExpiresAt = st.CreatedAt.Add(statusTTL)
	if err := s.statuses.CreateStatus(ctx, st); err != nil {
		return models.Status{}, err
	}
	st.ViewedBy = []string{}
	return st, nil
}

// ListVisible returns the viewer's own and their friends' unexpired
// statuses, split by whether the viewer has opened them.
func (s *StatusService) ListVisible(ctx context.Context, viewerID string) (VisibleStatuses, error) {
	statuses, err := s.statuses.ListVisible(ctx, viewerID, s.now())
	if err != nil {
		return VisibleStatuses{}, err
	}

	feed := VisibleStatuses{Unseen: []models.Status{}, Seen: []models.Status{}}
	for _, st := range statuses {
		if contains(st.ViewedBy, viewerID) {
			feed.Seen = append(feed.Seen, st)
		} else {
			feed.Unseen = append(feed.Unseen, st)
		}
	}
	return feed, nil
}

// MarkViewed records that the viewer opened the status. Idempotent, and a
// no-op when the owner opens their own status. Expired statuses behave as
// if they no longer exist.
func (s *StatusService) MarkViewed(ctx context.Context, statusID, viewerID string) error {
	st, err := s.statuses.GetStatus(ctx, statusID)
	if err != nil {
		return err
	}
	if st.Expired(s.now()) {
		return domain.ErrNotFound
	}
	if st.UserID == viewerID {
		return nil
	}
	return s.statuses.MarkViewed(ctx, statusID, viewerID, s.now())
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
