package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"social-service/internal/domain"
	"social-service/internal/models"
	"social-service/internal/presence"
	"social-service/internal/repositories"
)

// DirectoryService owns user profiles and presence. Identity itself comes
// from the auth provider; this service only keeps the directory record.
type DirectoryService struct {
	users    repositories.UserRepository
	presence *presence.Tracker
	now      func() time.Time
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(users repositories.UserRepository, tracker *presence.Tracker) *DirectoryService {
	return &DirectoryService{users: users, presence: tracker, now: time.Now}
}

// Register creates the profile record for an authenticated user id.
func (s *DirectoryService) Register(ctx context.Context, userID, email, displayName string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if displayName == "" {
		return models.User{}, fmt.Errorf("%w: display name is empty", domain.ErrValidation)
	}

	user := models.User{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetProfile fetches a profile by id.
func (s *DirectoryService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdateProfile changes the display name.
func (s *DirectoryService) UpdateProfile(ctx context.Context, userID, displayName string) (models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return models.User{}, fmt.Errorf("%w: display name is empty", domain.ErrValidation)
	}
	if err := s.users.UpdateProfile(ctx, userID, displayName); err != nil {
		return models.User{}, err
	}
	return s.users.GetUser(ctx, userID)
}

// FindByEmail looks up a profile by exact email, case-insensitively.
// Absence is reported as nil, nil rather than an error.
func (s *DirectoryService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// SetPresence mutates the durable presence columns and the presence cache.
// The session layer decides when this fires.
func (s *DirectoryService) SetPresence(ctx context.Context, userID string, online bool, lastSeen *time.Time) error {
	if !online && lastSeen == nil {
		at := s.now()
		lastSeen = &at
	}
	if err := s.users.SetPresence(ctx, userID, online, lastSeen); err != nil {
		return err
	}
	if err := s.presence.Update(ctx, userID, online); err != nil {
		// The cache is advisory; the durable columns already changed.
		log.Printf("presence cache update failed user_id=%s: %v", userID, err)
	}
	return nil
}

// Disable soft-disables a profile. Users are never hard-deleted.
func (s *DirectoryService) Disable(ctx context.Context, userID string) error {
	return s.users.SetDisabled(ctx, userID, true)
}
