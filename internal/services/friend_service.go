package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"social-service/internal/domain"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

// FriendService owns the friend-request state machine and the derived
// friendship relation. Transitions: pending -> accepted | declined, both
// terminal; the friendship edge is written only by the accept transition.
type FriendService struct {
	friends repositories.FriendRepository
	users   repositories.UserRepository
	now     func() time.Time
}

// NewFriendService constructs a FriendService.
func NewFriendService(friends repositories.FriendRepository, users repositories.UserRepository) *FriendService {
	return &FriendService{friends: friends, users: users, now: time.Now}
}

// SendRequest creates a pending request from fromID to toID.
func (s *FriendService) SendRequest(ctx context.Context, fromID, toID string) (models.FriendRequest, error) {
	if fromID == toID {
		return models.FriendRequest{}, fmt.Errorf("%w: cannot send a friend request to yourself", domain.ErrValidation)
	}
	if _, err := s.users.GetUser(ctx, toID); err != nil {
		return models.FriendRequest{}, err
	}

	friends, err := s.friends.AreFriends(ctx, fromID, toID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if friends {
		return models.FriendRequest{}, domain.ErrAlreadyFriends
	}

	req := models.FriendRequest{
		ID:         uuid.NewString(),
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.RequestPending,
		CreatedAt:  s.now(),
	}
	// The store's pending-pair uniqueness catches the race where two sends
	// for the same pair arrive together.
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		return models.FriendRequest{}, err
	}
	return req, nil
}

// AcceptRequest resolves a pending request addressed to actingUserID and
// creates the friendship edge. The flip and the edge are one atomic write.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, actingUserID string) (models.FriendRequest, error) {
	req, err := s.friends.GetRequest(ctx, requestID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if req.ToUserID != actingUserID {
		return models.FriendRequest{}, domain.ErrForbidden
	}
	if req.Status != models.RequestPending {
		return models.FriendRequest{}, domain.ErrInvalidState
	}
	return s.friends.Accept(ctx, requestID)
}

// DeclineRequest resolves a pending request without creating a friendship.
// A declined request never blocks either party from sending a new one.
func (s *FriendService) DeclineRequest(ctx context.Context, requestID, actingUserID string) (models.FriendRequest, error) {
	req, err := s.friends.GetRequest(ctx, requestID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if req.ToUserID != actingUserID {
		return models.FriendRequest{}, domain.ErrForbidden
	}
	if req.Status != models.RequestPending {
		return models.FriendRequest{}, domain.ErrInvalidState
	}
	return s.friends.Decline(ctx, requestID)
}

// ListIncoming returns pending requests addressed to the user, newest first.
func (s *FriendService) ListIncoming(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.friends.ListIncoming(ctx, userID)
}

// ListSent returns pending requests sent by the user, newest first.
func (s *FriendService) ListSent(ctx context.Context, userID string) ([]models.FriendRequest, error) {
	return s.friends.ListSent(ctx, userID)
}

// ListFriends returns every profile sharing a friendship edge with the user.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]models.User, error) {
	return s.friends.ListFriends(ctx, userID)
}

// AreFriends reports whether the pair shares a friendship edge.
func (s *FriendService) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	return s.friends.AreFriends(ctx, userID, friendID)
}
