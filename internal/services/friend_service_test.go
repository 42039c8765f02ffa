package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-service/internal/domain"
	"social-service/internal/memstore"
	"social-service/internal/mocks"
	"social-service/internal/models"
)

func seedUsers(t *testing.T, store *memstore.Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		err := store.CreateUser(context.Background(), models.User{
			ID:          id,
			Email:       id + "@example.com",
			DisplayName: id,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	}
}

func newFriendFixture(t *testing.T) (*FriendService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	seedUsers(t, store, "alice", "bob", "carol")
	return NewFriendService(store, store), store
}

func TestSendRequestToSelf(t *testing.T) {
	svc, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), "alice", "alice")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendRequestUnknownRecipient(t *testing.T) {
	svc, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), "alice", "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendRequestDuplicateEitherDirection(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, "alice", "bob")
	require.ErrorIs(t, err, domain.ErrDuplicateRequest)

	_, err = svc.SendRequest(ctx, "bob", "alice")
	require.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestAcceptCreatesSymmetricFriendship(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	accepted, err := svc.AcceptRequest(ctx, req.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, accepted.Status)

	aliceFriends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	bobFriends, err := svc.ListFriends(ctx, "bob")
	require.NoError(t, err)

	require.Len(t, aliceFriends, 1)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].ID)
	assert.Equal(t, "alice", bobFriends[0].ID)

	// accepted is terminal
	_, err = svc.AcceptRequest(ctx, req.ID, "bob")
	require.ErrorIs(t, err, domain.ErrInvalidState)

	// a new request between friends is rejected
	_, err = svc.SendRequest(ctx, "alice", "bob")
	require.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestAcceptRequiresRecipient(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = svc.AcceptRequest(ctx, req.ID, "alice")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AcceptRequest(ctx, req.ID, "carol")
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AcceptRequest(ctx, "no-such-id", "bob")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeclineDoesNotBlockNewRequest(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	declined, err := svc.DeclineRequest(ctx, req.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.RequestDeclined, declined.Status)

	friends, err := svc.ListFriends(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, friends)

	// either party may try again
	_, err = svc.SendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	// declined is terminal
	_, err = svc.DeclineRequest(ctx, req.ID, "bob")
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestListIncomingAndSentNewestFirst(t *testing.T) {
	svc, _ := newFriendFixture(t)
	ctx := context.Background()

	base := time.Now()
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	first, err := svc.SendRequest(ctx, "alice", "carol")
	require.NoError(t, err)
	second, err := svc.SendRequest(ctx, "bob", "carol")
	require.NoError(t, err)

	incoming, err := svc.ListIncoming(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, second.ID, incoming[0].ID)
	assert.Equal(t, first.ID, incoming[1].ID)

	sent, err := svc.ListSent(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, first.ID, sent[0].ID)

	// resolved requests drop out of both lists
	_, err = svc.AcceptRequest(ctx, first.ID, "carol")
	require.NoError(t, err)
	incoming, err = svc.ListIncoming(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, second.ID, incoming[0].ID)
}

func TestSendRequestPropagatesTransientError(t *testing.T) {
	friendRepo := new(mocks.FriendRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	svc := NewFriendService(friendRepo, userRepo)

	userRepo.On("GetUser", mock.Anything, "bob").Return(models.User{ID: "bob"}, nil).Once()
	friendRepo.On("AreFriends", mock.Anything, "alice", "bob").Return(false, nil).Once()
	friendRepo.On("CreateRequest", mock.Anything, mock.Anything).Return(domain.ErrTransient).Once()

	_, err := svc.SendRequest(context.Background(), "alice", "bob")
	require.ErrorIs(t, err, domain.ErrTransient)
	friendRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
