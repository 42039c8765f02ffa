package services

import (
	"context"
	"strings"
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

// statusFixture seeds alice and bob as friends and carol as an outsider.
func statusFixture(t *testing.T) (*StatusService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	seedUsers(t, store, "alice", "bob", "carol")

	friends := NewFriendService(store, store)
	req, err := friends.SendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)
	_, err = friends.AcceptRequest(context.Background(), req.ID, "bob")
	require.NoError(t, err)

	return NewStatusService(store), store
}

func TestPostStatusValidation(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   PostStatusInput
	}{
		{"empty text", PostStatusInput{Kind: "text", Body: "   "}},
		{"overlong text", PostStatusInput{Kind: "text", Body: strings.Repeat("x", 501)}},
		{"empty image url", PostStatusInput{Kind: "image"}},
		{"unknown kind", PostStatusInput{Kind: "video", Body: "clip"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PostStatus(ctx, "alice", tc.in)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestStatusVisibleToFriendsOnly(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	st, err := svc.PostStatus(ctx, "alice", PostStatusInput{Kind: "text", Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, st.CreatedAt.Add(24*time.Hour), st.ExpiresAt)

	bobFeed, err := svc.ListVisible(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bobFeed.Unseen, 1)
	assert.Empty(t, bobFeed.Seen)
	assert.Equal(t, st.ID, bobFeed.Unseen[0].ID)

	// the owner sees their own status
	aliceFeed, err := svc.ListVisible(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceFeed.Unseen, 1)

	// a non-friend never sees it
	carolFeed, err := svc.ListVisible(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, carolFeed.Unseen)
	assert.Empty(t, carolFeed.Seen)
}

func TestMarkViewedIdempotent(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	st, err := svc.PostStatus(ctx, "alice", PostStatusInput{Kind: "image", ImageURL: "https://cdn.example.com/a.jpg", Caption: "sunset"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkViewed(ctx, st.ID, "bob"))
	require.NoError(t, svc.MarkViewed(ctx, st.ID, "bob"))

	feed, err := svc.ListVisible(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, feed.Unseen)
	require.Len(t, feed.Seen, 1)
	assert.Equal(t, []string{"bob"}, feed.Seen[0].ViewedBy)
}

func TestMarkViewedOwnStatusIsNoop(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	st, err := svc.PostStatus(ctx, "alice", PostStatusInput{Kind: "text", Body: "mine"})
	require.NoError(t, err)

	require.NoError(t, svc.MarkViewed(ctx, st.ID, "alice"))

	feed, err := svc.ListVisible(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed.Unseen, 1)
	assert.Empty(t, feed.Unseen[0].ViewedBy)
}

func TestMarkViewedUnknownStatus(t *testing.T) {
	svc, _ := statusFixture(t)
	require.ErrorIs(t, svc.MarkViewed(context.Background(), "missing", "bob"), domain.ErrNotFound)
}

func TestExpiredStatusInvisible(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	st, err := svc.PostStatus(ctx, "alice", PostStatusInput{Kind: "text", Body: "fleeting"})
	require.NoError(t, err)

	svc.now = func() time.Time { return st.CreatedAt.Add(25 * time.Hour) }

	for _, viewer := range []string{"alice", "bob", "carol"} {
		feed, err := svc.ListVisible(ctx, viewer)
		require.NoError(t, err)
		assert.Empty(t, feed.Unseen, "viewer %s", viewer)
		assert.Empty(t, feed.Seen, "viewer %s", viewer)
	}

	require.ErrorIs(t, svc.MarkViewed(ctx, st.ID, "bob"), domain.ErrNotFound)
}

func TestFeedOrderedNewestFirst(t *testing.T) {
	svc, _ := statusFixture(t)
	ctx := context.Background()

	base := time.Now()
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	older, err := svc.PostStatus(ctx, "alice", PostStatusInput{Kind: "text", Body: "first"})
	require.NoError(t, err)
	newer, err := svc.PostStatus(ctx, "bob", PostStatusInput{Kind: "text", Body: "second"})
	require.NoError(t, err)

	feed, err := svc.ListVisible(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed.Unseen, 2)
	assert.Equal(t, newer.ID, feed.Unseen[0].ID)
	assert.Equal(t, older.ID, feed.Unseen[1].ID)
}

func TestPostStatusPropagatesTransientError(t *testing.T) {
	statusRepo := new(mocks.StatusRepositoryMock)
	svc := NewStatusService(statusRepo)

	statusRepo.On("CreateStatus", mock.Anything, mock.Anything).
		Return(domain.ErrTransient).Once()

	_, err := svc.PostStatus(context.Background(), "alice", PostStatusInput{Kind: models.StatusText, Body: "hello"})
	require.ErrorIs(t, err, domain.ErrTransient)
	statusRepo.AssertExpectations(t)
}
