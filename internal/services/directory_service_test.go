package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/domain"
	"social-service/internal/memstore"
	"social-service/internal/presence"
)

func newDirectoryFixture(t *testing.T) (*DirectoryService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	tracker := presence.NewTracker("", time.Minute)
	return NewDirectoryService(store, tracker), store
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newDirectoryFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "u1", "  Alice@Example.COM ", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	found, err := svc.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newDirectoryFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "not-an-email", "Alice")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(ctx, "u1", "a@example.com", "  ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(ctx, "u1", "a@example.com", "Alice")
	require.NoError(t, err)

	// duplicate email
	_, err = svc.Register(ctx, "u2", "A@Example.com", "Other")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestFindByEmailAbsentIsNotAnError(t *testing.T) {
	svc, _ := newDirectoryFixture(t)

	found, err := svc.FindByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newDirectoryFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "a@example.com", "Alice")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, "u1", "Alice B")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.DisplayName)

	_, err = svc.UpdateProfile(ctx, "u1", "   ")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(ctx, "missing", "Name")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetPresence(t *testing.T) {
	svc, _ := newDirectoryFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "a@example.com", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.SetPresence(ctx, "u1", true, nil))
	user, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, user.IsOnline)

	// going offline without an explicit timestamp stamps last seen
	require.NoError(t, svc.SetPresence(ctx, "u1", false, nil))
	user, err = svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, user.IsOnline)
	require.NotNil(t, user.LastSeen)
}

func TestDisableIsSoft(t *testing.T) {
	svc, _ := newDirectoryFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "u1", "a@example.com", "Alice")
	require.NoError(t, err)

	require.NoError(t, svc.Disable(ctx, "u1"))

	// the record stays readable
	user, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, user.Disabled)
}
