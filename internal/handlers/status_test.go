package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/memstore"
	"social-service/internal/models"
	"social-service/internal/services"
)

func setupStatusRouter(t *testing.T, caller *string) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	seedUsers(t, store, "alice", "bob", "carol")

	friends := services.NewFriendService(store, store)
	req, err := friends.SendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)
	_, err = friends.AcceptRequest(context.Background(), req.ID, "bob")
	require.NoError(t, err)

	handler := NewStatusHandler(services.NewStatusService(store), nil)

	r := gin.New()
	r.Use(asUser(caller))
	r.POST("/statuses", handler.PostStatus)
	r.GET("/statuses", handler.ListVisible)
	r.POST("/statuses/:status_id/view", handler.MarkViewed)
	return r, store
}

func TestStatusFeedLifecycle(t *testing.T) {
	caller := "alice"
	router, _ := setupStatusRouter(t, &caller)

	rec := doJSON(t, router, http.MethodPost, "/statuses", `{"kind":"text","body":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var posted models.Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&posted))

	caller = "bob"
	rec = doJSON(t, router, http.MethodGet, "/statuses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var feed struct {
		Unseen []models.Status `json:"unseen"`
		Seen   []models.Status `json:"seen"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&feed))
	require.Len(t, feed.Unseen, 1)
	assert.Empty(t, feed.Seen)

	rec = doJSON(t, router, http.MethodPost, "/statuses/"+posted.ID+"/view", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/statuses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&feed))
	assert.Empty(t, feed.Unseen)
	require.Len(t, feed.Seen, 1)

	// the feed is friend-gated
	caller = "carol"
	rec = doJSON(t, router, http.MethodGet, "/statuses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&feed))
	assert.Empty(t, feed.Unseen)
	assert.Empty(t, feed.Seen)
}

func TestPostStatusRejectsBadInput(t *testing.T) {
	caller := "alice"
	router, _ := setupStatusRouter(t, &caller)

	rec := doJSON(t, router, http.MethodPost, "/statuses", `{"body":"no kind"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/statuses", `{"kind":"video","body":"clip"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/statuses/missing/view", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
