package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/observability"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

// FriendHandler manages the friend-request lifecycle endpoints.
type FriendHandler struct {
	friends *services.FriendService
	audit   *telemetry.AuditEmitter
}

// NewFriendHandler builds a FriendHandler.
func NewFriendHandler(friends *services.FriendService, audit *telemetry.AuditEmitter) *FriendHandler {
	return &FriendHandler{friends: friends, audit: audit}
}

// SendRequest creates a pending friend request to another user.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req struct {
		ToUserID string `json:"to_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	created, err := h.friends.SendRequest(c.Request.Context(), userID, req.ToUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncFriendRequestTransition("sent")
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("friend request sent request_id=%s to_user=%s", created.ID, created.ToUserID),
		requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, created)
}

// AcceptRequest resolves a pending request addressed to the caller.
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID := c.GetString("userID")
	req, err := h.friends.AcceptRequest(c.Request.Context(), c.Param("request_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncFriendRequestTransition("accepted")
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("friend request accepted request_id=%s", req.ID),
		requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, req)
}

// DeclineRequest resolves a pending request without creating a friendship.
func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	userID := c.GetString("userID")
	req, err := h.friends.DeclineRequest(c.Request.Context(), c.Param("request_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncFriendRequestTransition("declined")
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("friend request declined request_id=%s", req.ID),
		requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusOK, req)
}

// ListIncoming returns pending requests addressed to the caller.
func (h *FriendHandler) ListIncoming(c *gin.Context) {
	reqs, err := h.friends.ListIncoming(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// ListSent returns pending requests the caller has sent.
func (h *FriendHandler) ListSent(c *gin.Context) {
	reqs, err := h.friends.ListSent(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// ListFriends returns the caller's friends.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends, err := h.friends.ListFriends(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}
