package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/observability"
	"social-service/internal/services"
	"social-service/internal/telemetry"
)

// StatusHandler manages ephemeral status endpoints.
type StatusHandler struct {
	statuses *services.StatusService
	audit    *telemetry.AuditEmitter
}

// NewStatusHandler builds a StatusHandler.
func NewStatusHandler(statuses *services.StatusService, audit *telemetry.AuditEmitter) *StatusHandler {
	return &StatusHandler{statuses: statuses, audit: audit}
}

// PostStatus creates a status visible to the caller's friends for 24 hours.
func (h *StatusHandler) PostStatus(c *gin.Context) {
	var req struct {
		Kind     string `json:"kind" binding:"required"`
		Body     string `json:"body"`
		ImageURL string `json:"image_url"`
		Caption  string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := h.statuses.PostStatus(c.Request.Context(), c.GetString("userID"), services.PostStatusInput{
		Kind:     req.Kind,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		Caption:  req.Caption,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	observability.IncStatusPost()
	h.audit.Emit(c.Request.Context(), "INFO",
		fmt.Sprintf("status posted status_id=%s kind=%s", st.ID, st.Kind),
		requestIDFromContext(c), userIDFromContext(c))
	c.JSON(http.StatusCreated, st)
}

// ListVisible returns the caller's status feed, split into unseen and seen.
func (h *StatusHandler) ListVisible(c *gin.Context) {
	feed, err := h.statuses.ListVisible(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkViewed records that the caller opened a status.
func (h *StatusHandler) MarkViewed(c *gin.Context) {
	err := h.statuses.MarkViewed(c.Request.Context(), c.Param("status_id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
