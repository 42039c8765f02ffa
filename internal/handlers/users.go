package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
)

// UserHandler manages directory endpoints.
type UserHandler struct {
	directory *services.DirectoryService
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(directory *services.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// Register creates the directory profile for the authenticated user.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.directory.Register(c.Request.Context(), c.GetString("userID"), req.Email, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.directory.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe changes the caller's display name.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.directory.UpdateProfile(c.Request.Context(), c.GetString("userID"), req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Lookup finds a profile by exact email. Absence is an empty 200, not 404,
// so the client can distinguish "no such user" from a failed call.
func (h *UserHandler) Lookup(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	user, err := h.directory.FindByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SetPresence updates the caller's online flag and last-seen time.
func (h *UserHandler) SetPresence(c *gin.Context) {
	var req struct {
		IsOnline bool       `json:"is_online"`
		LastSeen *time.Time `json:"last_seen"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.directory.SetPresence(c.Request.Context(), c.GetString("userID"), req.IsOnline, req.LastSeen); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Deactivate soft-disables the caller's profile.
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.directory.Disable(c.Request.Context(), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
