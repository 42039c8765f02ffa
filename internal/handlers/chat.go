package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-service/internal/services"
	"social-service/internal/ws"
)

// ChatHandler manages private chat endpoints.
type ChatHandler struct {
	chats *services.ChatService
	hub   *ws.Hub
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(chats *services.ChatService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{chats: chats, hub: hub}
}

// ListChats returns the chats of the authenticated user, most recent first.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.ListChats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// StartChat creates or returns the existing chat with a mutual friend.
func (h *ChatHandler) StartChat(c *gin.Context) {
	var req struct {
		FriendID string `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chats.GetOrCreateChat(c.Request.Context(), c.GetString("userID"), req.FriendID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// GetChatMessages returns the chat's messages for a participant.
func (h *ChatHandler) GetChatMessages(c *gin.Context) {
	msgs, err := h.chats.ListMessages(c.Request.Context(), c.Param("chat_id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostChatMessage stores a chat message and broadcasts it.
func (h *ChatHandler) PostChatMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		Kind    string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), c.Param("chat_id"), c.GetString("userID"), req.Content, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastMessage(msg.ChatID, msg)
	c.JSON(http.StatusCreated, msg)
}
