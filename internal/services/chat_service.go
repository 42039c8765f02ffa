package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"social-service/internal/domain"
	"social-service/internal/models"
	"social-service/internal/repositories"
)

const lastMessageSummaryLen = 120

// ChatService owns the conversation index: one chat per pair of mutual
// friends, append-only ordered messages within it.
type ChatService struct {
	chats    repositories.ChatRepository
	messages repositories.MessageRepository
	friends  repositories.FriendRepository
	now      func() time.Time
}

// NewChatService constructs a ChatService.
func NewChatService(chats repositories.ChatRepository, messages repositories.MessageRepository, friends repositories.FriendRepository) *ChatService {
	return &ChatService{chats: chats, messages: messages, friends: friends, now: time.Now}
}

// GetOrCreateChat returns the single chat for the pair, creating it lazily.
// Chats only exist between mutual friends.
func (s *ChatService) GetOrCreateChat(ctx context.Context, userID, friendID string) (models.Chat, error) {
	if userID == friendID {
		return models.Chat{}, fmt.Errorf("%w: cannot chat with yourself", domain.ErrValidation)
	}
	friends, err := s.friends.AreFriends(ctx, userID, friendID)
	if err != nil {
		return models.Chat{}, err
	}
	if !friends {
		return models.Chat{}, domain.ErrForbidden
	}
	return s.chats.CreateOrGetChat(ctx, userID, friendID)
}

// SendMessage appends a message to the chat and refreshes the chat's
// last-message summary.
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID, content, kind string) (models.Message, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}
	if !chat.Participant(senderID) {
		return models.Message{}, domain.ErrForbidden
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, fmt.Errorf("%w: message content is empty", domain.ErrValidation)
	}
	if kind == "" {
		kind = models.MessageText
	}
	switch kind {
	case models.MessageText, models.MessageImage, models.MessageFile:
	default:
		return models.Message{}, fmt.Errorf("%w: unknown message kind %q", domain.ErrValidation, kind)
	}

	msg := models.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
		CreatedAt: s.now(),
	}
	msg, err = s.messages.CreateMessage(ctx, msg)
	if err != nil {
		return models.Message{}, err
	}

	if err := s.chats.TouchLastMessage(ctx, chatID, summarize(content), msg.CreatedAt); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// ListMessages returns the chat's messages oldest first for a participant.
func (s *ChatService) ListMessages(ctx context.Context, chatID, requesterID string) ([]models.Message, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Participant(requesterID) {
		return nil, domain.ErrForbidden
	}
	return s.messages.ListMessages(ctx, chatID)
}

// ListChats returns the user's chats, most recently active first.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	return s.chats.ListChats(ctx, userID)
}

// GetChat returns a chat only to its participants.
func (s *ChatService) GetChat(ctx context.Context, chatID, requesterID string) (models.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return models.Chat{}, err
	}
	if !chat.Participant(requesterID) {
		return models.Chat{}, domain.ErrForbidden
	}
	return chat, nil
}

func summarize(content string) string {
	if len(content) <= lastMessageSummaryLen {
		return content
	}
	// Never cut a multi-byte rune in half.
	cut := lastMessageSummaryLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}
