// Package memstore is an in-memory implementation of the repository
// interfaces. It backs tests and local runs (STORE=memory) and mirrors the
// Postgres store's invariants: one pending request and one chat per
// unordered pair, atomic accept, idempotent view marks.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"social-service/internal/domain"
	"social-service/internal/models"
)

// Store holds every table behind a single mutex. Operations that touch
// several tables (Accept, CreateOrGetChat) are atomic by construction.
type Store struct {
	mu          sync.Mutex
	users       map[string]models.User
	emails      map[string]string
	requests    map[string]models.FriendRequest
	friendships map[string]models.Friendship
	statuses    map[string]models.Status
	views       map[string]map[string]time.Time
	chats       map[string]models.Chat
	chatByPair  map[string]string
	messages    map[string][]models.Message
	seq         int64
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:       make(map[string]models.User),
		emails:      make(map[string]string),
		requests:    make(map[string]models.FriendRequest),
		friendships: make(map[string]models.Friendship),
		statuses:    make(map[string]models.Status),
		views:       make(map[string]map[string]time.Time),
		chats:       make(map[string]models.Chat),
		chatByPair:  make(map[string]string),
		messages:    make(map[string][]models.Message),
	}
}

func newID() string {
	return uuid.NewString()
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// --- UserRepository ---

func (s *Store) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, taken := s.emails[email]; taken {
		return domain.ErrValidation
	}
	user.Email = email
	s.users[user.ID] = user
	s.emails[email] = user.ID
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, domain.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	user := s.users[id]
	return &user, nil
}

func (s *Store) UpdateProfile(_ context.Context, id string, displayName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.DisplayName = displayName
	s.users[id] = user
	return nil
}

func (s *Store) SetPresence(_ context.Context, id string, online bool, lastSeen *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.IsOnline = online
	if lastSeen != nil {
		user.LastSeen = lastSeen
	}
	s.users[id] = user
	return nil
}

func (s *Store) SetDisabled(_ context.Context, id string, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.Disabled = disabled
	s.users[id] = user
	return nil
}

// --- FriendRepository ---

func (s *Store) CreateRequest(_ context.Context, req models.FriendRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(req.FromUserID, req.ToUserID)
	for _, existing := range s.requests {
		if existing.Status == models.RequestPending && pairKey(existing.FromUserID, existing.ToUserID) == key {
			return domain.ErrDuplicateRequest
		}
	}
	s.requests[req.ID] = req
	return nil
}

func (s *Store) GetRequest(_ context.Context, id string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return models.FriendRequest{}, domain.ErrNotFound
	}
	return req, nil
}

func (s *Store) Accept(_ context.Context, requestID string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return models.FriendRequest{}, domain.ErrNotFound
	}
	if req.Status != models.RequestPending {
		return models.FriendRequest{}, domain.ErrInvalidState
	}
	req.Status = models.RequestAccepted
	s.requests[requestID] = req
	key := pairKey(req.FromUserID, req.ToUserID)
	if _, exists := s.friendships[key]; !exists {
		a, b := req.FromUserID, req.ToUserID
		if a > b {
			a, b = b, a
		}
		s.friendships[key] = models.Friendship{UserA: a, UserB: b, CreatedAt: time.Now()}
	}
	return req, nil
}

func (s *Store) Decline(_ context.Context, requestID string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return models.FriendRequest{}, domain.ErrNotFound
	}
	if req.Status != models.RequestPending {
		return models.FriendRequest{}, domain.ErrInvalidState
	}
	req.Status = models.RequestDeclined
	s.requests[requestID] = req
	return req, nil
}

func (s *Store) AreFriends(_ context.Context, userID, friendID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.friendships[pairKey(userID, friendID)]
	return ok, nil
}

func (s *Store) ListIncoming(_ context.Context, userID string) ([]models.FriendRequest, error) {
	return s.listRequests(func(req models.FriendRequest) bool {
		return req.ToUserID == userID
	})
}

func (s *Store) ListSent(_ context.Context, userID string) ([]models.FriendRequest, error) {
	return s.listRequests(func(req models.FriendRequest) bool {
		return req.FromUserID == userID
	})
}

func (s *Store) listRequests(match func(models.FriendRequest) bool) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var reqs []models.FriendRequest
	for _, req := range s.requests {
		if req.Status == models.RequestPending && match(req) {
			reqs = append(reqs, req)
		}
	}
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
	return reqs, nil
}

func (s *Store) ListFriends(_ context.Context, userID string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var friends []models.User
	for _, edge := range s.friendships {
		var friendID string
		switch userID {
		case edge.UserA:
			friendID = edge.UserB
		case edge.UserB:
			friendID = edge.UserA
		default:
			continue
		}
		if user, ok := s.users[friendID]; ok {
			friends = append(friends, user)
		}
	}
	sort.Slice(friends, func(i, j int) bool {
		return friends[i].DisplayName < friends[j].DisplayName
	})
	return friends, nil
}

// --- StatusRepository ---

func (s *Store) CreateStatus(_ context.Context, st models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.ViewedBy = nil
	s.statuses[st.ID] = st
	return nil
}

func (s *Store) GetStatus(_ context.Context, id string) (models.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.statuses[id]
	if !ok {
		return models.Status{}, domain.ErrNotFound
	}
	st.ViewedBy = s.viewersOf(id)
	return st, nil
}

func (s *Store) ListVisible(_ context.Context, viewerID string, now time.Time) ([]models.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Status
	for id, st := range s.statuses {
		if st.Expired(now) {
			continue
		}
		if st.UserID != viewerID {
			if _, friends := s.friendships[pairKey(viewerID, st.UserID)]; !friends {
				continue
			}
		}
		st.ViewedBy = s.viewersOf(id)
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) MarkViewed(_ context.Context, statusID, viewerID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.statuses[statusID]; !ok {
		return domain.ErrNotFound
	}
	if s.views[statusID] == nil {
		s.views[statusID] = make(map[string]time.Time)
	}
	if _, seen := s.views[statusID][viewerID]; !seen {
		s.views[statusID][viewerID] = at
	}
	return nil
}

func (s *Store) viewersOf(statusID string) []string {
	viewers := make([]string, 0, len(s.views[statusID]))
	for viewer := range s.views[statusID] {
		viewers = append(viewers, viewer)
	}
	sort.Strings(viewers)
	return viewers
}

// --- ChatRepository ---

func (s *Store) CreateOrGetChat(_ context.Context, userID, friendID string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(userID, friendID)
	if id, ok := s.chatByPair[key]; ok {
		return s.chats[id], nil
	}
	a, b := userID, friendID
	if a > b {
		a, b = b, a
	}
	now := time.Now()
	chat := models.Chat{
		ID:        newID(),
		User1ID:   a,
		User2ID:   b,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.chats[chat.ID] = chat
	s.chatByPair[key] = chat.ID
	return chat, nil
}

func (s *Store) GetChat(_ context.Context, chatID string) (models.Chat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return models.Chat{}, domain.ErrNotFound
	}
	return chat, nil
}

func (s *Store) ListChats(_ context.Context, userID string) ([]models.ChatSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.ChatSummary
	for _, chat := range s.chats {
		if !chat.Participant(userID) {
			continue
		}
		friendID := chat.User1ID
		if friendID == userID {
			friendID = chat.User2ID
		}
		result = append(result, models.ChatSummary{
			ChatID:        chat.ID,
			FriendID:      friendID,
			LastMessage:   chat.LastMessage,
			LastMessageAt: chat.LastMessageAt,
			UpdatedAt:     chat.UpdatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (s *Store) TouchLastMessage(_ context.Context, chatID, summary string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat, ok := s.chats[chatID]
	if !ok {
		return domain.ErrNotFound
	}
	chat.LastMessage = &summary
	chat.LastMessageAt = &at
	chat.UpdatedAt = at
	s.chats[chatID] = chat
	return nil
}

// --- MessageRepository ---

func (s *Store) CreateMessage(_ context.Context, msg models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chats[msg.ChatID]; !ok {
		return models.Message{}, domain.ErrNotFound
	}
	s.seq++
	msg.Seq = s.seq
	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], msg)
	return msg, nil
}

func (s *Store) ListMessages(_ context.Context, chatID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := make([]models.Message, len(s.messages[chatID]))
	copy(msgs, s.messages[chatID])
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].Seq < msgs[j].Seq
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}
