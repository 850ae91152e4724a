package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iqbaldf/chatline/internal/types"
)

// MemoryStore keeps conversations and messages in process memory. One lock
// serializes all mutations, so message appends within a conversation get a
// total order; per-insert sequence numbers break createdAt ties.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*types.Conversation
	messages      map[string][]*types.Message
	seq           uint64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*types.Conversation),
		messages:      make(map[string][]*types.Message),
	}
}

func (s *MemoryStore) CreateConversation(_ context.Context, params CreateConversationParams) (*types.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	conv := &types.Conversation{
		ID:        uuid.New().String(),
		UserID:    params.UserID,
		Title:     params.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations[conv.ID] = conv

	copied := *conv
	return &copied, nil
}

func (s *MemoryStore) GetConversations(_ context.Context, userID string) ([]*types.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*types.Conversation, 0)
	for _, conv := range s.conversations {
		if conv.UserID != userID {
			continue
		}
		copied := *conv
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (s *MemoryStore) GetConversation(_ context.Context, id string) (*types.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (s *MemoryStore) UpdateConversation(_ context.Context, id string, patch ConversationPatch) (*types.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		conv.Title = *patch.Title
	}
	conv.UpdatedAt = time.Now()

	copied := *conv
	return &copied, nil
}

func (s *MemoryStore) DeleteConversation(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return false, nil
	}
	delete(s.conversations, id)
	delete(s.messages, id)
	return true, nil
}

func (s *MemoryStore) CreateMessage(_ context.Context, params CreateMessageParams) (*types.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[params.ConversationID]; !ok {
		return nil, types.NewNotFoundError("conversation " + params.ConversationID + " does not exist")
	}

	s.seq++
	msg := &types.Message{
		ID:             uuid.New().String(),
		ConversationID: params.ConversationID,
		Role:           params.Role,
		Content:        params.Content,
		Attachments:    params.Attachments,
		Metadata:       params.Metadata,
		CreatedAt:      time.Now(),
	}
	s.messages[params.ConversationID] = append(s.messages[params.ConversationID], msg)

	copied := *msg
	return &copied, nil
}

func (s *MemoryStore) GetMessages(_ context.Context, conversationID string) ([]*types.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[conversationID]
	result := make([]*types.Message, 0, len(stored))
	for _, msg := range stored {
		copied := *msg
		result = append(result, &copied)
	}

	// Appends already give insertion order; the stable sort only reorders
	// when createdAt values disagree with it.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) DeleteMessages(_ context.Context, conversationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := len(s.messages[conversationID])
	delete(s.messages, conversationID)
	return existing > 0, nil
}
