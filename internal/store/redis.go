package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/types"
)

const (
	conversationKeyPrefix = "chatline:conv:"
	conversationIndexKey  = "chatline:conversations"
	messagesKeySuffix     = ":msgs"
)

// RedisStore persists conversations as JSON values and messages as Redis
// lists. RPUSH is atomic, which serializes message appends per conversation.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the configured Redis instance
func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func conversationKey(id string) string {
	return conversationKeyPrefix + id
}

func messagesKey(id string) string {
	return conversationKeyPrefix + id + messagesKeySuffix
}

func (s *RedisStore) CreateConversation(ctx context.Context, params CreateConversationParams) (*types.Conversation, error) {
	now := time.Now()
	conv := &types.Conversation{
		ID:        uuid.New().String(),
		UserID:    params.UserID,
		Title:     params.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.writeConversation(ctx, conv); err != nil {
		return nil, err
	}
	if err := s.client.SAdd(ctx, conversationIndexKey, conv.ID).Err(); err != nil {
		return nil, fmt.Errorf("failed to index conversation: %w", err)
	}
	return conv, nil
}

func (s *RedisStore) GetConversations(ctx context.Context, userID string) ([]*types.Conversation, error) {
	ids, err := s.client.SMembers(ctx, conversationIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	result := make([]*types.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := s.GetConversation(ctx, id)
		if err != nil {
			return nil, err
		}
		if conv == nil || conv.UserID != userID {
			continue
		}
		result = append(result, conv)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (s *RedisStore) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	data, err := s.client.Get(ctx, conversationKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	var conv types.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return &conv, nil
}

func (s *RedisStore) UpdateConversation(ctx context.Context, id string, patch ConversationPatch) (*types.Conversation, error) {
	conv, err := s.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, nil
	}

	if patch.Title != nil {
		conv.Title = *patch.Title
	}
	conv.UpdatedAt = time.Now()

	if err := s.writeConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *RedisStore) DeleteConversation(ctx context.Context, id string) (bool, error) {
	deleted, err := s.client.Del(ctx, conversationKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete conversation: %w", err)
	}
	if err := s.client.Del(ctx, messagesKey(id)).Err(); err != nil {
		return false, fmt.Errorf("failed to delete messages: %w", err)
	}
	if err := s.client.SRem(ctx, conversationIndexKey, id).Err(); err != nil {
		return false, fmt.Errorf("failed to unindex conversation: %w", err)
	}
	return deleted > 0, nil
}

func (s *RedisStore) CreateMessage(ctx context.Context, params CreateMessageParams) (*types.Message, error) {
	conv, err := s.GetConversation(ctx, params.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, types.NewNotFoundError("conversation " + params.ConversationID + " does not exist")
	}

	msg := &types.Message{
		ID:             uuid.New().String(),
		ConversationID: params.ConversationID,
		Role:           params.Role,
		Content:        params.Content,
		Attachments:    params.Attachments,
		Metadata:       params.Metadata,
		CreatedAt:      time.Now(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	if err := s.client.RPush(ctx, messagesKey(params.ConversationID), data).Err(); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return msg, nil
}

func (s *RedisStore) GetMessages(ctx context.Context, conversationID string) ([]*types.Message, error) {
	items, err := s.client.LRange(ctx, messagesKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	result := make([]*types.Message, 0, len(items))
	for _, item := range items {
		var msg types.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		result = append(result, &msg)
	}
	return result, nil
}

func (s *RedisStore) DeleteMessages(ctx context.Context, conversationID string) (bool, error) {
	deleted, err := s.client.Del(ctx, messagesKey(conversationID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete messages: %w", err)
	}
	return deleted > 0, nil
}

func (s *RedisStore) writeConversation(ctx context.Context, conv *types.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to encode conversation: %w", err)
	}
	if err := s.client.Set(ctx, conversationKey(conv.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}
	return nil
}
