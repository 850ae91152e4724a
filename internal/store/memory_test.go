package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbaldf/chatline/internal/types"
)

func TestMemoryStore_ConversationLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, CreateConversationParams{Title: "First chat", UserID: "u1"})
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "First chat", conv.Title)
	assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)

	found, err := s.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, conv.ID, found.ID)

	missing, err := s.GetConversation(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	newTitle := "Renamed"
	updated, err := s.UpdateConversation(ctx, conv.ID, ConversationPatch{Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.UpdatedAt.Before(conv.UpdatedAt))
}

func TestMemoryStore_ListConversationsByUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateConversation(ctx, CreateConversationParams{Title: "one", UserID: "u1"})
	require.NoError(t, err)
	_, err = s.CreateConversation(ctx, CreateConversationParams{Title: "other user", UserID: "u2"})
	require.NoError(t, err)
	second, err := s.CreateConversation(ctx, CreateConversationParams{Title: "two", UserID: "u1"})
	require.NoError(t, err)

	// Touch the older conversation so it sorts first
	_, err = s.UpdateConversation(ctx, first.ID, ConversationPatch{})
	require.NoError(t, err)

	conversations, err := s.GetConversations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	assert.Equal(t, first.ID, conversations[0].ID)
	assert.Equal(t, second.ID, conversations[1].ID)
}

func TestMemoryStore_MessageOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, CreateConversationParams{Title: "chat"})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		_, err := s.CreateMessage(ctx, CreateMessageParams{
			ConversationID: conv.ID,
			Role:           role,
			Content:        fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	messages, err := s.GetMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 10)

	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		if i > 0 {
			assert.False(t, msg.CreatedAt.Before(messages[i-1].CreatedAt),
				"createdAt must be non-decreasing")
		}
	}
}

func TestMemoryStore_MessageRequiresConversation(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.CreateMessage(context.Background(), CreateMessageParams{
		ConversationID: "missing",
		Role:           types.RoleUser,
		Content:        "hello",
	})

	require.Error(t, err)
	assert.Equal(t, types.ErrNotFound, types.KindOf(err))
}

func TestMemoryStore_DeleteCascades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, CreateConversationParams{Title: "chat"})
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, CreateMessageParams{ConversationID: conv.ID, Role: types.RoleUser, Content: "hi"})
	require.NoError(t, err)

	deleted, err := s.DeleteConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	messages, err := s.GetMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	deleted, err = s.DeleteConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStore_ClearMessagesKeepsConversation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, CreateConversationParams{Title: "chat"})
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, CreateMessageParams{ConversationID: conv.ID, Role: types.RoleUser, Content: "hi"})
	require.NoError(t, err)

	cleared, err := s.DeleteMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, cleared)

	messages, err := s.GetMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	found, err := s.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, CreateConversationParams{Title: "chat"})
	require.NoError(t, err)

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.CreateMessage(ctx, CreateMessageParams{
					ConversationID: conv.ID,
					Role:           types.RoleUser,
					Content:        "concurrent",
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	messages, err := s.GetMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Len(t, messages, writers*perWriter)

	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
}
