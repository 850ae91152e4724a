// Package store persists conversations and their ordered messages. The
// orchestration layer depends only on the ConversationStore contract;
// memory and redis backends are interchangeable.
package store

import (
	"context"

	"github.com/iqbaldf/chatline/internal/types"
)

// CreateConversationParams are the caller-supplied fields of a new conversation
type CreateConversationParams struct {
	Title  string
	UserID string
}

// CreateMessageParams are the caller-supplied fields of a new message
type CreateMessageParams struct {
	ConversationID string
	Role           string
	Content        string
	Attachments    []types.Attachment
	Metadata       map[string]any
}

// ConversationPatch carries partial conversation updates. UpdatedAt is always
// bumped on update regardless of which fields are set.
type ConversationPatch struct {
	Title *string
}

// ConversationStore is the persistence contract for conversations and
// messages. Lookups return (nil, nil) for unknown ids; deletes report
// whether anything existed. Message append order is serialized per
// conversation so a history read never observes a half-written turn.
type ConversationStore interface {
	CreateConversation(ctx context.Context, params CreateConversationParams) (*types.Conversation, error)
	GetConversations(ctx context.Context, userID string) ([]*types.Conversation, error)
	GetConversation(ctx context.Context, id string) (*types.Conversation, error)
	UpdateConversation(ctx context.Context, id string, patch ConversationPatch) (*types.Conversation, error)
	DeleteConversation(ctx context.Context, id string) (bool, error)

	CreateMessage(ctx context.Context, params CreateMessageParams) (*types.Message, error)
	GetMessages(ctx context.Context, conversationID string) ([]*types.Message, error)
	DeleteMessages(ctx context.Context, conversationID string) (bool, error)
}
