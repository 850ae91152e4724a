package logic

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iqbaldf/chatline/internal/bootstrap"
	"github.com/iqbaldf/chatline/internal/logger"
	"github.com/iqbaldf/chatline/internal/provider"
	"github.com/iqbaldf/chatline/internal/store"
	"github.com/iqbaldf/chatline/internal/types"
	"github.com/iqbaldf/chatline/internal/utils"
)

const titleMaxLen = 50

// ChatLogic orchestrates one chat turn: persist the user message, replay the
// conversation to the selected provider, post-process the reply, persist the
// assistant message.
type ChatLogic struct {
	ctx    context.Context
	svcCtx *bootstrap.ServiceContext
}

// NewChatLogic creates the orchestration for one request
func NewChatLogic(ctx context.Context, svcCtx *bootstrap.ServiceContext) *ChatLogic {
	return &ChatLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// SendMessage runs a full chat turn and returns the response envelope.
// If the provider call fails the already-persisted user message stays in the
// conversation; the caller sees the user's turn with no reply and can retry
// generation.
func (l *ChatLogic) SendMessage(req *types.ChatRequest) (*types.ChatTurnResponse, error) {
	if strings.TrimSpace(req.Message) == "" && len(req.Attachments) == 0 {
		return nil, types.NewInvalidInputError("message is empty and no attachments were provided")
	}

	if err := l.prepareAttachments(req.Attachments); err != nil {
		return nil, err
	}

	conversationID, err := l.resolveConversation(req)
	if err != nil {
		return nil, err
	}

	userMessage, err := l.svcCtx.Store.CreateMessage(l.ctx, store.CreateMessageParams{
		ConversationID: conversationID,
		Role:           types.RoleUser,
		Content:        req.Message,
		Attachments:    req.Attachments,
		Metadata: map[string]any{
			"tokens": utils.EstimateTokens(req.Message),
		},
	})
	if err != nil {
		return nil, err
	}

	history, err := l.svcCtx.Store.GetMessages(l.ctx, conversationID)
	if err != nil {
		return nil, err
	}

	adapter := l.svcCtx.Registry.Resolve(req.Model)
	result, err := l.complete(adapter, history)
	if err != nil {
		return nil, err
	}

	content := utils.StripMarkdown(result.Content)

	assistantMessage, err := l.svcCtx.Store.CreateMessage(l.ctx, store.CreateMessageParams{
		ConversationID: conversationID,
		Role:           types.RoleAssistant,
		Content:        content,
		Metadata: map[string]any{
			"tokens":            result.Usage.CompletionTokens,
			"model":             result.Model,
			"prompt_tokens":     result.Usage.PromptTokens,
			"completion_tokens": result.Usage.CompletionTokens,
		},
	})
	if err != nil {
		return nil, err
	}

	if _, err := l.svcCtx.Store.UpdateConversation(l.ctx, conversationID, store.ConversationPatch{}); err != nil {
		return nil, err
	}

	return &types.ChatTurnResponse{
		ConversationID:   conversationID,
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	}, nil
}

// complete invokes the adapter and retries once against the primary provider
// when a non-primary adapter fails. Primary failures surface immediately.
func (l *ChatLogic) complete(adapter provider.Adapter, history []*types.Message) (*types.CompletionResult, error) {
	opts := types.CompletionOptions{
		MaxTokens:   l.svcCtx.Config.Chat.MaxTokens,
		Temperature: l.svcCtx.Config.Chat.Temperature,
	}

	result, err := l.invoke(adapter, history, opts)
	if err == nil {
		return result, nil
	}

	primary := l.svcCtx.Registry.Primary()
	if adapter == primary {
		return nil, err
	}

	logger.Warn("provider failed, retrying against primary",
		zap.String("provider", adapter.Name()),
		zap.String("primary", primary.Name()),
		zap.Error(err),
	)
	if l.svcCtx.MetricsService != nil {
		l.svcCtx.MetricsService.RecordFallback(adapter.Name())
	}

	return l.invoke(primary, history, opts)
}

func (l *ChatLogic) invoke(adapter provider.Adapter, history []*types.Message, opts types.CompletionOptions) (*types.CompletionResult, error) {
	start := time.Now()
	result, err := adapter.Complete(l.ctx, history, opts)

	if l.svcCtx.MetricsService != nil {
		l.svcCtx.MetricsService.ObserveProviderLatency(adapter.Name(), float64(time.Since(start).Milliseconds()))
		if err != nil {
			l.svcCtx.MetricsService.RecordChatRequest(adapter.Name(), "error")
			l.svcCtx.MetricsService.RecordError(adapter.Name(), types.KindOf(err))
		} else {
			l.svcCtx.MetricsService.RecordChatRequest(adapter.Name(), "success")
			l.svcCtx.MetricsService.AddUsage(adapter.Name(), result.Usage)
		}
	}

	return result, err
}

// resolveConversation returns the id of the target conversation, creating a
// fresh one titled from the message when the caller did not supply an id.
func (l *ChatLogic) resolveConversation(req *types.ChatRequest) (string, error) {
	if req.ConversationID != "" {
		conv, err := l.svcCtx.Store.GetConversation(l.ctx, req.ConversationID)
		if err != nil {
			return "", err
		}
		if conv == nil {
			return "", types.NewNotFoundError("conversation " + req.ConversationID + " does not exist")
		}
		return conv.ID, nil
	}

	conv, err := l.svcCtx.Store.CreateConversation(l.ctx, store.CreateConversationParams{
		Title:  titleFrom(req.Message),
		UserID: req.UserID,
	})
	if err != nil {
		return "", err
	}

	logger.Info("created conversation",
		zap.String("conversation_id", conv.ID),
		zap.String("title", conv.Title),
	)
	return conv.ID, nil
}

// prepareAttachments validates sizes and assigns ids, offloading payloads to
// object storage when it is configured. Attachments never reach a provider.
func (l *ChatLogic) prepareAttachments(attachments []types.Attachment) error {
	for i := range attachments {
		att := &attachments[i]
		if att.Size > types.MaxAttachmentSize {
			return types.NewInvalidInputError("attachment " + att.Filename + " exceeds the 10 MiB limit")
		}
		if att.ID == "" {
			att.ID = uuid.New().String()
		}
		if att.UploadedAt.IsZero() {
			att.UploadedAt = time.Now()
		}
		if l.svcCtx.Attachments != nil && att.Data != "" {
			if err := l.svcCtx.Attachments.Offload(l.ctx, att); err != nil {
				// Offload is best effort; the inline payload still works
				logger.Warn("attachment offload failed, keeping inline payload",
					zap.String("attachment_id", att.ID),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// titleFrom derives a conversation title from the first message: the first
// 50 characters, ellipsized when longer.
func titleFrom(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxLen {
		return message
	}
	return string(runes[:titleMaxLen]) + "..."
}
