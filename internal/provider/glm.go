package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/types"
	"github.com/iqbaldf/chatline/internal/utils"
)

// GLMAdapter talks to the GLM chat-completions endpoint, which is
// OpenAI-compatible, so the openai client does the wire work.
type GLMAdapter struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewGLMAdapter creates the GLM adapter from provider config
func NewGLMAdapter(cfg config.ProviderConfig, timeout time.Duration) *GLMAdapter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.Endpoint
	clientConfig.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &GLMAdapter{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (a *GLMAdapter) Name() string { return NameGLM }

func (a *GLMAdapter) Model() string { return a.model }

// Complete sends the conversation to GLM with the same 1:1 message mapping
// Claude uses.
func (a *GLMAdapter) Complete(ctx context.Context, history []*types.Message, opts types.CompletionOptions) (*types.CompletionResult, error) {
	if a.apiKey == "" {
		return nil, types.NewAuthMissingError(NameGLM)
	}

	messages := historyRoles(history)
	if len(messages) == 0 {
		return nil, types.NewInvalidInputError("conversation history is empty")
	}

	wireMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == types.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		wireMessages = append(wireMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    wireMessages,
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
	})
	if err != nil {
		return nil, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, types.NewMalformedResponseError(NameGLM, "response has no choices[0].message.content")
	}

	content := resp.Choices[0].Message.Content

	usage := types.Usage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.TotalTokens == 0 {
		prompt := utils.EstimateMessagesTokens(messages)
		completion := utils.EstimateTokens(content)
		usage = types.Usage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      prompt + completion,
		}
	}

	return &types.CompletionResult{
		Content: content,
		Usage:   usage,
		Model:   a.model,
	}, nil
}

// classifyOpenAIError folds client errors into the provider error taxonomy
func classifyOpenAIError(err error) *types.ProviderError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return types.NewHTTPStatusError(NameGLM, apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return types.NewHTTPStatusError(NameGLM, reqErr.HTTPStatusCode, reqErr.Error())
	}

	return types.NewNetworkFailureError(NameGLM, err)
}
