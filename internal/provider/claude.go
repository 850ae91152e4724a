package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iqbaldf/chatline/internal/config"
	"github.com/iqbaldf/chatline/internal/types"
	"github.com/iqbaldf/chatline/internal/utils"
)

const anthropicVersion = "2023-06-01"

// ClaudeAdapter speaks the Anthropic messages API
type ClaudeAdapter struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewClaudeAdapter creates the Claude adapter from provider config
func NewClaudeAdapter(cfg config.ProviderConfig, timeout time.Duration) *ClaudeAdapter {
	return &ClaudeAdapter{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *ClaudeAdapter) Name() string { return NameClaude }

func (a *ClaudeAdapter) Model() string { return a.model }

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

// Complete sends the conversation to Claude. The full history maps 1:1 onto
// the messages list; there is no separate history concept.
func (a *ClaudeAdapter) Complete(ctx context.Context, history []*types.Message, opts types.CompletionOptions) (*types.CompletionResult, error) {
	if a.apiKey == "" {
		return nil, types.NewAuthMissingError(NameClaude)
	}

	messages := historyRoles(history)
	if len(messages) == 0 {
		return nil, types.NewInvalidInputError("conversation history is empty")
	}

	wireMessages := make([]claudeMessage, 0, len(messages))
	for _, m := range messages {
		wireMessages = append(wireMessages, claudeMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	payload := claudeRequest{
		Model:       a.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages:    wireMessages,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameClaude, fmt.Errorf("failed to marshal request payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, types.NewNetworkFailureError(NameClaude, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameClaude, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameClaude, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewHTTPStatusError(NameClaude, resp.StatusCode, bodySnippet(body))
	}

	text := gjson.GetBytes(body, "content.0.text")
	if !text.Exists() || text.String() == "" {
		return nil, types.NewMalformedResponseError(NameClaude, "response has no content[0].text")
	}

	return &types.CompletionResult{
		Content: text.String(),
		Usage:   a.usageFrom(body, messages, text.String()),
		Model:   a.model,
	}, nil
}

// usageFrom prefers the usage block Claude reports and falls back to the
// length estimate over the full prompt history.
func (a *ClaudeAdapter) usageFrom(body []byte, messages []*types.Message, completion string) types.Usage {
	input := gjson.GetBytes(body, "usage.input_tokens")
	output := gjson.GetBytes(body, "usage.output_tokens")
	if input.Exists() && output.Exists() {
		return types.Usage{
			PromptTokens:     int(input.Int()),
			CompletionTokens: int(output.Int()),
			TotalTokens:      int(input.Int()) + int(output.Int()),
		}
	}

	prompt := utils.EstimateMessagesTokens(messages)
	completionTokens := utils.EstimateTokens(completion)
	return types.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completionTokens,
		TotalTokens:      prompt + completionTokens,
	}
}
