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
)

// GeminiAdapter speaks the Gemini generateContent REST API
type GeminiAdapter struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
}

// NewGeminiAdapter creates the Gemini adapter from provider config
func NewGeminiAdapter(cfg config.ProviderConfig, timeout time.Duration) *GeminiAdapter {
	return &GeminiAdapter{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (a *GeminiAdapter) Name() string { return NameGemini }

func (a *GeminiAdapter) Model() string { return a.model }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

// Complete sends the conversation to Gemini. All-but-last messages become
// prior turns in the contents list (assistant maps to the "model" role) and
// the last user message is the active turn; a single-message conversation
// skips the history entirely.
func (a *GeminiAdapter) Complete(ctx context.Context, history []*types.Message, opts types.CompletionOptions) (*types.CompletionResult, error) {
	if a.apiKey == "" {
		return nil, types.NewAuthMissingError(NameGemini)
	}

	messages := historyRoles(history)
	if len(messages) == 0 {
		return nil, types.NewInvalidInputError("conversation history is empty")
	}

	latest := lastUserText(messages)

	var contents []geminiContent
	if len(messages) > 1 {
		for _, m := range messages[:len(messages)-1] {
			role := "user"
			if m.Role == types.RoleAssistant {
				role = "model"
			}
			contents = append(contents, geminiContent{
				Role:  role,
				Parts: []geminiPart{{Text: m.Content}},
			})
		}
	}
	contents = append(contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: latest}},
	})

	payload := geminiRequest{
		Contents: contents,
		GenerationConfig: geminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameGemini, fmt.Errorf("failed to marshal request payload: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", a.endpoint, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, types.NewNetworkFailureError(NameGemini, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameGemini, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, types.NewNetworkFailureError(NameGemini, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, types.NewHTTPStatusError(NameGemini, resp.StatusCode, bodySnippet(body))
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		return nil, types.NewMalformedResponseError(NameGemini, "response has no candidates[0].content text")
	}

	return &types.CompletionResult{
		Content: text.String(),
		Usage:   estimateUsage(latest, text.String()),
		Model:   a.model,
	}, nil
}
