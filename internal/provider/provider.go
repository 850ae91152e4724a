// Package provider contains one adapter per LLM backend. Each adapter
// translates the canonical conversation history into its provider's wire
// format, performs the HTTP call, and parses the reply into a
// CompletionResult. Adapter selection happens through a Registry keyed by
// model id with a designated primary fallback.
package provider

import (
	"context"

	"github.com/iqbaldf/chatline/internal/types"
	"github.com/iqbaldf/chatline/internal/utils"
)

const (
	NameGemini = "gemini"
	NameClaude = "claude"
	NameGLM    = "glm"
)

// Adapter is the capability every LLM backend implements
type Adapter interface {
	// Name identifies the backend (gemini, claude, glm)
	Name() string

	// Model is the provider model id this adapter completes with
	Model() string

	// Complete sends the ordered history and returns the parsed completion.
	// Failures are always *types.ProviderError.
	Complete(ctx context.Context, history []*types.Message, opts types.CompletionOptions) (*types.CompletionResult, error)
}

// Registry resolves adapters by model id
type Registry struct {
	byModel map[string]Adapter
	order   []Adapter
	primary Adapter
}

// NewRegistry creates a registry with the given primary adapter. The primary
// serves unknown model ids and fallback retries.
func NewRegistry(primary Adapter) *Registry {
	r := &Registry{
		byModel: make(map[string]Adapter),
		primary: primary,
	}
	r.Register(primary)
	return r
}

// Register adds an adapter, keyed by its model id
func (r *Registry) Register(a Adapter) {
	if _, ok := r.byModel[a.Model()]; ok {
		return
	}
	r.byModel[a.Model()] = a
	r.order = append(r.order, a)
}

// Resolve returns the adapter for modelID, or the primary when the id is
// unknown or empty.
func (r *Registry) Resolve(modelID string) Adapter {
	if a, ok := r.byModel[modelID]; ok {
		return a
	}
	return r.primary
}

// Primary returns the designated default adapter
func (r *Registry) Primary() Adapter {
	return r.primary
}

// Catalog lists the registered models in registration order
func (r *Registry) Catalog() []types.ModelInfo {
	catalog := make([]types.ModelInfo, 0, len(r.order))
	for _, a := range r.order {
		catalog = append(catalog, types.ModelInfo{
			ID:          a.Model(),
			Name:        displayNames[a.Name()],
			Description: descriptions[a.Name()],
			IsPrimary:   a == r.primary,
		})
	}
	return catalog
}

var displayNames = map[string]string{
	NameGemini: "Google Gemini 1.5 Flash",
	NameClaude: "Anthropic Claude 3 Haiku",
	NameGLM:    "Zhipu GLM-4.5 Flash",
}

var descriptions = map[string]string{
	NameGemini: "Fast and efficient model for chat and text generation",
	NameClaude: "Lightweight Claude model for conversational use",
	NameGLM:    "GLM flash model served over an OpenAI-compatible API",
}

// historyRoles keeps only the roles adapters understand. Anything that is
// not a user or assistant turn is dropped before translation.
func historyRoles(history []*types.Message) []*types.Message {
	filtered := make([]*types.Message, 0, len(history))
	for _, m := range history {
		if m.Role == types.RoleUser || m.Role == types.RoleAssistant {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// lastUserText returns the content of the newest message when it is a user
// turn, otherwise the empty string.
func lastUserText(history []*types.Message) string {
	if len(history) == 0 {
		return ""
	}
	last := history[len(history)-1]
	if last.Role != types.RoleUser {
		return ""
	}
	return last.Content
}

// estimateUsage synthesizes usage from text lengths when a provider does not
// report its own. Totals always add up because both sides use the same
// estimator.
func estimateUsage(promptText, completionText string) types.Usage {
	prompt := utils.EstimateTokens(promptText)
	completion := utils.EstimateTokens(completionText)
	return types.Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      prompt + completion,
	}
}

// bodySnippet truncates an upstream error body for logging and error messages
func bodySnippet(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen])
	}
	return string(body)
}
