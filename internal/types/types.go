package types

import "time"

const (
	// RoleUser User role message
	RoleUser = "user"

	// RoleAssistant AI assistant role message
	RoleAssistant = "assistant"
)

// MaxAttachmentSize is the upper bound for a single uploaded file (10 MiB)
const MaxAttachmentSize = 10 * 1024 * 1024

// Conversation is one chat thread. A freshly created conversation with zero
// messages is valid.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is one half of a turn inside a conversation. Messages are immutable
// once created and ordered by CreatedAt ascending, insertion order breaking
// ties. That ordering is replayed verbatim as provider context.
type Message struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversationId"`
	Role           string         `json:"role"`
	Content        string         `json:"content"`
	Attachments    []Attachment   `json:"attachments"`
	Metadata       map[string]any `json:"metadata"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Attachment is a file uploaded alongside a user message. Attachments are
// display-only: stored with the message, never forwarded to a provider.
// Data holds the base64 payload unless it was offloaded to object storage,
// in which case ObjectKey is set and Data is empty.
type Attachment struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	Data       string    `json:"data,omitempty"`
	ObjectKey  string    `json:"objectKey,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Usage carries token accounting for one completion
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is what a provider adapter returns for one completed call.
// It is ephemeral: the orchestrator folds it into the assistant Message.
type CompletionResult struct {
	Content string `json:"content"`
	Usage   Usage  `json:"usage"`
	Model   string `json:"model"`
}

// CompletionOptions are the generation knobs shared by all adapters
type CompletionOptions struct {
	MaxTokens   int
	Temperature float64
}

// ModelInfo describes one entry of the static model catalog
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrimary   bool   `json:"isPrimary"`
}
