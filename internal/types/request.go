package types

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message        string       `json:"message"`
	ConversationID string       `json:"conversationId,omitempty"`
	UserID         string       `json:"userId,omitempty"`
	Attachments    []Attachment `json:"attachments,omitempty"`
	Model          string       `json:"model,omitempty"`
}

// CreateConversationRequest is the body of POST /api/conversations
type CreateConversationRequest struct {
	Title  string `json:"title,omitempty"`
	UserID string `json:"userId,omitempty"`
}
