package types

// ChatTurnResponse is the envelope returned for one completed chat turn
type ChatTurnResponse struct {
	ConversationID   string   `json:"conversationId"`
	UserMessage      *Message `json:"userMessage"`
	AssistantMessage *Message `json:"assistantMessage"`
}

// ConversationsResponse wraps the conversation listing
type ConversationsResponse struct {
	Conversations []*Conversation `json:"conversations"`
}

// ConversationResponse wraps a single conversation
type ConversationResponse struct {
	Conversation *Conversation `json:"conversation"`
}

// MessagesResponse wraps the message listing of one conversation
type MessagesResponse struct {
	Messages []*Message `json:"messages"`
}

// ModelsResponse wraps the static model catalog
type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// UploadResponse wraps a stored attachment
type UploadResponse struct {
	Attachment *Attachment `json:"attachment"`
}

// StatusResponse carries a human readable outcome for delete operations
type StatusResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the inner error object of every non-2xx reply
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope. Every error reply uses it;
// clients parse responses as JSON unconditionally.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
