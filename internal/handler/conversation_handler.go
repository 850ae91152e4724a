package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iqbaldf/chatline/internal/bootstrap"
	"github.com/iqbaldf/chatline/internal/store"
	"github.com/iqbaldf/chatline/internal/types"
)

// ListConversationsHandler lists a user's conversations, newest activity first
func ListConversationsHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		conversations, err := svcCtx.Store.GetConversations(c.Request.Context(), c.Query("userId"))
		if err != nil {
			sendError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.ConversationsResponse{Conversations: conversations})
	}
}

// CreateConversationHandler creates an empty conversation shell
func CreateConversationHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, types.NewInvalidInputError(err.Error()))
			return
		}
		if req.Title == "" {
			req.Title = "New Conversation"
		}

		conversation, err := svcCtx.Store.CreateConversation(c.Request.Context(), store.CreateConversationParams{
			Title:  req.Title,
			UserID: req.UserID,
		})
		if err != nil {
			sendError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.ConversationResponse{Conversation: conversation})
	}
}

// ListMessagesHandler returns a conversation's messages in ascending createdAt order
func ListMessagesHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages, err := svcCtx.Store.GetMessages(c.Request.Context(), c.Param("id"))
		if err != nil {
			sendError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.MessagesResponse{Messages: messages})
	}
}

// DeleteConversationHandler deletes a conversation and cascades to its messages
func DeleteConversationHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := svcCtx.Store.DeleteConversation(c.Request.Context(), c.Param("id"))
		if err != nil {
			sendError(c, err)
			return
		}
		if !deleted {
			sendError(c, types.NewNotFoundError("conversation not found"))
			return
		}
		c.JSON(http.StatusOK, types.StatusResponse{Message: "Conversation deleted successfully"})
	}
}

// ClearMessagesHandler clears a conversation's history, keeping the shell
func ClearMessagesHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := svcCtx.Store.DeleteMessages(c.Request.Context(), c.Param("id")); err != nil {
			sendError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.StatusResponse{Message: "Conversation cleared successfully"})
	}
}
