package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iqbaldf/chatline/internal/bootstrap"
)

func RegisterHandlers(router *gin.Engine, serverCtx *bootstrap.ServiceContext) {
	router.Use(RequestLogMiddleware())

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/chat", ChatHandler(serverCtx))
		apiGroup.GET("/conversations", ListConversationsHandler(serverCtx))
		apiGroup.POST("/conversations", CreateConversationHandler(serverCtx))
		apiGroup.GET("/conversations/:id/messages", ListMessagesHandler(serverCtx))
		apiGroup.DELETE("/conversations/:id", DeleteConversationHandler(serverCtx))
		apiGroup.DELETE("/conversations/:id/messages", ClearMessagesHandler(serverCtx))
		apiGroup.GET("/models", ModelsHandler(serverCtx))
		apiGroup.POST("/upload", UploadHandler(serverCtx))
	}
	router.GET("/metrics", MetricsHandler(serverCtx))
}
