package router

import (
	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/handler"
)

// ConversationRouter mounts the application messaging routes. Conversations
// are keyed by application id.
func ConversationRouter(rg *gin.RouterGroup, h *handler.ConversationHandler) {
	rg.GET("/conversations", h.List)
	rg.GET("/conversations/unread-count", h.UnreadCount)

	apps := rg.Group("/applications/:id/messages")
	{
		apps.GET("", h.ListMessages)
		apps.POST("", h.SendMessage)
		apps.POST("/read", h.MarkConversationRead)
	}

	rg.POST("/messages/:id/read", h.MarkMessageRead)
}
