package router

import (
	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/handler"
)

func TicketRouter(rg *gin.RouterGroup, h *handler.TicketHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id/messages", h.GetMessages)
	rg.POST("/:id/messages", h.SendMessage)
	rg.PATCH("/:id/status", h.UpdateStatus)
}
