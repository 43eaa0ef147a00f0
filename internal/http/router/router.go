package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/handler"
	"joywork.app/api/internal/http/middleware"
	"joywork.app/api/internal/service"
)

// Pinger reports database reachability for the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	TraceHeaderName string
	DB              Pinger
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.DB != nil {
		router.GET("/ready", func(c *gin.Context) {
			if err := cfg.DB.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.TraceHeader(cfg.TraceHeaderName))
	v1.Use(middleware.RequireSession(services.Auth()))
	{
		conversationHandler := handler.NewConversationHandler(services.Conversations())
		ConversationRouter(v1, conversationHandler)

		ticketHandler := handler.NewTicketHandler(services.Tickets())
		TicketRouter(v1.Group("/tickets"), ticketHandler)
	}
}
