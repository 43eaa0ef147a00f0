package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/dto"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/service"
)

type ConversationHandler struct {
	conversations service.ConversationService
}

func NewConversationHandler(conversations service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.conversations.ListConversations(c.Request.Context(), userID, q.Pagination())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToConversationResponse))
}

func (h *ConversationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.UnreadCountQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	applicationID, ok := optionalID(c, "application_id", q.ApplicationID)
	if !ok {
		return
	}

	count, err := h.conversations.UnreadCount(c.Request.Context(), userID, applicationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.conversations.ListMessages(c.Request.Context(), userID, applicationID, q.Pagination())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToMessageResponse))
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.conversations.SendMessage(c.Request.Context(), userID, applicationID, service.SendMessageInput{
		Content: req.Content,
		Kind:    model.MessageKind(req.Kind),
		FileURL: req.FileURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(msg))
}

func (h *ConversationHandler) MarkConversationRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	applicationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	n, err := h.conversations.MarkConversationRead(c.Request.Context(), userID, applicationID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkReadResponse{Updated: n})
}

func (h *ConversationHandler) MarkMessageRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	messageID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.conversations.MarkMessageRead(c.Request.Context(), userID, messageID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
