package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joywork.app/api/internal/http/dto"
	"joywork.app/api/internal/model"
	"joywork.app/api/internal/service"
)

type TicketHandler struct {
	tickets service.TicketService
}

func NewTicketHandler(tickets service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ticket, msg, err := h.tickets.Create(c.Request.Context(), userID, service.CreateTicketInput{
		CompanyID: req.CompanyID,
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTicketResponse{
		Ticket:  dto.ToTicketResponse(ticket),
		Message: dto.ToTicketMessageResponse(msg),
	})
}

func (h *TicketHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.ListTicketsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	companyID, ok := optionalID(c, "company_id", q.CompanyID)
	if !ok {
		return
	}

	in := service.ListTicketsInput{
		CompanyID:  companyID,
		Pagination: q.Pagination(),
	}
	if q.Status != "" {
		status := model.TicketStatus(q.Status)
		in.Status = &status
	}

	page, err := h.tickets.List(c.Request.Context(), userID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketListResponse(page))
}

func (h *TicketHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.tickets.GetMessages(c.Request.Context(), userID, ticketID, q.Pagination())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToTicketMessageResponse))
}

func (h *TicketHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SendTicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.tickets.SendMessage(c.Request.Context(), userID, ticketID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTicketMessageResponse(msg))
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	ticketID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ticket, err := h.tickets.UpdateStatus(c.Request.Context(), userID, ticketID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}
