package dto

import (
	"time"

	"joywork.app/api/internal/model"
)

type SendMessageRequest struct {
	Content string  `json:"content" binding:"max=5000"`
	Kind    string  `json:"kind" binding:"omitempty,oneof=TEXT FILE IMAGE"`
	FileURL *string `json:"file_url,omitempty" binding:"omitempty,max=2048"`
}

type UnreadCountQuery struct {
	ApplicationID string `form:"application_id"`
}

type MessageResponse struct {
	ID            int64                `json:"id,string"`
	ApplicationID int64                `json:"application_id,string"`
	SenderID      int64                `json:"sender_id,string"`
	Content       string               `json:"content"`
	Kind          model.MessageKind    `json:"kind"`
	FileURL       *string              `json:"file_url,omitempty"`
	IsRead        bool                 `json:"is_read"`
	CreatedAt     time.Time            `json:"created_at"`
	Sender        *ParticipantResponse `json:"sender,omitempty"`
}

func ToMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		SenderID:      m.SenderID,
		Content:       m.Content,
		Kind:          m.Kind,
		FileURL:       m.FileURL,
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt,
		Sender:        ToParticipantResponse(m.Sender),
	}
}

type ConversationResponse struct {
	ApplicationID     int64               `json:"application_id,string"`
	ApplicationStatus string              `json:"application_status"`
	JobID             int64               `json:"job_id,string"`
	JobTitle          string              `json:"job_title"`
	Company           CompanyBrief        `json:"company"`
	Applicant         ParticipantResponse `json:"applicant"`
	LastMessage       *MessageResponse    `json:"last_message,omitempty"`
	UnreadCount       int64               `json:"unread_count"`
}

func ToConversationResponse(c *model.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ApplicationID:     c.ApplicationID,
		ApplicationStatus: c.ApplicationStatus,
		JobID:             c.JobID,
		JobTitle:          c.JobTitle,
		Company:           ToCompanyBrief(c.Company),
		Applicant:         *ToParticipantResponse(&c.Applicant),
		UnreadCount:       c.UnreadCount,
	}
	if c.LastMessage != nil {
		last := ToMessageResponse(c.LastMessage)
		resp.LastMessage = &last
	}
	return resp
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
