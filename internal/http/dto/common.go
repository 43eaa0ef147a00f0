package dto

import (
	"joywork.app/api/internal/model"
)

// PageQuery binds the page and limit query parameters shared by list endpoints.
// Missing values are defaulted by the service.
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1,max=100000"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

func (q PageQuery) Pagination() model.Pagination {
	return model.Pagination{Page: q.Page, Limit: q.Limit}
}

type PageResponse[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

func ToPageResponse[S, T any](p *model.Page[S], convert func(*S) T) PageResponse[T] {
	items := make([]T, len(p.Items))
	for i := range p.Items {
		items[i] = convert(&p.Items[i])
	}
	return PageResponse[T]{
		Items:   items,
		Total:   p.Total,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: p.HasMore(),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

type ParticipantResponse struct {
	ID        int64   `json:"id,string"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func ToParticipantResponse(p *model.Participant) *ParticipantResponse {
	if p == nil {
		return nil
	}
	return &ParticipantResponse{
		ID:        p.ID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
	}
}

type CompanyBrief struct {
	ID      int64   `json:"id,string"`
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url,omitempty"`
}

func ToCompanyBrief(c model.CompanySummary) CompanyBrief {
	return CompanyBrief{
		ID:      c.ID,
		Name:    c.Name,
		LogoURL: c.LogoURL,
	}
}
