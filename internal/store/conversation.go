package store

import (
	"context"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type conversationStore struct {
	queries *sqlc.Queries
}

func newConversationStore(queries *sqlc.Queries) ConversationStore {
	return &conversationStore{queries: queries}
}

func (s *conversationStore) List(ctx context.Context, viewerID int64, limit, offset int32) ([]model.Conversation, error) {
	rows, err := s.queries.ListConversations(ctx, sqlc.ListConversationsParams{
		UserID:     viewerID,
		PageLimit:  limit,
		PageOffset: offset,
	})
	if err != nil {
		return nil, err
	}

	conversations := make([]model.Conversation, len(rows))
	for i, row := range rows {
		conversations[i] = model.Conversation{
			ApplicationID:     row.ApplicationID,
			ApplicationStatus: row.ApplicationStatus,
			JobID:             row.JobID,
			JobTitle:          row.JobTitle,
			Company: model.CompanySummary{
				ID:      row.CompanyID,
				Name:    row.CompanyName,
				LogoURL: row.CompanyLogoUrl,
			},
			Applicant: model.Participant{
				ID:        row.ApplicantID,
				Name:      row.ApplicantName,
				Email:     row.ApplicantEmail,
				AvatarURL: row.ApplicantAvatarUrl,
			},
			LastMessage: &model.Message{
				ID:            row.LastMessageID,
				ApplicationID: row.ApplicationID,
				SenderID:      row.LastMessageSenderID,
				Content:       row.LastMessageContent,
				Kind:          model.MessageKind(row.LastMessageKind),
				FileURL:       row.LastMessageFileUrl,
				IsRead:        row.LastMessageIsRead,
				CreatedAt:     row.LastMessageCreatedAt.Time,
			},
			UnreadCount: row.UnreadCount,
		}
	}
	return conversations, nil
}

func (s *conversationStore) Count(ctx context.Context, viewerID int64) (int64, error) {
	return s.queries.CountConversations(ctx, viewerID)
}
