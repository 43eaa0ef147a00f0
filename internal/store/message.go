package store

import (
	"context"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type messageStore struct {
	queries *sqlc.Queries
}

func newMessageStore(queries *sqlc.Queries) MessageStore {
	return &messageStore{queries: queries}
}

func (s *messageStore) Create(ctx context.Context, msg *model.Message) error {
	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ID:            msg.ID,
		ApplicationID: msg.ApplicationID,
		SenderID:      msg.SenderID,
		Content:       msg.Content,
		Kind:          string(msg.Kind),
		FileUrl:       msg.FileURL,
	})
	if err != nil {
		return err
	}
	sender := msg.Sender
	*msg = *toMessageModel(row)
	msg.Sender = sender
	return nil
}

func (s *messageStore) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	row, err := s.queries.GetMessage(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toMessageModel(row), nil
}

func (s *messageStore) ListByApplication(ctx context.Context, applicationID int64, limit, offset int32) ([]model.Message, error) {
	rows, err := s.queries.ListApplicationMessages(ctx, sqlc.ListApplicationMessagesParams{
		ApplicationID: applicationID,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, err
	}
	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = model.Message{
			ID:            row.ID,
			ApplicationID: row.ApplicationID,
			SenderID:      row.SenderID,
			Content:       row.Content,
			Kind:          model.MessageKind(row.Kind),
			FileURL:       row.FileUrl,
			IsRead:        row.IsRead,
			CreatedAt:     row.CreatedAt.Time,
			Sender: &model.Participant{
				ID:        row.SenderID,
				Name:      row.SenderName,
				Email:     row.SenderEmail,
				AvatarURL: row.SenderAvatarUrl,
			},
		}
	}
	return messages, nil
}

func (s *messageStore) CountByApplication(ctx context.Context, applicationID int64) (int64, error) {
	return s.queries.CountApplicationMessages(ctx, applicationID)
}

func (s *messageStore) MarkRead(ctx context.Context, messageID, readerID int64) (bool, error) {
	n, err := s.queries.MarkMessageRead(ctx, sqlc.MarkMessageReadParams{
		ID:       messageID,
		ReaderID: readerID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *messageStore) MarkApplicationRead(ctx context.Context, applicationID, readerID int64) (int64, error) {
	return s.queries.MarkApplicationMessagesRead(ctx, sqlc.MarkApplicationMessagesReadParams{
		ApplicationID: applicationID,
		ReaderID:      readerID,
	})
}

func (s *messageStore) CountUnread(ctx context.Context, applicationID, viewerID int64) (int64, error) {
	return s.queries.CountUnreadMessages(ctx, sqlc.CountUnreadMessagesParams{
		ApplicationID: applicationID,
		ViewerID:      viewerID,
	})
}

func (s *messageStore) CountUnreadForApplications(ctx context.Context, applicationIDs []int64, viewerID int64) (int64, error) {
	if len(applicationIDs) == 0 {
		return 0, nil
	}
	return s.queries.CountUnreadMessagesForApplications(ctx, sqlc.CountUnreadMessagesForApplicationsParams{
		ApplicationIds: applicationIDs,
		ViewerID:       viewerID,
	})
}

func toMessageModel(row sqlc.Message) *model.Message {
	return &model.Message{
		ID:            row.ID,
		ApplicationID: row.ApplicationID,
		SenderID:      row.SenderID,
		Content:       row.Content,
		Kind:          model.MessageKind(row.Kind),
		FileURL:       row.FileUrl,
		IsRead:        row.IsRead,
		CreatedAt:     row.CreatedAt.Time,
	}
}
