package store

import (
	"context"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type sessionStore struct {
	queries *sqlc.Queries
}

func newSessionStore(queries *sqlc.Queries) SessionStore {
	return &sessionStore{queries: queries}
}

func (s *sessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	row, err := s.queries.GetValidSession(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &model.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt.Time,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}
