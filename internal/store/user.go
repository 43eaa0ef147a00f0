package store

import (
	"context"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toUserModel(row), nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
