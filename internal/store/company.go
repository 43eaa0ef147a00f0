package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type companyStore struct {
	queries *sqlc.Queries
}

func newCompanyStore(queries *sqlc.Queries) CompanyStore {
	return &companyStore{queries: queries}
}

func (s *companyStore) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	row, err := s.queries.GetCompany(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &model.Company{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		LogoURL:   row.LogoUrl,
		CreatedAt: row.CreatedAt.Time,
	}, nil
}

func (s *companyStore) GetMemberRole(ctx context.Context, userID, companyID int64) (model.Role, error) {
	role, err := s.queries.GetCompanyMemberRole(ctx, sqlc.GetCompanyMemberRoleParams{
		UserID:    userID,
		CompanyID: companyID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RoleNone, nil
		}
		return model.RoleNone, err
	}
	return model.ParseRole(role), nil
}

func (s *companyStore) ListMembersByRole(ctx context.Context, companyID int64, role model.Role) ([]model.User, error) {
	rows, err := s.queries.ListCompanyMembersByRole(ctx, sqlc.ListCompanyMembersByRoleParams{
		CompanyID: companyID,
		Role:      string(role),
	})
	if err != nil {
		return nil, err
	}
	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = model.User{ID: row.ID, Name: row.Name, Email: row.Email}
	}
	return users, nil
}
