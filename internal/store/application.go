package store

import (
	"context"

	"joywork.app/api/core/db/sqlc"
	"joywork.app/api/internal/model"
)

type applicationStore struct {
	queries *sqlc.Queries
}

func newApplicationStore(queries *sqlc.Queries) ApplicationStore {
	return &applicationStore{queries: queries}
}

func (s *applicationStore) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	row, err := s.queries.GetApplicationParties(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &model.Application{
		ID:          row.ID,
		JobID:       row.JobID,
		JobTitle:    row.JobTitle,
		CompanyID:   row.CompanyID,
		ApplicantID: row.ApplicantID,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt.Time,
	}, nil
}

func (s *applicationStore) ListIDsForParticipant(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.queries.ListParticipantApplicationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
