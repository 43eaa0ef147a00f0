package service

import (
	"context"
	"fmt"

	"joywork.app/api/internal/model"
	"joywork.app/api/internal/store"
)

// MembershipResolver answers which role, if any, a user holds in a company.
// Every authorization decision goes through it; roles never come from the client.
type MembershipResolver interface {
	ResolveRole(ctx context.Context, userID, companyID int64) (model.Role, error)
}

type membershipResolver struct {
	companyStore store.CompanyStore
}

func NewMembershipResolver(companyStore store.CompanyStore) MembershipResolver {
	return &membershipResolver{companyStore: companyStore}
}

func (r *membershipResolver) ResolveRole(ctx context.Context, userID, companyID int64) (model.Role, error) {
	role, err := r.companyStore.GetMemberRole(ctx, userID, companyID)
	if err != nil {
		return model.RoleNone, fmt.Errorf("resolving company role: %w", err)
	}
	return role, nil
}
