package handler

import (
	"github.com/bookstore/catalog-system/internal/core/domain"
	"github.com/bookstore/catalog-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAccountInput(req createAccountRequest) ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Username: req.Username,
		Password: req.Password,
		RoleID:   req.RoleID,
	}
}

func toUpdateAccountInput(id int64, req updateAccountRequest) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		ID:       id,
		Username: req.Username,
		Password: req.Password,
		RoleID:   req.RoleID,
		Active:   req.Active != nil && *req.Active,
	}
}

// --- Domain → HTTP response ---

func toSessionResponse(s *domain.Session) *sessionResponse {
	return &sessionResponse{
		UserID:    s.UserID,
		Username:  s.Username,
		Role:      s.RoleName,
		IssuedAt:  s.IssuedAt.UTC(),
		ExpiresAt: s.ExpiresAt.UTC(),
	}
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		RoleID:    a.RoleID,
		RoleName:  a.RoleName,
		Active:    a.Active,
		CreatedAt: a.CreatedAt.UTC(),
		UpdatedAt: a.UpdatedAt.UTC(),
	}
}

func toAccountListResponse(accounts []*domain.Account) accountListResponse {
	data := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, toAccountResponse(a))
	}
	return accountListResponse{Data: data, Total: len(data)}
}

func toRoleResponse(r *domain.Role) roleResponse {
	return roleResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func toRoleListResponse(roles []*domain.Role) roleListResponse {
	data := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		data = append(data, toRoleResponse(r))
	}
	return roleListResponse{Data: data, Total: len(data)}
}
