package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"performer-directory-backend/internal/models"
)

const RoleAdmin = "admin"

// Access decides whether a user may mutate a profile: its owner or an admin.
type Access struct {
	roles RoleStore
}

func NewAccess(roles RoleStore) *Access {
	return &Access{roles: roles}
}

func (a *Access) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if a == nil || a.roles == nil {
		return false, nil
	}
	role, err := a.roles.GetUserRole(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to look up role: %w", err)
	}
	return role == RoleAdmin, nil
}

func (a *Access) CanManage(ctx context.Context, user models.User, ownerID uuid.UUID) error {
	if user.ID == ownerID {
		return nil
	}
	admin, err := a.IsAdmin(ctx, user.ID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrForbidden
	}
	return nil
}
