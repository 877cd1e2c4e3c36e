package role

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/role"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type roleServiceImpl struct {
	tx          database.Transactor
	roles       role.RoleRepository
	permissions permission.PermissionRepository
}

func NewRoleService(tx database.Transactor, roleRepository role.RoleRepository, permissionRepository permission.PermissionRepository) role.RoleService {
	return &roleServiceImpl{
		tx:          tx,
		roles:       roleRepository,
		permissions: permissionRepository,
	}
}

func (s *roleServiceImpl) List(ctx context.Context, tenantID string, page pagination.Params) ([]role.RoleResponse, int64, error) {
	roles, total, err := s.roles.List(ctx, tenantID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}

	out := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, role.ToResponse(r))
	}
	return out, total, nil
}

func (s *roleServiceImpl) Get(ctx context.Context, tenantID, id string) (role.RoleResponse, error) {
	r, err := s.roles.GetByID(ctx, tenantID, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(r), nil
}

func (s *roleServiceImpl) Create(ctx context.Context, tenantID string, req role.CreateRoleRequest) (role.RoleResponse, error) {
	created, err := s.roles.Create(ctx, role.Role{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(created), nil
}

func (s *roleServiceImpl) Update(ctx context.Context, tenantID string, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	updated, err := s.roles.Update(ctx, tenantID, req)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.ToResponse(updated), nil
}

func (s *roleServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	assigned, err := s.roles.IsAssigned(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to check role assignment: %w", err)
	}
	if assigned {
		return role.ErrRoleInUse
	}
	return s.roles.SoftDelete(ctx, tenantID, id)
}

func (s *roleServiceImpl) Permissions(ctx context.Context, tenantID, id string) ([]permission.PermissionResponse, error) {
	if _, err := s.roles.GetByID(ctx, tenantID, id); err != nil {
		return nil, err
	}

	perms, err := s.permissions.ListByRole(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return permission.ToResponses(perms), nil
}

func (s *roleServiceImpl) AssignPermissions(ctx context.Context, tenantID, id string, req role.AssignPermissionsRequest) ([]permission.PermissionResponse, error) {
	ids := dedupe(req.PermissionIDs)

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.roles.GetByID(txCtx, tenantID, id); err != nil {
			return err
		}

		existing, err := s.permissions.CountExisting(txCtx, ids)
		if err != nil {
			return fmt.Errorf("failed to check permissions: %w", err)
		}
		if existing != len(ids) {
			return role.ErrUnknownPermissionIDs
		}

		if err := s.roles.ReplacePermissions(txCtx, tenantID, id, ids); err != nil {
			return fmt.Errorf("failed to assign permissions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Permissions(ctx, tenantID, id)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
