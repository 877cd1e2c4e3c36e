package permission

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
)

type permissionServiceImpl struct {
	permissions permission.PermissionRepository
}

func NewPermissionService(permissionRepository permission.PermissionRepository) permission.PermissionService {
	return &permissionServiceImpl{permissions: permissionRepository}
}

func (s *permissionServiceImpl) List(ctx context.Context) ([]permission.PermissionResponse, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permission.ToResponses(perms), nil
}

func (s *permissionServiceImpl) Tree(ctx context.Context) ([]*permission.TreeNode, error) {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return permission.BuildTree(perms)
}
