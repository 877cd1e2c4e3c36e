package role

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type RoleService interface {
	List(ctx context.Context, tenantID string, page pagination.Params) ([]RoleResponse, int64, error)
	Get(ctx context.Context, tenantID, id string) (RoleResponse, error)
	Create(ctx context.Context, tenantID string, req CreateRoleRequest) (RoleResponse, error)
	Update(ctx context.Context, tenantID string, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
	Permissions(ctx context.Context, tenantID, id string) ([]permission.PermissionResponse, error)
	AssignPermissions(ctx context.Context, tenantID, id string, req AssignPermissionsRequest) ([]permission.PermissionResponse, error)
}
