package role

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type RoleRepository interface {
	Create(ctx context.Context, role Role) (Role, error)
	GetByID(ctx context.Context, tenantID, id string) (Role, error)
	List(ctx context.Context, tenantID string, page pagination.Params) ([]Role, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateRoleRequest) (Role, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
	IsAssigned(ctx context.Context, tenantID, id string) (bool, error)
	// ReplacePermissions swaps the whole grant set of the role. Callers run it inside a transaction.
	ReplacePermissions(ctx context.Context, tenantID, roleID string, permissionIDs []string) error
}
