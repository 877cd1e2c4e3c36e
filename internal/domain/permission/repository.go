package permission

import "context"

type PermissionRepository interface {
	// List returns every non-deleted permission ordered by sort_order.
	List(ctx context.Context) ([]Permission, error)
	ListByRole(ctx context.Context, tenantID, roleID string) ([]Permission, error)
	// RoleHasEndpoint matches a normalized endpoint and upper-case method against the role's grants.
	RoleHasEndpoint(ctx context.Context, tenantID, roleID, endpoint, method string) (bool, error)
	CountExisting(ctx context.Context, ids []string) (int, error)
}
