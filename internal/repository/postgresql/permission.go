package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/permission"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type permissionRepositoryImpl struct {
	db *database.DB
}

func NewPermissionRepository(db *database.DB) permission.PermissionRepository {
	return &permissionRepositoryImpl{db: db}
}

const permissionColumns = `p.id, p.name, p.code, p.parent_id, p.type, p.endpoint, p.method,
	p.sort_order, p.is_deleted, p.created_at, p.updated_at`

func collectPermissions(rows pgx.Rows) ([]permission.Permission, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (permission.Permission, error) {
		var p permission.Permission
		err := row.Scan(
			&p.ID,
			&p.Name,
			&p.Code,
			&p.ParentID,
			&p.Type,
			&p.Endpoint,
			&p.Method,
			&p.SortOrder,
			&p.IsDeleted,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		return p, err
	})
}

func (r *permissionRepositoryImpl) List(ctx context.Context) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		WHERE p.is_deleted = false
		ORDER BY p.sort_order, p.name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	return collectPermissions(rows)
}

func (r *permissionRepositoryImpl) ListByRole(ctx context.Context, tenantID, roleID string) ([]permission.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + permissionColumns + `
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1 AND rp.tenant_id = $2 AND p.is_deleted = false
		ORDER BY p.sort_order, p.name
	`
	rows, err := q.Query(ctx, query, roleID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return collectPermissions(rows)
}

func (r *permissionRepositoryImpl) RoleHasEndpoint(ctx context.Context, tenantID, roleID, endpoint, method string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM role_permissions rp
			JOIN permissions p ON p.id = rp.permission_id
			JOIN roles ro ON ro.id = rp.role_id AND ro.tenant_id = rp.tenant_id
			WHERE rp.role_id = $1
			  AND rp.tenant_id = $2
			  AND ro.is_deleted = false
			  AND p.is_deleted = false
			  AND p.endpoint = $3
			  AND upper(p.method) = $4
		)
	`
	var allowed bool
	if err := q.QueryRow(ctx, query, roleID, tenantID, endpoint, method).Scan(&allowed); err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}
	return allowed, nil
}

func (r *permissionRepositoryImpl) CountExisting(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM permissions WHERE id = ANY($1) AND is_deleted = false`
	if err := q.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count permissions: %w", err)
	}
	return count, nil
}
