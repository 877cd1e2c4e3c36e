package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/role"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

const roleColumns = `id, tenant_id, name, description, is_deleted, created_at, updated_at`

func scanRole(row interface{ Scan(...interface{}) error }) (role.Role, error) {
	var r role.Role
	err := row.Scan(&r.ID, &r.TenantID, &r.Name, &r.Description, &r.IsDeleted, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (r *roleRepositoryImpl) Create(ctx context.Context, newRole role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return role.Role{}, err
	}

	query := `
		INSERT INTO roles (id, tenant_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + roleColumns
	created, err := scanRole(q.QueryRow(ctx, query, id.String(), newRole.TenantID, newRole.Name, newRole.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}
	return created, nil
}

func (r *roleRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1 AND tenant_id = $2 AND is_deleted = false`
	found, err := scanRole(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}
	return found, nil
}

func (r *roleRepositoryImpl) List(ctx context.Context, tenantID string, page pagination.Params) ([]role.Role, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM roles WHERE tenant_id = $1 AND is_deleted = false`, tenantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
	}

	query := `
		SELECT ` + roleColumns + `
		FROM roles
		WHERE tenant_id = $1 AND is_deleted = false
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, tenantID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	roles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (role.Role, error) {
		return scanRole(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan roles: %w", err)
	}
	return roles, total, nil
}

func (r *roleRepositoryImpl) Update(ctx context.Context, tenantID string, req role.UpdateRoleRequest) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	var u updateSet
	if req.Name != nil {
		u.set("name", *req.Name)
	}
	if req.Description != nil {
		u.set("description", *req.Description)
	}

	query := fmt.Sprintf(`
		UPDATE roles SET %s
		WHERE id = %s AND tenant_id = %s AND is_deleted = false
		RETURNING %s`, u.clause(), u.arg(req.ID), u.arg(tenantID), roleColumns)

	updated, err := scanRole(q.QueryRow(ctx, query, u.args...))
	if err != nil {
		switch {
		case isNoRows(err):
			return role.Role{}, role.ErrRoleNotFound
		case isUniqueViolation(err):
			return role.Role{}, role.ErrRoleNameExists
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}
	return updated, nil
}

func (r *roleRepositoryImpl) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE roles SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}
	return nil
}

func (r *roleRepositoryImpl) IsAssigned(ctx context.Context, tenantID, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var assigned bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE role_id = $1 AND tenant_id = $2 AND is_deleted = false)`
	if err := q.QueryRow(ctx, query, id, tenantID).Scan(&assigned); err != nil {
		return false, fmt.Errorf("failed to check role assignment: %w", err)
	}
	return assigned, nil
}

func (r *roleRepositoryImpl) ReplacePermissions(ctx context.Context, tenantID, roleID string, permissionIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1 AND tenant_id = $2`, roleID, tenantID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	if len(permissionIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO role_permissions (role_id, permission_id, tenant_id)
		SELECT $1, unnest($2::uuid[]), $3
	`
	if _, err := q.Exec(ctx, query, roleID, permissionIDs, tenantID); err != nil {
		return fmt.Errorf("failed to insert role permissions: %w", err)
	}
	return nil
}
