package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeDetailSelect = `
	SELECT e.id, e.tenant_id, e.nik, e.full_name, e.email, e.phone, e.gender, e.marital_status,
		e.position_id, e.department_id, e.manager_id, e.hire_date, e.avatar_url, e.is_deleted,
		e.created_at, e.updated_at,
		p.name AS position_name, d.name AS department_name, m.full_name AS manager_name
	FROM employees e
	LEFT JOIN positions p ON p.id = e.position_id AND p.tenant_id = e.tenant_id AND p.is_deleted = false
	LEFT JOIN departments d ON d.id = e.department_id AND d.tenant_id = e.tenant_id AND d.is_deleted = false
	LEFT JOIN employees m ON m.id = e.manager_id AND m.tenant_id = e.tenant_id AND m.is_deleted = false
`

func scanEmployeeDetail(row interface{ Scan(...interface{}) error }) (employee.EmployeeWithDetails, error) {
	var e employee.EmployeeWithDetails
	err := row.Scan(
		&e.ID, &e.TenantID, &e.NIK, &e.FullName, &e.Email, &e.Phone, &e.Gender, &e.MaritalStatus,
		&e.PositionID, &e.DepartmentID, &e.ManagerID, &e.HireDate, &e.AvatarURL, &e.IsDeleted,
		&e.CreatedAt, &e.UpdatedAt,
		&e.PositionName, &e.DepartmentName, &e.ManagerName,
	)
	return e, err
}

// mapEmployeeWriteError turns constraint violations into domain errors.
func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		if strings.Contains(constraintName(err), "email") {
			return employee.ErrEmailExists
		}
		return employee.ErrNIKExists
	case isForeignKeyViolation(err):
		if strings.Contains(constraintName(err), "manager") {
			return employee.ErrManagerNotFound
		}
		return employee.ErrInvalidReference
	}
	return err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, err
	}

	query := `
		INSERT INTO employees (
			id, tenant_id, nik, full_name, email, phone, gender, marital_status,
			position_id, department_id, manager_id, hire_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, tenant_id, nik, full_name, email, phone, gender, marital_status,
			position_id, department_id, manager_id, hire_date, avatar_url, is_deleted, created_at, updated_at
	`

	var created employee.Employee
	err = q.QueryRow(ctx, query,
		id.String(), newEmployee.TenantID, newEmployee.NIK, newEmployee.FullName, newEmployee.Email,
		newEmployee.Phone, newEmployee.Gender, newEmployee.MaritalStatus,
		newEmployee.PositionID, newEmployee.DepartmentID, newEmployee.ManagerID, newEmployee.HireDate,
	).Scan(
		&created.ID, &created.TenantID, &created.NIK, &created.FullName, &created.Email,
		&created.Phone, &created.Gender, &created.MaritalStatus,
		&created.PositionID, &created.DepartmentID, &created.ManagerID, &created.HireDate,
		&created.AvatarURL, &created.IsDeleted, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return employee.Employee{}, mapped
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (employee.EmployeeWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeDetailSelect + ` WHERE e.id = $1 AND e.tenant_id = $2 AND e.is_deleted = false`
	found, err := scanEmployeeDetail(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeWithDetails{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, tenantID string, filter employee.EmployeeFilter) ([]employee.EmployeeWithDetails, int64, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("e.tenant_id = $%d", tenantID)
	f.raw("e.is_deleted = false")
	if filter.Search != "" {
		f.add("(e.full_name ILIKE $%[1]d OR e.nik ILIKE $%[1]d OR e.email ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.DepartmentID != "" {
		f.add("e.department_id = $%d", filter.DepartmentID)
	}
	if filter.PositionID != "" {
		f.add("e.position_id = $%d", filter.PositionID)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees e WHERE ` + f.where()
	if err := q.QueryRow(ctx, countQuery, f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := employeeDetailSelect + ` WHERE ` + f.where() + ` ORDER BY e.full_name ASC, e.id ` + f.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (employee.EmployeeWithDetails, error) {
		return scanEmployeeDetail(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan employees: %w", err)
	}
	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	var u updateSet
	if req.FullName != nil {
		u.set("full_name", strings.TrimSpace(*req.FullName))
	}
	if req.Email != nil {
		u.set("email", *req.Email)
	}
	if req.Phone != nil {
		u.set("phone", *req.Phone)
	}
	if req.Gender != nil {
		u.set("gender", *req.Gender)
	}
	if req.MaritalStatus != nil {
		u.set("marital_status", *req.MaritalStatus)
	}
	if req.PositionID != nil {
		u.set("position_id", *req.PositionID)
	}
	if req.DepartmentID != nil {
		u.set("department_id", *req.DepartmentID)
	}
	if req.ManagerID != nil {
		u.set("manager_id", *req.ManagerID)
	}
	if req.HireDate != nil {
		u.set("hire_date", *req.HireDate)
	}
	if u.empty() {
		return nil
	}

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = %s AND tenant_id = %s AND is_deleted = false`,
		u.clause(), u.arg(req.ID), u.arg(tenantID))
	tag, err := q.Exec(ctx, query, u.args...)
	if err != nil {
		if mapped := mapEmployeeWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateAvatar implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateAvatar(ctx context.Context, tenantID, id, avatarURL string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET avatar_url = $1, updated_at = NOW()
		WHERE id = $2 AND tenant_id = $3 AND is_deleted = false
	`, avatarURL, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ManagerOf implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ManagerOf(ctx context.Context, tenantID, id string) (*string, error) {
	q := GetQuerier(ctx, r.db)

	var managerID *string
	err := q.QueryRow(ctx, `
		SELECT manager_id FROM employees
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID).Scan(&managerID)
	if err != nil {
		if isNoRows(err) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return managerID, nil
}
