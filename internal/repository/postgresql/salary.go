package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salarySelect = `
	SELECT s.id, s.tenant_id, s.employee_id, s.period, s.base_salary, s.allowances, s.effective_date,
		s.status, s.is_deleted, s.created_at, s.updated_at, e.full_name
	FROM salaries s
	LEFT JOIN employees e ON e.id = s.employee_id AND e.tenant_id = s.tenant_id
`

func scanSalary(row interface{ Scan(...interface{}) error }) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(
		&s.ID, &s.TenantID, &s.EmployeeID, &s.Period, &s.BaseSalary, &s.Allowances, &s.EffectiveDate,
		&s.Status, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt, &s.EmployeeName,
	)
	return s, err
}

func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return salary.Salary{}, err
	}

	var createdID string
	err = q.QueryRow(ctx, `
		INSERT INTO salaries (id, tenant_id, employee_id, period, base_salary, allowances, effective_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, id.String(), s.TenantID, s.EmployeeID, s.Period, s.BaseSalary, s.Allowances, s.EffectiveDate, s.Status).Scan(&createdID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return salary.Salary{}, salary.ErrSalaryExists
		case isForeignKeyViolation(err):
			return salary.Salary{}, salary.ErrEmployeeNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}
	return r.GetByID(ctx, s.TenantID, createdID)
}

func (r *salaryRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, salarySelect+` WHERE s.id = $1 AND s.tenant_id = $2 AND s.is_deleted = false`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

func (r *salaryRepositoryImpl) List(ctx context.Context, tenantID string, filter salary.SalaryFilter) ([]salary.Salary, int64, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("s.tenant_id = $%d", tenantID)
	f.raw("s.is_deleted = false")
	if filter.EmployeeID != "" {
		f.add("s.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Period != "" {
		f.add("s.period = $%d", filter.Period)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salaries s WHERE `+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salaries: %w", err)
	}

	query := salarySelect + ` WHERE ` + f.where() + ` ORDER BY s.effective_date DESC, s.id ` + f.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salaries: %w", err)
	}
	salaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (salary.Salary, error) {
		return scanSalary(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan salaries: %w", err)
	}
	return salaries, total, nil
}

func (r *salaryRepositoryImpl) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salaries
		SET base_salary = $1, allowances = $2, effective_date = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND tenant_id = $6 AND is_deleted = false
	`, s.BaseSalary, s.Allowances, s.EffectiveDate, s.Status, s.ID, s.TenantID)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to update salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return r.GetByID(ctx, s.TenantID, s.ID)
}

func (r *salaryRepositoryImpl) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE salaries SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}
	return nil
}

func (r *salaryRepositoryImpl) GetActive(ctx context.Context, tenantID, employeeID, period string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := salarySelect + `
		WHERE s.tenant_id = $1 AND s.employee_id = $2 AND s.period = $3
		  AND s.status = 'active' AND s.is_deleted = false
		ORDER BY s.effective_date DESC
		LIMIT 1
	`
	s, err := scanSalary(q.QueryRow(ctx, query, tenantID, employeeID, period))
	if err != nil {
		if isNoRows(err) {
			return salary.Salary{}, salary.ErrNoActiveSalary
		}
		return salary.Salary{}, fmt.Errorf("failed to get active salary: %w", err)
	}
	return s, nil
}
