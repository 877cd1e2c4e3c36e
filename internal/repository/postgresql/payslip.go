package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipSelect = `
	SELECT ps.id, ps.tenant_id, ps.employee_id, ps.period, ps.base_salary, ps.total_deductions,
		ps.net_salary, ps.is_deleted, ps.created_at, e.full_name, e.nik, p.name
	FROM payslips ps
	LEFT JOIN employees e ON e.id = ps.employee_id AND e.tenant_id = ps.tenant_id
	LEFT JOIN positions p ON p.id = e.position_id AND p.tenant_id = e.tenant_id
`

func scanPayslip(row interface{ Scan(...interface{}) error }) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.TenantID, &p.EmployeeID, &p.Period, &p.BaseSalary, &p.TotalDeductions,
		&p.NetSalary, &p.IsDeleted, &p.CreatedAt, &p.EmployeeName, &p.EmployeeNIK, &p.PositionName,
	)
	return p, err
}

func collectPayslips(rows pgx.Rows) ([]payroll.Payslip, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (payroll.Payslip, error) {
		return scanPayslip(row)
	})
}

func (r *payslipRepository) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Payslip{}, err
	}

	query := `
		INSERT INTO payslips (id, tenant_id, employee_id, period, base_salary, total_deductions, net_salary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var createdID string
	err = q.QueryRow(ctx, query,
		id.String(), p.TenantID, p.EmployeeID, p.Period, p.BaseSalary, p.TotalDeductions, p.NetSalary,
	).Scan(&createdID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return payroll.Payslip{}, payroll.ErrPayslipExists
		case isForeignKeyViolation(err):
			return payroll.Payslip{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return r.GetByID(ctx, p.TenantID, createdID)
}

func (r *payslipRepository) GetByID(ctx context.Context, tenantID, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE ps.id = $1 AND ps.tenant_id = $2 AND ps.is_deleted = false`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

func (r *payslipRepository) List(ctx context.Context, tenantID string, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("ps.tenant_id = $%d", tenantID)
	f.raw("ps.is_deleted = false")
	if filter.EmployeeID != "" {
		f.add("ps.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Period != "" {
		f.add("ps.period = $%d", filter.Period)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips ps WHERE `+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	query := payslipSelect + ` WHERE ` + f.where() + ` ORDER BY ps.created_at DESC, ps.id ` + f.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	payslips, err := collectPayslips(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan payslips: %w", err)
	}
	return payslips, total, nil
}

func (r *payslipRepository) ListByPeriod(ctx context.Context, tenantID, period string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + `
		WHERE ps.tenant_id = $1 AND ps.period = $2 AND ps.is_deleted = false
		ORDER BY e.full_name ASC
	`
	rows, err := q.Query(ctx, query, tenantID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips by period: %w", err)
	}
	return collectPayslips(rows)
}

func (r *payslipRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE payslips SET is_deleted = true
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}
