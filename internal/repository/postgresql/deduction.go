package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) payroll.DeductionRepository {
	return &deductionRepository{db: db}
}

// Upsert keys on (employee_id, tenant_id, period) so recomputation replaces the previous figure.
func (r *deductionRepository) Upsert(ctx context.Context, d payroll.AttendanceDeduction) (payroll.AttendanceDeduction, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.AttendanceDeduction{}, err
	}

	query := `
		INSERT INTO attendance_deductions (id, tenant_id, employee_id, period, total_late_minutes, deduction_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, tenant_id, period) DO UPDATE SET
			total_late_minutes = EXCLUDED.total_late_minutes,
			deduction_amount = EXCLUDED.deduction_amount,
			is_deleted = false,
			updated_at = NOW()
		RETURNING id, tenant_id, employee_id, period, total_late_minutes, deduction_amount,
			is_deleted, created_at, updated_at
	`

	var saved payroll.AttendanceDeduction
	err = q.QueryRow(ctx, query,
		id.String(), d.TenantID, d.EmployeeID, d.Period, d.TotalLateMinutes, d.DeductionAmount,
	).Scan(
		&saved.ID, &saved.TenantID, &saved.EmployeeID, &saved.Period, &saved.TotalLateMinutes,
		&saved.DeductionAmount, &saved.IsDeleted, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return payroll.AttendanceDeduction{}, payroll.ErrEmployeeNotFound
		}
		return payroll.AttendanceDeduction{}, fmt.Errorf("failed to upsert attendance deduction: %w", err)
	}
	return saved, nil
}

func (r *deductionRepository) List(ctx context.Context, tenantID string, filter payroll.DeductionFilter) ([]payroll.AttendanceDeduction, int64, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("ad.tenant_id = $%d", tenantID)
	f.raw("ad.is_deleted = false")
	if filter.EmployeeID != "" {
		f.add("ad.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Period != "" {
		f.add("ad.period = $%d", filter.Period)
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_deductions ad WHERE `+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance deductions: %w", err)
	}

	query := `
		SELECT ad.id, ad.tenant_id, ad.employee_id, ad.period, ad.total_late_minutes, ad.deduction_amount,
			ad.is_deleted, ad.created_at, ad.updated_at, e.full_name
		FROM attendance_deductions ad
		LEFT JOIN employees e ON e.id = ad.employee_id AND e.tenant_id = ad.tenant_id
		WHERE ` + f.where() + `
		ORDER BY ad.period DESC, e.full_name ASC
		` + f.page(filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance deductions: %w", err)
	}
	deductions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (payroll.AttendanceDeduction, error) {
		var d payroll.AttendanceDeduction
		err := row.Scan(
			&d.ID, &d.TenantID, &d.EmployeeID, &d.Period, &d.TotalLateMinutes, &d.DeductionAmount,
			&d.IsDeleted, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeName,
		)
		return d, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan attendance deductions: %w", err)
	}
	return deductions, total, nil
}
