package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.tenant_id, a.employee_id, a.date, a.status, a.late_minutes, a.notes,
		a.is_deleted, a.created_at, a.updated_at, e.full_name
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id AND e.tenant_id = a.tenant_id
`

func scanAttendance(row interface{ Scan(...interface{}) error }) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.TenantID, &a.EmployeeID, &a.Date, &a.Status, &a.LateMinutes, &a.Notes,
		&a.IsDeleted, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
	)
	return a, err
}

func mapAttendanceWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return attendance.ErrAttendanceAlreadyExists
	case isForeignKeyViolation(err):
		return attendance.ErrEmployeeNotFound
	}
	return err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, err
	}

	var createdID string
	err = q.QueryRow(ctx, `
		INSERT INTO attendances (id, tenant_id, employee_id, date, status, late_minutes, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, id.String(), a.TenantID, a.EmployeeID, a.Date, a.Status, a.LateMinutes, a.Notes).Scan(&createdID)
	if err != nil {
		if mapped := mapAttendanceWriteError(err); mapped != err {
			return attendance.Attendance{}, mapped
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return r.GetByID(ctx, a.TenantID, createdID)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1 AND a.tenant_id = $2 AND a.is_deleted = false`, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, tenantID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var f sqlFilter
	f.add("a.tenant_id = $%d", tenantID)
	f.raw("a.is_deleted = false")
	if filter.EmployeeID != "" {
		f.add("a.employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		f.add("a.status = $%d", filter.Status)
	}
	if filter.Period != "" {
		p, err := period.Parse(filter.Period)
		if err != nil {
			return nil, 0, err
		}
		f.add("a.date >= $%d", p.Start())
		f.add("a.date < $%d", p.End())
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances a WHERE `+f.where(), f.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := attendanceSelect + ` WHERE ` + f.where() + ` ORDER BY a.date DESC, e.full_name ASC ` + f.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (attendance.Attendance, error) {
		return scanAttendance(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan attendances: %w", err)
	}
	return records, total, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET status = $1, late_minutes = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND tenant_id = $5 AND is_deleted = false
	`, a.Status, a.LateMinutes, a.Notes, a.ID, a.TenantID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.GetByID(ctx, a.TenantID, a.ID)
}

// SoftDelete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances SET is_deleted = true, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// SumLateMinutes implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SumLateMinutes(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var total int
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(late_minutes), 0)
		FROM attendances
		WHERE tenant_id = $1 AND employee_id = $2 AND is_deleted = false
		  AND date >= $3 AND date < $4
	`, tenantID, employeeID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum late minutes: %w", err)
	}
	return total, nil
}
