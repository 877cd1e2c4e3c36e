package attendance

import (
	"context"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type AttendanceFilter struct {
	pagination.Params
	EmployeeID string
	Period     string
	Status     string
}

// AttendanceRepository filters every query by tenant and skips soft-deleted rows.
type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	GetByID(ctx context.Context, tenantID, id string) (Attendance, error)
	List(ctx context.Context, tenantID string, filter AttendanceFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, a Attendance) (Attendance, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
	// SumLateMinutes adds up late minutes for dates in [from, to).
	SumLateMinutes(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error)
}
