package payroll

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type DeductionFilter struct {
	pagination.Params
	EmployeeID string
	Period     string
}

type PayslipFilter struct {
	pagination.Params
	EmployeeID string
	Period     string
}

type SettingsRepository interface {
	SettingsReader
	UpsertSettings(ctx context.Context, s Settings) (Settings, error)
}

type DeductionRepository interface {
	// Upsert replaces the figures of an existing (employee, tenant, period) row.
	Upsert(ctx context.Context, d AttendanceDeduction) (AttendanceDeduction, error)
	List(ctx context.Context, tenantID string, filter DeductionFilter) ([]AttendanceDeduction, int64, error)
}

type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, tenantID, id string) (Payslip, error)
	List(ctx context.Context, tenantID string, filter PayslipFilter) ([]Payslip, int64, error)
	ListByPeriod(ctx context.Context, tenantID, period string) ([]Payslip, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
}
