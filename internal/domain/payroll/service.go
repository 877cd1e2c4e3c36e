package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// CalculateDeduction recomputes and stores the late deduction of one employee for one period.
	CalculateDeduction(ctx context.Context, tenantID string, req CalculateDeductionRequest) (DeductionResponse, error)
	ListDeductions(ctx context.Context, tenantID string, filter DeductionFilter) ([]DeductionResponse, int64, error)

	CreatePayslip(ctx context.Context, tenantID string, req CreatePayslipRequest) (PayslipResponse, error)
	// GeneratePayslip derives the amounts from the active salary and a fresh deduction.
	GeneratePayslip(ctx context.Context, tenantID string, req GeneratePayslipRequest) (PayslipResponse, error)
	ListPayslips(ctx context.Context, tenantID string, filter PayslipFilter) ([]PayslipResponse, int64, error)
	GetPayslip(ctx context.Context, tenantID, id string) (PayslipResponse, error)
	DeletePayslip(ctx context.Context, tenantID, id string) error
	RenderPayslipPDF(ctx context.Context, tenantID, id string, w io.Writer) error
	ExportPayslips(ctx context.Context, tenantID, period string, w io.Writer) error

	GetSettings(ctx context.Context, tenantID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, tenantID string, req UpdateSettingsRequest) (SettingsResponse, error)
}
