package payroll

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateDeductionRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Period     string `json:"period" validate:"required,period"`
}

func (r *CalculateDeductionRequest) Validate() error {
	return validator.Struct(r).Err()
}

type DeductionResponse struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenant_id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	Period           string          `json:"period"`
	TotalLateMinutes int             `json:"total_late_minutes"`
	DeductionAmount  decimal.Decimal `json:"deduction_amount"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func ToDeductionResponse(d AttendanceDeduction) DeductionResponse {
	return DeductionResponse{
		ID:               d.ID,
		TenantID:         d.TenantID,
		EmployeeID:       d.EmployeeID,
		EmployeeName:     d.EmployeeName,
		Period:           d.Period,
		TotalLateMinutes: d.TotalLateMinutes,
		DeductionAmount:  d.DeductionAmount,
		UpdatedAt:        d.UpdatedAt,
	}
}

type CreatePayslipRequest struct {
	EmployeeID      string          `json:"employee_id" validate:"required,uuid"`
	Period          string          `json:"period" validate:"required,period"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
}

// Validate reports field and amount problems together.
func (r *CreatePayslipRequest) Validate() error {
	errs := validator.Struct(r)
	if _, err := NetSalary(r.BaseSalary, r.TotalDeductions); err != nil {
		if amountErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, amountErrs...)
		}
	}
	return errs.Err()
}

type GeneratePayslipRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Period     string `json:"period" validate:"required,period"`
}

func (r *GeneratePayslipRequest) Validate() error {
	return validator.Struct(r).Err()
}

type PayslipResponse struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	Period          string          `json:"period"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	CreatedAt       time.Time       `json:"created_at"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:              p.ID,
		TenantID:        p.TenantID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		Period:          p.Period,
		BaseSalary:      p.BaseSalary,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		CreatedAt:       p.CreatedAt,
	}
}

type SettingsResponse struct {
	TenantID               string          `json:"tenant_id"`
	LateDeductionPerMinute decimal.Decimal `json:"late_deduction_per_minute"`
	IsDefault              bool            `json:"is_default"`
}

type UpdateSettingsRequest struct {
	LateDeductionPerMinute *decimal.Decimal `json:"late_deduction_per_minute"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors
	switch {
	case r.LateDeductionPerMinute == nil:
		errs.Add("late_deduction_per_minute", "late_deduction_per_minute is required")
	case r.LateDeductionPerMinute.IsNegative():
		errs.Add("late_deduction_per_minute", "late_deduction_per_minute must be greater than or equal to 0")
	}
	return errs.Err()
}
