package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the per-tenant payroll configuration.
type Settings struct {
	TenantID               string
	LateDeductionPerMinute decimal.Decimal
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// AttendanceDeduction is derived data: one row per (employee, tenant, period).
type AttendanceDeduction struct {
	ID               string
	TenantID         string
	EmployeeID       string
	Period           string
	TotalLateMinutes int
	DeductionAmount  decimal.Decimal
	IsDeleted        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	EmployeeName *string
}

// Payslip is immutable once stored. It can only be soft-deleted.
type Payslip struct {
	ID              string
	TenantID        string
	EmployeeID      string
	Period          string
	BaseSalary      decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	IsDeleted       bool
	CreatedAt       time.Time

	EmployeeName *string
	EmployeeNIK  *string
	PositionName *string
}
