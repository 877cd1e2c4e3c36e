package payroll

import "errors"

var (
	ErrSettingsNotFound  = errors.New("payroll settings not found")
	ErrDeductionNotFound = errors.New("attendance deduction not found")
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrPayslipExists     = errors.New("payslip already exists for this employee and period")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrNoPayslips        = errors.New("no payslips found for this period")
)
