package salary

import "errors"

var (
	ErrSalaryNotFound   = errors.New("salary not found")
	ErrSalaryExists     = errors.New("salary already recorded for this employee and period")
	ErrNoActiveSalary   = errors.New("employee has no active salary for this period")
	ErrEmployeeNotFound = errors.New("employee not found")
)
