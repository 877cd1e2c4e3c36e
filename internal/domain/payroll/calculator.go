package payroll

import (
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// NetSalary returns base - deductions. It rejects a non-positive base and negative deductions,
// reporting both problems at once.
func NetSalary(base, deductions decimal.Decimal) (decimal.Decimal, error) {
	var errs validator.ValidationErrors
	if !base.IsPositive() {
		errs.Add("base_salary", "base_salary must be greater than 0")
	}
	if deductions.IsNegative() {
		errs.Add("total_deductions", "total_deductions must be greater than or equal to 0")
	}
	if err := errs.Err(); err != nil {
		return decimal.Zero, err
	}
	return base.Sub(deductions), nil
}
