package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Salary is the pay of one employee for one period.
type Salary struct {
	ID            string
	TenantID      string
	EmployeeID    string
	Period        string
	BaseSalary    decimal.Decimal
	Allowances    decimal.Decimal
	EffectiveDate time.Time
	Status        Status
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	EmployeeName *string
}

// Gross is what a payslip uses as its base amount.
func (s Salary) Gross() decimal.Decimal {
	return s.BaseSalary.Add(s.Allowances)
}
