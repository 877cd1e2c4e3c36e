package salary

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateSalaryRequest struct {
	EmployeeID    string          `json:"employee_id" validate:"required,uuid"`
	Period        string          `json:"period" validate:"required,period"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Allowances    decimal.Decimal `json:"allowances"`
	EffectiveDate string          `json:"effective_date" validate:"required,date"`
	Status        string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateSalaryRequest) Validate() error {
	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	errs := validator.Struct(r)
	checkAmounts(&errs, &r.BaseSalary, &r.Allowances)
	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *CreateSalaryRequest) ToEntity(tenantID string) Salary {
	effective, _ := time.Parse(dateLayout, r.EffectiveDate)
	return Salary{
		TenantID:      tenantID,
		EmployeeID:    r.EmployeeID,
		Period:        r.Period,
		BaseSalary:    r.BaseSalary.Round(2),
		Allowances:    r.Allowances.Round(2),
		EffectiveDate: effective,
		Status:        Status(r.Status),
	}
}

type UpdateSalaryRequest struct {
	ID            string           `json:"-"`
	BaseSalary    *decimal.Decimal `json:"base_salary"`
	Allowances    *decimal.Decimal `json:"allowances"`
	EffectiveDate *string          `json:"effective_date" validate:"omitempty,date"`
	Status        *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateSalaryRequest) Validate() error {
	errs := validator.Struct(r)
	if r.BaseSalary == nil && r.Allowances == nil && r.EffectiveDate == nil && r.Status == nil {
		errs.Add("body", "at least one field must be provided")
	}
	checkAmounts(&errs, r.BaseSalary, r.Allowances)
	return errs.Err()
}

// Apply merges the request into a stored salary.
func (r *UpdateSalaryRequest) Apply(s Salary) Salary {
	if r.BaseSalary != nil {
		s.BaseSalary = r.BaseSalary.Round(2)
	}
	if r.Allowances != nil {
		s.Allowances = r.Allowances.Round(2)
	}
	if r.EffectiveDate != nil {
		if t, err := time.Parse(dateLayout, *r.EffectiveDate); err == nil {
			s.EffectiveDate = t
		}
	}
	if r.Status != nil {
		s.Status = Status(*r.Status)
	}
	return s
}

func checkAmounts(errs *validator.ValidationErrors, base, allowances *decimal.Decimal) {
	if base != nil && !base.IsPositive() {
		errs.Add("base_salary", "base_salary must be greater than 0")
	}
	if allowances != nil && allowances.IsNegative() {
		errs.Add("allowances", "allowances must be greater than or equal to 0")
	}
}

type SalaryResponse struct {
	ID            string          `json:"id"`
	TenantID      string          `json:"tenant_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	Period        string          `json:"period"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Allowances    decimal.Decimal `json:"allowances"`
	EffectiveDate string          `json:"effective_date"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func ToResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID,
		TenantID:      s.TenantID,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		Period:        s.Period,
		BaseSalary:    s.BaseSalary,
		Allowances:    s.Allowances,
		EffectiveDate: s.EffectiveDate.Format(dateLayout),
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
