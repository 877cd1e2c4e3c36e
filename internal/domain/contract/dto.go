package contract

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateContractRequest struct {
	EmployeeID     string  `json:"-"`
	ContractTypeID string  `json:"contract_type_id" validate:"required,uuid"`
	StartDate      string  `json:"start_date" validate:"required,date"`
	EndDate        *string `json:"end_date" validate:"omitempty,date"`
}

func (r *CreateContractRequest) Validate() error {
	errs := validator.Struct(r)
	checkRange(&errs, &r.StartDate, r.EndDate)
	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *CreateContractRequest) ToEntity(tenantID string) Contract {
	start, _ := time.Parse(dateLayout, r.StartDate)
	return Contract{
		TenantID:       tenantID,
		EmployeeID:     r.EmployeeID,
		ContractTypeID: r.ContractTypeID,
		StartDate:      start,
		EndDate:        ParseOptionalDate(r.EndDate),
		IsActive:       true,
	}
}

type UpdateContractRequest struct {
	ID             string  `json:"-"`
	ContractTypeID *string `json:"contract_type_id" validate:"omitempty,uuid"`
	StartDate      *string `json:"start_date" validate:"omitempty,date"`
	EndDate        *string `json:"end_date" validate:"omitempty,date"`
}

func (r *UpdateContractRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ContractTypeID == nil && r.StartDate == nil && r.EndDate == nil {
		errs.Add("body", "at least one field must be provided")
	}
	checkRange(&errs, r.StartDate, r.EndDate)
	return errs.Err()
}

func checkRange(errs *validator.ValidationErrors, start, end *string) {
	if start == nil || end == nil {
		return
	}
	s, okStart := validator.IsValidDate(*start)
	e, okEnd := validator.IsValidDate(*end)
	if okStart && okEnd && e.Before(s) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

// ParseOptionalDate parses a YYYY-MM-DD value that Validate already accepted.
func ParseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

type ContractResponse struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	EmployeeID       string    `json:"employee_id"`
	ContractTypeID   string    `json:"contract_type_id"`
	ContractTypeName *string   `json:"contract_type_name"`
	StartDate        string    `json:"start_date"`
	EndDate          *string   `json:"end_date"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToResponse(c Contract) ContractResponse {
	var end *string
	if c.EndDate != nil {
		s := c.EndDate.Format(dateLayout)
		end = &s
	}
	return ContractResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		EmployeeID:       c.EmployeeID,
		ContractTypeID:   c.ContractTypeID,
		ContractTypeName: c.ContractTypeName,
		StartDate:        c.StartDate.Format(dateLayout),
		EndDate:          end,
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
