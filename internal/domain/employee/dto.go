package employee

import (
	"strings"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type InitialContractRequest struct {
	ContractTypeID string  `json:"contract_type_id" validate:"required,uuid"`
	StartDate      string  `json:"start_date" validate:"required,date"`
	EndDate        *string `json:"end_date" validate:"omitempty,date"`
}

type CreateEmployeeRequest struct {
	NIK           string                  `json:"nik" validate:"notblank,max=32"`
	FullName      string                  `json:"full_name" validate:"notblank,max=150"`
	Email         string                  `json:"email" validate:"required,email,max=254"`
	Phone         *string                 `json:"phone" validate:"omitempty,max=20"`
	Gender        string                  `json:"gender" validate:"required,oneof=male female"`
	MaritalStatus string                  `json:"marital_status" validate:"required,oneof=single married divorced widowed"`
	PositionID    *string                 `json:"position_id" validate:"omitempty,uuid"`
	DepartmentID  *string                 `json:"department_id" validate:"omitempty,uuid"`
	ManagerID     *string                 `json:"manager_id" validate:"omitempty,uuid"`
	HireDate      string                  `json:"hire_date" validate:"required,date"`
	Contract      *InitialContractRequest `json:"contract"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Gender = strings.ToLower(r.Gender)
	r.MaritalStatus = strings.ToLower(r.MaritalStatus)

	errs := validator.Struct(r)
	if r.Contract != nil && r.Contract.EndDate != nil {
		start, okStart := validator.IsValidDate(r.Contract.StartDate)
		end, okEnd := validator.IsValidDate(*r.Contract.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		}
	}
	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *CreateEmployeeRequest) ToEntity(tenantID string) Employee {
	hireDate, _ := time.Parse(dateLayout, r.HireDate)
	return Employee{
		TenantID:      tenantID,
		NIK:           strings.TrimSpace(r.NIK),
		FullName:      strings.TrimSpace(r.FullName),
		Email:         r.Email,
		Phone:         r.Phone,
		Gender:        Gender(r.Gender),
		MaritalStatus: MaritalStatus(r.MaritalStatus),
		PositionID:    r.PositionID,
		DepartmentID:  r.DepartmentID,
		ManagerID:     r.ManagerID,
		HireDate:      hireDate,
	}
}

type UpdateEmployeeRequest struct {
	ID            string  `json:"-"`
	FullName      *string `json:"full_name" validate:"omitempty,notblank,max=150"`
	Email         *string `json:"email" validate:"omitempty,email,max=254"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=male female"`
	MaritalStatus *string `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	PositionID    *string `json:"position_id" validate:"omitempty,uuid"`
	DepartmentID  *string `json:"department_id" validate:"omitempty,uuid"`
	ManagerID     *string `json:"manager_id" validate:"omitempty,uuid"`
	HireDate      *string `json:"hire_date" validate:"omitempty,date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &email
	}
	errs := validator.Struct(r)
	if r.FullName == nil && r.Email == nil && r.Phone == nil && r.Gender == nil && r.MaritalStatus == nil &&
		r.PositionID == nil && r.DepartmentID == nil && r.ManagerID == nil && r.HireDate == nil {
		errs.Add("body", "at least one field must be provided")
	}
	return errs.Err()
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	NIK            string    `json:"nik"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone"`
	Gender         string    `json:"gender"`
	MaritalStatus  string    `json:"marital_status"`
	PositionID     *string   `json:"position_id"`
	PositionName   *string   `json:"position_name"`
	DepartmentID   *string   `json:"department_id"`
	DepartmentName *string   `json:"department_name"`
	ManagerID      *string   `json:"manager_id"`
	ManagerName    *string   `json:"manager_name"`
	HireDate       string    `json:"hire_date"`
	AvatarURL      *string   `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToResponse(e EmployeeWithDetails) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		TenantID:       e.TenantID,
		NIK:            e.NIK,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		Gender:         string(e.Gender),
		MaritalStatus:  string(e.MaritalStatus),
		PositionID:     e.PositionID,
		PositionName:   e.PositionName,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		ManagerID:      e.ManagerID,
		ManagerName:    e.ManagerName,
		HireDate:       e.HireDate.Format(dateLayout),
		AvatarURL:      e.AvatarURL,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

type EmployeeSummary struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Position *string `json:"position_name"`
}
