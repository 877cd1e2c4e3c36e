package employee

import "time"

type Employee struct {
	ID            string
	TenantID      string
	NIK           string
	FullName      string
	Email         string
	Phone         *string
	Gender        Gender
	MaritalStatus MaritalStatus
	PositionID    *string
	DepartmentID  *string
	ManagerID     *string
	HireDate      time.Time
	AvatarURL     *string
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeWithDetails carries the joined lookup names used by list and detail views.
type EmployeeWithDetails struct {
	Employee
	PositionName   *string
	DepartmentName *string
	ManagerName    *string
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "single"
	MaritalMarried  MaritalStatus = "married"
	MaritalDivorced MaritalStatus = "divorced"
	MaritalWidowed  MaritalStatus = "widowed"
)

// MaxManagerChain bounds how far up the reporting line we walk.
const MaxManagerChain = 32
