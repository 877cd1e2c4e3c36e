package contract

import "time"

// Contract ties an employee to a contract type for a period. At most one live contract per employee is active.
type Contract struct {
	ID               string
	TenantID         string
	EmployeeID       string
	ContractTypeID   string
	ContractTypeName *string
	StartDate        time.Time
	EndDate          *time.Time
	IsActive         bool
	IsDeleted        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
