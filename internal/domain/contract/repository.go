package contract

import "context"

type ContractRepository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	GetByID(ctx context.Context, tenantID, id string) (Contract, error)
	ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]Contract, error)
	Update(ctx context.Context, tenantID string, req UpdateContractRequest) (Contract, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
	// DeactivateByEmployee clears the active flag of every live contract of the employee.
	DeactivateByEmployee(ctx context.Context, tenantID, employeeID string) error
}
