package contract

import "context"

type ContractService interface {
	ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]ContractResponse, error)
	Get(ctx context.Context, tenantID, id string) (ContractResponse, error)
	// Create makes the new contract the only active one of the employee.
	Create(ctx context.Context, tenantID string, req CreateContractRequest) (ContractResponse, error)
	Update(ctx context.Context, tenantID string, req UpdateContractRequest) (ContractResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}
