package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	ListEmployees(ctx context.Context, tenantID string, filter EmployeeFilter) ([]EmployeeResponse, int64, error)
	GetEmployee(ctx context.Context, tenantID, id string) (EmployeeResponse, error)
	// CreateEmployee stores the employee and its optional initial contract atomically.
	CreateEmployee(ctx context.Context, tenantID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, tenantID string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, tenantID, id string) error
	ManagerChain(ctx context.Context, tenantID, id string) ([]EmployeeSummary, error)
	UploadAvatar(ctx context.Context, tenantID, id string, file io.Reader, filename string) (EmployeeResponse, error)
}
