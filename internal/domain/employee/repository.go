package employee

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type EmployeeFilter struct {
	pagination.Params
	Search       string
	DepartmentID string
	PositionID   string
}

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, tenantID, id string) (EmployeeWithDetails, error)
	List(ctx context.Context, tenantID string, filter EmployeeFilter) ([]EmployeeWithDetails, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateEmployeeRequest) error
	UpdateAvatar(ctx context.Context, tenantID, id, avatarURL string) error
	SoftDelete(ctx context.Context, tenantID, id string) error
	// ManagerOf returns the manager id of a live employee, nil at the top of the chain.
	ManagerOf(ctx context.Context, tenantID, id string) (*string, error)
}
