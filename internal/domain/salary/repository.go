package salary

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

type SalaryFilter struct {
	pagination.Params
	EmployeeID string
	Period     string
}

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, tenantID, id string) (Salary, error)
	List(ctx context.Context, tenantID string, filter SalaryFilter) ([]Salary, int64, error)
	Update(ctx context.Context, s Salary) (Salary, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
	// GetActive returns the active salary of the employee for period.
	GetActive(ctx context.Context, tenantID, employeeID, period string) (Salary, error)
}
