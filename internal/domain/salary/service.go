package salary

import (
	"context"
)

type SalaryService interface {
	List(ctx context.Context, tenantID string, filter SalaryFilter) ([]SalaryResponse, int64, error)
	Get(ctx context.Context, tenantID, id string) (SalaryResponse, error)
	Create(ctx context.Context, tenantID string, req CreateSalaryRequest) (SalaryResponse, error)
	Update(ctx context.Context, tenantID string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}
