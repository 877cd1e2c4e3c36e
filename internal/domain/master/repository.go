package master

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
)

// Repository is the tenant-scoped data access shared by every master-data table.
// Soft-deleted rows are invisible to all methods.
type Repository[T any] interface {
	Create(ctx context.Context, record T) (T, error)
	FindByID(ctx context.Context, tenantID, id string) (T, error)
	FindAll(ctx context.Context, tenantID string, filter Filter) ([]T, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateRequest) (T, error)
	SoftDelete(ctx context.Context, tenantID, id string) error
}

type Filter struct {
	pagination.Params
	Search string
}
