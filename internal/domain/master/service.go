package master

import "context"

type Service interface {
	Create(ctx context.Context, tenantID string, req CreateRequest) (Response, error)
	Get(ctx context.Context, tenantID, id string) (Response, error)
	List(ctx context.Context, tenantID string, filter Filter) ([]Response, int64, error)
	Update(ctx context.Context, tenantID string, req UpdateRequest) (Response, error)
	Delete(ctx context.Context, tenantID, id string) error
}
