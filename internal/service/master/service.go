package master

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
)

type serviceImpl[T any, PT master.Entity[T]] struct {
	repo master.Repository[T]
}

// NewService builds the CRUD service for one master-data table.
func NewService[T any, PT master.Entity[T]](repo master.Repository[T]) master.Service {
	return &serviceImpl[T, PT]{repo: repo}
}

func NewPositionService(repo master.Repository[master.Position]) master.Service {
	return NewService[master.Position, *master.Position](repo)
}

func NewDepartmentService(repo master.Repository[master.Department]) master.Service {
	return NewService[master.Department, *master.Department](repo)
}

func NewContractTypeService(repo master.Repository[master.ContractType]) master.Service {
	return NewService[master.ContractType, *master.ContractType](repo)
}

func (s *serviceImpl[T, PT]) Create(ctx context.Context, tenantID string, req master.CreateRequest) (master.Response, error) {
	var record T
	attrs := PT(&record).Attrs()
	attrs.TenantID = tenantID
	attrs.Name = req.Name
	attrs.Description = req.Description

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return master.Response{}, err
	}
	return master.ToResponse(PT(&created).Attrs()), nil
}

func (s *serviceImpl[T, PT]) Get(ctx context.Context, tenantID, id string) (master.Response, error) {
	record, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return master.Response{}, err
	}
	return master.ToResponse(PT(&record).Attrs()), nil
}

func (s *serviceImpl[T, PT]) List(ctx context.Context, tenantID string, filter master.Filter) ([]master.Response, int64, error) {
	records, total, err := s.repo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]master.Response, 0, len(records))
	for i := range records {
		out = append(out, master.ToResponse(PT(&records[i]).Attrs()))
	}
	return out, total, nil
}

func (s *serviceImpl[T, PT]) Update(ctx context.Context, tenantID string, req master.UpdateRequest) (master.Response, error) {
	updated, err := s.repo.Update(ctx, tenantID, req)
	if err != nil {
		return master.Response{}, err
	}
	return master.ToResponse(PT(&updated).Attrs()), nil
}

func (s *serviceImpl[T, PT]) Delete(ctx context.Context, tenantID, id string) error {
	return s.repo.SoftDelete(ctx, tenantID, id)
}
