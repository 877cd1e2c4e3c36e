package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// masterRepository serves the small lookup tables through gorm. The handle shares the pgx pool.
type masterRepository[T any, PT master.Entity[T]] struct {
	db         *gorm.DB
	notFound   error
	nameExists error
}

func NewPositionRepository(db *gorm.DB) master.Repository[master.Position] {
	return &masterRepository[master.Position, *master.Position]{db: db, notFound: master.ErrPositionNotFound, nameExists: master.ErrPositionNameExists}
}

func NewDepartmentRepository(db *gorm.DB) master.Repository[master.Department] {
	return &masterRepository[master.Department, *master.Department]{db: db, notFound: master.ErrDepartmentNotFound, nameExists: master.ErrDepartmentNameExists}
}

func NewContractTypeRepository(db *gorm.DB) master.Repository[master.ContractType] {
	return &masterRepository[master.ContractType, *master.ContractType]{db: db, notFound: master.ErrContractTypeNotFound, nameExists: master.ErrContractTypeNameExists}
}

func (r *masterRepository[T, PT]) scoped(ctx context.Context, tenantID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(PT(new(T))).
		Where("tenant_id = ? AND is_deleted = ?", tenantID, false)
}

func (r *masterRepository[T, PT]) Create(ctx context.Context, record T) (T, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return record, err
	}
	attrs := PT(&record).Attrs()
	attrs.ID = id.String()
	attrs.IsDeleted = false

	if err := r.db.WithContext(ctx).Create(PT(&record)).Error; err != nil {
		var zero T
		if isUniqueViolation(err) {
			return zero, r.nameExists
		}
		return zero, fmt.Errorf("failed to create %s: %w", PT(&record).TableName(), err)
	}
	return record, nil
}

func (r *masterRepository[T, PT]) FindByID(ctx context.Context, tenantID, id string) (T, error) {
	var record T
	err := r.scoped(ctx, tenantID).Where("id = ?", id).First(PT(&record)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return record, r.notFound
		}
		return record, fmt.Errorf("failed to get %s: %w", PT(&record).TableName(), err)
	}
	return record, nil
}

func (r *masterRepository[T, PT]) FindAll(ctx context.Context, tenantID string, filter master.Filter) ([]T, int64, error) {
	query := r.scoped(ctx, tenantID)
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	records := make([]T, 0, filter.Limit)
	err := query.Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}
	return records, total, nil
}

func (r *masterRepository[T, PT]) Update(ctx context.Context, tenantID string, req master.UpdateRequest) (T, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	result := r.scoped(ctx, tenantID).Where("id = ?", req.ID).Updates(updates)
	if result.Error != nil {
		var zero T
		if isUniqueViolation(result.Error) {
			return zero, r.nameExists
		}
		return zero, fmt.Errorf("failed to update record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var zero T
		return zero, r.notFound
	}
	return r.FindByID(ctx, tenantID, req.ID)
}

func (r *masterRepository[T, PT]) SoftDelete(ctx context.Context, tenantID, id string) error {
	result := r.scoped(ctx, tenantID).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.notFound
	}
	return nil
}
