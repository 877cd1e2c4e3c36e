package postgresql

import (
	"context"
	"fmt"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type contractRepositoryImpl struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepositoryImpl{db: db}
}

const contractSelect = `
	SELECT c.id, c.tenant_id, c.employee_id, c.contract_type_id, ct.name, c.start_date, c.end_date,
		c.is_active, c.is_deleted, c.created_at, c.updated_at
	FROM contracts c
	LEFT JOIN contract_types ct ON ct.id = c.contract_type_id AND ct.tenant_id = c.tenant_id
`

func scanContract(row interface{ Scan(...interface{}) error }) (contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.TenantID, &c.EmployeeID, &c.ContractTypeID, &c.ContractTypeName, &c.StartDate, &c.EndDate,
		&c.IsActive, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *contractRepositoryImpl) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return contract.Contract{}, err
	}

	var createdID string
	err = q.QueryRow(ctx, `
		INSERT INTO contracts (id, tenant_id, employee_id, contract_type_id, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, id.String(), c.TenantID, c.EmployeeID, c.ContractTypeID, c.StartDate, c.EndDate, c.IsActive).Scan(&createdID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return contract.Contract{}, contract.ErrContractTypeInvalid
		}
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}
	return r.GetByID(ctx, c.TenantID, createdID)
}

func (r *contractRepositoryImpl) GetByID(ctx context.Context, tenantID, id string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := contractSelect + ` WHERE c.id = $1 AND c.tenant_id = $2 AND c.is_deleted = false`
	c, err := scanContract(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isNoRows(err) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get contract: %w", err)
	}
	return c, nil
}

func (r *contractRepositoryImpl) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := contractSelect + `
		WHERE c.employee_id = $1 AND c.tenant_id = $2 AND c.is_deleted = false
		ORDER BY c.start_date DESC
	`
	rows, err := q.Query(ctx, query, employeeID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (contract.Contract, error) {
		return scanContract(row)
	})
}

func (r *contractRepositoryImpl) Update(ctx context.Context, tenantID string, req contract.UpdateContractRequest) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	var u updateSet
	if req.ContractTypeID != nil {
		u.set("contract_type_id", *req.ContractTypeID)
	}
	if req.StartDate != nil {
		u.set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		u.set("end_date", *req.EndDate)
	}

	query := fmt.Sprintf(`UPDATE contracts SET %s WHERE id = %s AND tenant_id = %s AND is_deleted = false`,
		u.clause(), u.arg(req.ID), u.arg(tenantID))
	tag, err := q.Exec(ctx, query, u.args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return contract.Contract{}, contract.ErrContractTypeInvalid
		}
		return contract.Contract{}, fmt.Errorf("failed to update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return r.GetByID(ctx, tenantID, req.ID)
}

func (r *contractRepositoryImpl) SoftDelete(ctx context.Context, tenantID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE contracts SET is_deleted = true, is_active = false, updated_at = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = false
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}
	return nil
}

func (r *contractRepositoryImpl) DeactivateByEmployee(ctx context.Context, tenantID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE contracts SET is_active = false, updated_at = NOW()
		WHERE employee_id = $1 AND tenant_id = $2 AND is_active = true AND is_deleted = false
	`, employeeID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to deactivate contracts: %w", err)
	}
	return nil
}
