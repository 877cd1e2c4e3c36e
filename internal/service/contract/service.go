package contract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
)

type contractServiceImpl struct {
	tx        database.Transactor
	contracts contract.ContractRepository
	employees employee.EmployeeRepository
	types     master.Repository[master.ContractType]
	logger    *slog.Logger
}

func NewContractService(
	tx database.Transactor,
	contractRepo contract.ContractRepository,
	employeeRepo employee.EmployeeRepository,
	contractTypeRepo master.Repository[master.ContractType],
	logger *slog.Logger,
) contract.ContractService {
	return &contractServiceImpl{
		tx:        tx,
		contracts: contractRepo,
		employees: employeeRepo,
		types:     contractTypeRepo,
		logger:    logger,
	}
}

func toResponses(contracts []contract.Contract) []contract.ContractResponse {
	out := make([]contract.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		out = append(out, contract.ToResponse(c))
	}
	return out
}

// checkType fails unless the contract type belongs to tenantID.
func (s *contractServiceImpl) checkType(ctx context.Context, tenantID, id string) error {
	if _, err := s.types.FindByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, master.ErrContractTypeNotFound) {
			return contract.ErrContractTypeInvalid
		}
		return err
	}
	return nil
}

func (s *contractServiceImpl) ListByEmployee(ctx context.Context, tenantID, employeeID string) ([]contract.ContractResponse, error) {
	if _, err := s.employees.GetByID(ctx, tenantID, employeeID); err != nil {
		return nil, err
	}
	contracts, err := s.contracts.ListByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	return toResponses(contracts), nil
}

func (s *contractServiceImpl) Get(ctx context.Context, tenantID, id string) (contract.ContractResponse, error) {
	c, err := s.contracts.GetByID(ctx, tenantID, id)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return contract.ToResponse(c), nil
}

func (s *contractServiceImpl) Create(ctx context.Context, tenantID string, req contract.CreateContractRequest) (contract.ContractResponse, error) {
	if _, err := s.employees.GetByID(ctx, tenantID, req.EmployeeID); err != nil {
		return contract.ContractResponse{}, err
	}
	if err := s.checkType(ctx, tenantID, req.ContractTypeID); err != nil {
		return contract.ContractResponse{}, err
	}

	var created contract.Contract
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.contracts.DeactivateByEmployee(txCtx, tenantID, req.EmployeeID); err != nil {
			return err
		}
		var err error
		created, err = s.contracts.Create(txCtx, req.ToEntity(tenantID))
		return err
	})
	if err != nil {
		return contract.ContractResponse{}, err
	}

	s.logger.InfoContext(ctx, "contract created",
		slog.String("tenant_id", tenantID),
		slog.String("employee_id", req.EmployeeID),
		slog.String("contract_id", created.ID),
	)
	return contract.ToResponse(created), nil
}

func (s *contractServiceImpl) Update(ctx context.Context, tenantID string, req contract.UpdateContractRequest) (contract.ContractResponse, error) {
	if req.ContractTypeID != nil {
		if err := s.checkType(ctx, tenantID, *req.ContractTypeID); err != nil {
			return contract.ContractResponse{}, err
		}
	}
	updated, err := s.contracts.Update(ctx, tenantID, req)
	if err != nil {
		return contract.ContractResponse{}, err
	}
	return contract.ToResponse(updated), nil
}

func (s *contractServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.contracts.SoftDelete(ctx, tenantID, id)
}
