package employee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/master"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/service/file"
)

// References are the tenant-scoped master data an employee record may point at.
type References struct {
	Positions     master.Repository[master.Position]
	Departments   master.Repository[master.Department]
	ContractTypes master.Repository[master.ContractType]
}

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	contractRepo contract.ContractRepository
	refs         References
	fileService  file.FileService
	logger       *slog.Logger
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	contractRepo contract.ContractRepository,
	refs References,
	fileService file.FileService,
	logger *slog.Logger,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		refs:         refs,
		fileService:  fileService,
		logger:       logger,
	}
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)

// toResponse also turns the stored avatar key into a public URL.
func (s *EmployeeServiceImpl) toResponse(emp employee.EmployeeWithDetails) employee.EmployeeResponse {
	resp := employee.ToResponse(emp)
	if emp.AvatarURL != nil && *emp.AvatarURL != "" {
		url := s.fileService.URL(*emp.AvatarURL)
		resp.AvatarURL = &url
	}
	return resp
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, tenantID string, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, int64, error) {
	employees, total, err := s.employeeRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, s.toResponse(emp))
	}
	return out, total, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, tenantID, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(emp), nil
}

// lookupError maps a master-data miss to the caller's reference error.
func lookupError(err, notFound, invalid error) error {
	if errors.Is(err, notFound) {
		return invalid
	}
	return err
}

// checkReferences fails unless every given id belongs to tenantID.
func (s *EmployeeServiceImpl) checkReferences(ctx context.Context, tenantID string, positionID, departmentID, contractTypeID *string) error {
	if positionID != nil {
		if _, err := s.refs.Positions.FindByID(ctx, tenantID, *positionID); err != nil {
			return lookupError(err, master.ErrPositionNotFound, employee.ErrInvalidReference)
		}
	}
	if departmentID != nil {
		if _, err := s.refs.Departments.FindByID(ctx, tenantID, *departmentID); err != nil {
			return lookupError(err, master.ErrDepartmentNotFound, employee.ErrInvalidReference)
		}
	}
	if contractTypeID != nil {
		if _, err := s.refs.ContractTypes.FindByID(ctx, tenantID, *contractTypeID); err != nil {
			return lookupError(err, master.ErrContractTypeNotFound, contract.ErrContractTypeInvalid)
		}
	}
	return nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, tenantID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	var contractTypeID *string
	if req.Contract != nil {
		contractTypeID = &req.Contract.ContractTypeID
	}
	if err := s.checkReferences(ctx, tenantID, req.PositionID, req.DepartmentID, contractTypeID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, tenantID, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	var createdID string
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.employeeRepo.Create(txCtx, req.ToEntity(tenantID))
		if err != nil {
			return err
		}
		createdID = created.ID

		if req.Contract == nil {
			return nil
		}
		initial := contract.CreateContractRequest{
			EmployeeID:     created.ID,
			ContractTypeID: req.Contract.ContractTypeID,
			StartDate:      req.Contract.StartDate,
			EndDate:        req.Contract.EndDate,
		}
		if _, err := s.contractRepo.Create(txCtx, initial.ToEntity(tenantID)); err != nil {
			return fmt.Errorf("failed to create initial contract: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.InfoContext(ctx, "employee created",
		slog.String("tenant_id", tenantID),
		slog.String("employee_id", createdID),
		slog.Bool("with_contract", req.Contract != nil),
	)
	return s.GetEmployee(ctx, tenantID, createdID)
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, tenantID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, tenantID, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkReferences(ctx, tenantID, req.PositionID, req.DepartmentID, nil); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, tenantID, req.ID, *req.ManagerID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.employeeRepo.Update(ctx, tenantID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, tenantID, req.ID)
}

// checkManager walks up from the proposed manager and fails when the chain leads back to employeeID.
func (s *EmployeeServiceImpl) checkManager(ctx context.Context, tenantID, employeeID, managerID string) error {
	if managerID == employeeID {
		return employee.ErrSelfManager
	}

	current := managerID
	for depth := 0; depth < employee.MaxManagerChain; depth++ {
		next, err := s.employeeRepo.ManagerOf(ctx, tenantID, current)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) && depth == 0 {
				return employee.ErrManagerNotFound
			}
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			return err
		}
		if next == nil {
			return nil
		}
		if *next == employeeID {
			return employee.ErrManagerCycle
		}
		current = *next
	}
	return employee.ErrManagerCycle
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, tenantID, id string) error {
	return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.SoftDelete(txCtx, tenantID, id); err != nil {
			return err
		}
		return s.contractRepo.DeactivateByEmployee(txCtx, tenantID, id)
	})
}

// ManagerChain implements employee.EmployeeService. The first entry is the direct manager.
func (s *EmployeeServiceImpl) ManagerChain(ctx context.Context, tenantID, id string) ([]employee.EmployeeSummary, error) {
	emp, err := s.employeeRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	chain := make([]employee.EmployeeSummary, 0)
	seen := map[string]bool{emp.ID: true}
	next := emp.ManagerID

	for next != nil {
		if seen[*next] || len(chain) >= employee.MaxManagerChain {
			return nil, employee.ErrManagerCycle
		}
		seen[*next] = true

		manager, err := s.employeeRepo.GetByID(ctx, tenantID, *next)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				break
			}
			return nil, err
		}
		chain = append(chain, employee.EmployeeSummary{
			ID:       manager.ID,
			FullName: manager.FullName,
			Position: manager.PositionName,
		})
		next = manager.ManagerID
	}
	return chain, nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, tenantID, id string, file io.Reader, filename string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	key, err := s.fileService.UploadAvatar(ctx, id, file, filename)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateAvatar(ctx, tenantID, id, key); err != nil {
		if rmErr := s.fileService.DeleteFile(ctx, key); rmErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned avatar", slog.String("key", key), slog.Any("error", rmErr))
		}
		return employee.EmployeeResponse{}, err
	}

	if emp.AvatarURL != nil && *emp.AvatarURL != "" && *emp.AvatarURL != key {
		if err := s.fileService.DeleteFile(ctx, *emp.AvatarURL); err != nil {
			s.logger.WarnContext(ctx, "failed to remove previous avatar", slog.String("key", *emp.AvatarURL), slog.Any("error", err))
		}
	}

	return s.GetEmployee(ctx, tenantID, id)
}
