package salary

import (
	"context"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
)

type salaryServiceImpl struct {
	salaries  salary.SalaryRepository
	employees employee.EmployeeRepository
}

func NewSalaryService(salaryRepo salary.SalaryRepository, employeeRepo employee.EmployeeRepository) salary.SalaryService {
	return &salaryServiceImpl{salaries: salaryRepo, employees: employeeRepo}
}

func (s *salaryServiceImpl) List(ctx context.Context, tenantID string, filter salary.SalaryFilter) ([]salary.SalaryResponse, int64, error) {
	rows, total, err := s.salaries.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]salary.SalaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, salary.ToResponse(r))
	}
	return out, total, nil
}

func (s *salaryServiceImpl) Get(ctx context.Context, tenantID, id string) (salary.SalaryResponse, error) {
	r, err := s.salaries.GetByID(ctx, tenantID, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(r), nil
}

func (s *salaryServiceImpl) Create(ctx context.Context, tenantID string, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
	if _, err := s.employees.GetByID(ctx, tenantID, req.EmployeeID); err != nil {
		return salary.SalaryResponse{}, err
	}
	created, err := s.salaries.Create(ctx, req.ToEntity(tenantID))
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(created), nil
}

func (s *salaryServiceImpl) Update(ctx context.Context, tenantID string, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	current, err := s.salaries.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	updated, err := s.salaries.Update(ctx, req.Apply(current))
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToResponse(updated), nil
}

func (s *salaryServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.salaries.SoftDelete(ctx, tenantID, id)
}
