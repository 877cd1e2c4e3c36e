package salary

import (
	"context"
	"testing"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"

type fakeSalaries struct {
	salary.SalaryRepository
	rows map[string]salary.Salary
}

func (f *fakeSalaries) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	s.ID = s.EmployeeID + "-" + s.Period
	if _, ok := f.rows[s.ID]; ok {
		return salary.Salary{}, salary.ErrSalaryExists
	}
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeSalaries) GetByID(ctx context.Context, tenantID, id string) (salary.Salary, error) {
	s, ok := f.rows[id]
	if !ok || s.TenantID != tenantID {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (f *fakeSalaries) Update(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	f.rows[s.ID] = s
	return s, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
}

func (fakeEmployees) GetByID(ctx context.Context, tenantID, id string) (employee.EmployeeWithDetails, error) {
	if id != employeeID {
		return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeWithDetails{}, nil
}

func TestCreateAndUpdate(t *testing.T) {
	repo := &fakeSalaries{rows: map[string]salary.Salary{}}
	svc := NewSalaryService(repo, fakeEmployees{})
	ctx := context.Background()

	req := salary.CreateSalaryRequest{
		EmployeeID:    employeeID,
		Period:        "06-2025",
		BaseSalary:    decimal.RequireFromString("4500000.005"),
		Allowances:    decimal.NewFromInt(500000),
		EffectiveDate: "2025-06-01",
	}
	require.NoError(t, req.Validate())

	created, err := svc.Create(ctx, "t1", req)
	require.NoError(t, err)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, "4500000.01", created.BaseSalary.StringFixed(2))

	_, err = svc.Create(ctx, "t1", req)
	assert.ErrorIs(t, err, salary.ErrSalaryExists)

	inactive := "inactive"
	updated, err := svc.Update(ctx, "t1", salary.UpdateSalaryRequest{ID: created.ID, Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "inactive", updated.Status)
	assert.Equal(t, "2025-06-01", updated.EffectiveDate)

	_, err = svc.Update(ctx, "t2", salary.UpdateSalaryRequest{ID: created.ID, Status: &inactive})
	assert.ErrorIs(t, err, salary.ErrSalaryNotFound)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	repo := &fakeSalaries{rows: map[string]salary.Salary{}}
	svc := NewSalaryService(repo, fakeEmployees{})

	_, err := svc.Create(context.Background(), "t1", salary.CreateSalaryRequest{EmployeeID: "other", Period: "06-2025"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, repo.rows)
}
