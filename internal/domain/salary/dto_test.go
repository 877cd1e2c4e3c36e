package salary

import (
	"testing"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSalaryRequest_Validate(t *testing.T) {
	req := CreateSalaryRequest{
		EmployeeID:    "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b",
		Period:        "06-2025",
		BaseSalary:    decimal.NewFromInt(5_000_000),
		Allowances:    decimal.NewFromInt(250_000),
		EffectiveDate: "2025-06-01",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, "active", req.Status)
	assert.True(t, req.ToEntity("t1").Gross().Equal(decimal.NewFromInt(5_250_000)))
}

func TestCreateSalaryRequest_AggregatesErrors(t *testing.T) {
	req := CreateSalaryRequest{
		EmployeeID:    "nope",
		Period:        "2025-06",
		BaseSalary:    decimal.Zero,
		Allowances:    decimal.NewFromInt(-1),
		EffectiveDate: "01-06-2025",
	}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	for _, f := range []string{"employee_id", "period", "base_salary", "allowances", "effective_date"} {
		assert.Contains(t, fields, f)
	}
}
