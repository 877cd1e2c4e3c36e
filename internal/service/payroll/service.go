package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/database"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/period"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx          database.Transactor
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	salaries    salary.SalaryRepository
	deductions  payroll.DeductionRepository
	payslips    payroll.PayslipRepository
	settings    payroll.SettingsRepository
	policy      payroll.DeductionPolicy
	defaultRate decimal.Decimal
	logger      *slog.Logger
}

type Repositories struct {
	Employees   employee.EmployeeRepository
	Attendances attendance.AttendanceRepository
	Salaries    salary.SalaryRepository
	Deductions  payroll.DeductionRepository
	Payslips    payroll.PayslipRepository
	Settings    payroll.SettingsRepository
}

// NewPayrollService wires the calculators. defaultRate is reported for tenants without settings
// and should match the fallback of policy.
func NewPayrollService(
	tx database.Transactor,
	repos Repositories,
	policy payroll.DeductionPolicy,
	defaultRate decimal.Decimal,
	logger *slog.Logger,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		tx:          tx,
		employees:   repos.Employees,
		attendances: repos.Attendances,
		salaries:    repos.Salaries,
		deductions:  repos.Deductions,
		payslips:    repos.Payslips,
		settings:    repos.Settings,
		policy:      policy,
		defaultRate: defaultRate,
		logger:      logger,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

func parsePeriod(s string) (period.Period, error) {
	p, err := period.Parse(s)
	if err != nil {
		return period.Period{}, validator.ValidationErrors{{Field: "period", Message: "period must be in MM-YYYY format"}}
	}
	return p, nil
}

// checkEmployee fails unless employeeID is a live employee of tenantID.
func (s *PayrollServiceImpl) checkEmployee(ctx context.Context, tenantID, employeeID string) error {
	if _, err := s.employees.GetByID(ctx, tenantID, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// CalculateDeduction implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculateDeduction(ctx context.Context, tenantID string, req payroll.CalculateDeductionRequest) (payroll.DeductionResponse, error) {
	if err := s.checkEmployee(ctx, tenantID, req.EmployeeID); err != nil {
		return payroll.DeductionResponse{}, err
	}
	d, err := s.calculateDeduction(ctx, tenantID, req.EmployeeID, req.Period)
	if err != nil {
		return payroll.DeductionResponse{}, err
	}
	return payroll.ToDeductionResponse(d), nil
}

func (s *PayrollServiceImpl) calculateDeduction(ctx context.Context, tenantID, employeeID, periodKey string) (payroll.AttendanceDeduction, error) {
	p, err := parsePeriod(periodKey)
	if err != nil {
		return payroll.AttendanceDeduction{}, err
	}

	minutes, err := s.attendances.SumLateMinutes(ctx, tenantID, employeeID, p.Start(), p.End())
	if err != nil {
		return payroll.AttendanceDeduction{}, err
	}

	amount, err := s.policy.Deduction(ctx, tenantID, minutes)
	if err != nil {
		return payroll.AttendanceDeduction{}, err
	}

	saved, err := s.deductions.Upsert(ctx, payroll.AttendanceDeduction{
		TenantID:         tenantID,
		EmployeeID:       employeeID,
		Period:           p.String(),
		TotalLateMinutes: minutes,
		DeductionAmount:  amount,
	})
	if err != nil {
		return payroll.AttendanceDeduction{}, err
	}

	s.logger.InfoContext(ctx, "attendance deduction calculated",
		slog.String("tenant_id", tenantID),
		slog.String("employee_id", employeeID),
		slog.String("period", p.String()),
		slog.Int("late_minutes", minutes),
		slog.String("amount", amount.StringFixed(2)),
	)
	return saved, nil
}

// ListDeductions implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListDeductions(ctx context.Context, tenantID string, filter payroll.DeductionFilter) ([]payroll.DeductionResponse, int64, error) {
	deductions, total, err := s.deductions.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]payroll.DeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		out = append(out, payroll.ToDeductionResponse(d))
	}
	return out, total, nil
}

// CreatePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, tenantID string, req payroll.CreatePayslipRequest) (payroll.PayslipResponse, error) {
	if err := s.checkEmployee(ctx, tenantID, req.EmployeeID); err != nil {
		return payroll.PayslipResponse{}, err
	}
	created, err := s.createPayslip(ctx, tenantID, req.EmployeeID, req.Period, req.BaseSalary, req.TotalDeductions)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(created), nil
}

func (s *PayrollServiceImpl) createPayslip(ctx context.Context, tenantID, employeeID, periodKey string, base, deductions decimal.Decimal) (payroll.Payslip, error) {
	p, err := parsePeriod(periodKey)
	if err != nil {
		return payroll.Payslip{}, err
	}

	base = base.Round(2)
	deductions = deductions.Round(2)

	net, err := payroll.NetSalary(base, deductions)
	if err != nil {
		return payroll.Payslip{}, err
	}

	return s.payslips.Create(ctx, payroll.Payslip{
		TenantID:        tenantID,
		EmployeeID:      employeeID,
		Period:          p.String(),
		BaseSalary:      base,
		TotalDeductions: deductions,
		NetSalary:       net,
	})
}

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, tenantID string, req payroll.GeneratePayslipRequest) (payroll.PayslipResponse, error) {
	if err := s.checkEmployee(ctx, tenantID, req.EmployeeID); err != nil {
		return payroll.PayslipResponse{}, err
	}

	var created payroll.Payslip
	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		sal, err := s.salaries.GetActive(txCtx, tenantID, req.EmployeeID, req.Period)
		if err != nil {
			return err
		}

		deduction, err := s.calculateDeduction(txCtx, tenantID, req.EmployeeID, req.Period)
		if err != nil {
			return fmt.Errorf("failed to calculate deduction: %w", err)
		}

		created, err = s.createPayslip(txCtx, tenantID, req.EmployeeID, req.Period, sal.Gross(), deduction.DeductionAmount)
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(created), nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, tenantID string, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, int64, error) {
	payslips, total, err := s.payslips.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, payroll.ToPayslipResponse(p))
	}
	return out, total, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, tenantID, id string) (payroll.PayslipResponse, error) {
	p, err := s.payslips.GetByID(ctx, tenantID, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(p), nil
}

// DeletePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeletePayslip(ctx context.Context, tenantID, id string) error {
	return s.payslips.SoftDelete(ctx, tenantID, id)
}

// RenderPayslipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, tenantID, id string, w io.Writer) error {
	p, err := s.payslips.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	return writePayslipPDF(w, p)
}

// ExportPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayslips(ctx context.Context, tenantID, periodKey string, w io.Writer) error {
	p, err := parsePeriod(periodKey)
	if err != nil {
		return err
	}

	payslips, err := s.payslips.ListByPeriod(ctx, tenantID, p.String())
	if err != nil {
		return err
	}
	if len(payslips) == 0 {
		return payroll.ErrNoPayslips
	}
	return writePayslipWorkbook(w, p, payslips)
}

// GetSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSettings(ctx context.Context, tenantID string) (payroll.SettingsResponse, error) {
	settings, err := s.settings.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.SettingsResponse{
				TenantID:               tenantID,
				LateDeductionPerMinute: s.defaultRate,
				IsDefault:              true,
			}, nil
		}
		return payroll.SettingsResponse{}, err
	}
	return payroll.SettingsResponse{
		TenantID:               settings.TenantID,
		LateDeductionPerMinute: settings.LateDeductionPerMinute,
	}, nil
}

// UpdateSettings implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdateSettings(ctx context.Context, tenantID string, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	saved, err := s.settings.UpsertSettings(ctx, payroll.Settings{
		TenantID:               tenantID,
		LateDeductionPerMinute: req.LateDeductionPerMinute.Round(2),
	})
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.SettingsResponse{
		TenantID:               saved.TenantID,
		LateDeductionPerMinute: saved.LateDeductionPerMinute,
	}, nil
}
