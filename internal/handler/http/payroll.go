package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/payroll"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/salary"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type PayrollHandler interface {
	ListSalaries(w http.ResponseWriter, r *http.Request)
	GetSalary(w http.ResponseWriter, r *http.Request)
	CreateSalary(w http.ResponseWriter, r *http.Request)
	UpdateSalary(w http.ResponseWriter, r *http.Request)
	DeleteSalary(w http.ResponseWriter, r *http.Request)

	CalculateDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)

	ListPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	CreatePayslip(w http.ResponseWriter, r *http.Request)
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	DeletePayslip(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
	ExportPayslips(w http.ResponseWriter, r *http.Request)

	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	salaryService  salary.SalaryService
}

func NewPayrollHandler(payrollService payroll.PayrollService, salaryService salary.SalaryService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, salaryService: salaryService}
}

// listParams reads pagination plus the employee_id and period filters shared by the payroll lists.
func listParams(w http.ResponseWriter, r *http.Request) (pagination.Params, string, string, bool) {
	page, err := pagination.FromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return pagination.Params{}, "", "", false
	}

	var errs validator.ValidationErrors
	employeeID := optionalUUID(&errs, r, "employee_id")
	period := optionalPeriod(&errs, r)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return pagination.Params{}, "", "", false
	}
	return page, employeeID, period, true
}

func (h *payrollHandlerImpl) ListSalaries(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	page, employeeID, period, ok := listParams(w, r)
	if !ok {
		return
	}

	salaries, total, err := h.salaryService.List(r.Context(), tenantID, salary.SalaryFilter{Params: page, EmployeeID: employeeID, Period: period})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Salaries retrieved", salaries, total)
}

func (h *payrollHandlerImpl) GetSalary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.salaryService.Get(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Salary retrieved", result)
}

func (h *payrollHandlerImpl) CreateSalary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req salary.CreateSalaryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.salaryService.Create(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Salary created", result)
}

func (h *payrollHandlerImpl) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req salary.UpdateSalaryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.salaryService.Update(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Salary updated", result)
}

func (h *payrollHandlerImpl) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.salaryService.Delete(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Salary deleted", nil)
}

func (h *payrollHandlerImpl) CalculateDeduction(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req payroll.CalculateDeductionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.payrollService.CalculateDeduction(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Attendance deduction calculated", result)
}

func (h *payrollHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	page, employeeID, period, ok := listParams(w, r)
	if !ok {
		return
	}

	deductions, total, err := h.payrollService.ListDeductions(r.Context(), tenantID, payroll.DeductionFilter{Params: page, EmployeeID: employeeID, Period: period})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Attendance deductions retrieved", deductions, total)
}

func (h *payrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	page, employeeID, period, ok := listParams(w, r)
	if !ok {
		return
	}

	payslips, total, err := h.payrollService.ListPayslips(r.Context(), tenantID, payroll.PayslipFilter{Params: page, EmployeeID: employeeID, Period: period})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Payslips retrieved", payslips, total)
}

func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.payrollService.GetPayslip(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Payslip retrieved", result)
}

func (h *payrollHandlerImpl) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req payroll.CreatePayslipRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.payrollService.CreatePayslip(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip created", result)
}

func (h *payrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req payroll.GeneratePayslipRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.payrollService.GeneratePayslip(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip generated", result)
}

func (h *payrollHandlerImpl) DeletePayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.payrollService.DeletePayslip(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Payslip deleted", nil)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// DownloadPayslip renders into memory first so failures still get a JSON error.
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.RenderPayslipPDF(r.Context(), tenantID, id, &buf); err != nil {
		response.HandleError(w, err)
		return
	}
	writeAttachment(w, contentTypePDF, "payslip-"+id+".pdf", &buf)
}

func (h *payrollHandlerImpl) ExportPayslips(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	period := r.URL.Query().Get("period")
	if !validator.IsValidPeriod(period) {
		response.ValidationError(w, validator.ValidationErrors{{Field: "period", Message: "period must be in MM-YYYY format"}})
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.ExportPayslips(r.Context(), tenantID, period, &buf); err != nil {
		response.HandleError(w, err)
		return
	}
	writeAttachment(w, contentTypeXLSX, "payslips-"+period+".xlsx", &buf)
}

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.GetSettings(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Payroll settings retrieved", result)
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req payroll.UpdateSettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.payrollService.UpdateSettings(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Payroll settings updated", result)
}
