package http

import (
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/contract"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/AiDinaAgustin/microservice-payroll/internal/service/file"
)

type EmployeeHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	DeleteEmployee(w http.ResponseWriter, r *http.Request)
	ManagerChain(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)

	ListContracts(w http.ResponseWriter, r *http.Request)
	GetContract(w http.ResponseWriter, r *http.Request)
	CreateContract(w http.ResponseWriter, r *http.Request)
	UpdateContract(w http.ResponseWriter, r *http.Request)
	DeleteContract(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	contractService contract.ContractService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, contractService contract.ContractService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		contractService: contractService,
	}
}

// ListEmployees implements EmployeeHandler
func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	page, err := pagination.FromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var errs validator.ValidationErrors
	filter := employee.EmployeeFilter{
		Params:       page,
		Search:       r.URL.Query().Get("search"),
		DepartmentID: optionalUUID(&errs, r, "department_id"),
		PositionID:   optionalUUID(&errs, r, "position_id"),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	employees, total, err := h.employeeService.ListEmployees(r.Context(), tenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Employees retrieved", employees, total)
}

// GetEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Employee retrieved", result)
}

// CreateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}

	var req employee.CreateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", result)
}

// UpdateEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req employee.UpdateEmployeeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.employeeService.UpdateEmployee(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Employee updated", result)
}

// DeleteEmployee implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Employee deleted", nil)
}

// ManagerChain implements EmployeeHandler
func (h *employeeHandlerImpl) ManagerChain(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	chain, err := h.employeeService.ManagerChain(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Manager chain retrieved", chain)
}

// UploadAvatar implements EmployeeHandler
func (h *employeeHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, file.MaxAvatarSize+(1<<20))
	if err := r.ParseMultipartForm(file.MaxAvatarSize); err != nil {
		response.BadRequest(w, "Failed to parse form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, header, err := r.FormFile("avatar")
	if err != nil {
		response.ValidationError(w, validator.ValidationErrors{{Field: "avatar", Message: "avatar is required"}})
		return
	}
	defer f.Close()

	result, err := h.employeeService.UploadAvatar(r.Context(), tenantID, id, f, header.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Avatar uploaded", result)
}

// ListContracts implements EmployeeHandler
func (h *employeeHandlerImpl) ListContracts(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contracts, err := h.contractService.ListByEmployee(r.Context(), tenantID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Contracts retrieved", contracts, int64(len(contracts)))
}

// GetContract implements EmployeeHandler
func (h *employeeHandlerImpl) GetContract(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}

	result, err := h.contractService.Get(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Contract retrieved", result)
}

// CreateContract implements EmployeeHandler
func (h *employeeHandlerImpl) CreateContract(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	employeeID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req contract.CreateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.EmployeeID = employeeID

	result, err := h.contractService.Create(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Contract created", result)
}

// UpdateContract implements EmployeeHandler
func (h *employeeHandlerImpl) UpdateContract(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}

	var req contract.UpdateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.contractService.Update(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Contract updated", result)
}

// DeleteContract implements EmployeeHandler
func (h *employeeHandlerImpl) DeleteContract(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "contractID")
	if !ok {
		return
	}

	if err := h.contractService.Delete(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Contract deleted", nil)
}
