package http

import (
	"net/http"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/handler/http/response"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/pagination"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
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
	filter := attendance.AttendanceFilter{
		Params:     page,
		EmployeeID: optionalUUID(&errs, r, "employee_id"),
		Period:     optionalPeriod(&errs, r),
		Status:     r.URL.Query().Get("status"),
	}
	switch attendance.Status(filter.Status) {
	case "", attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate, attendance.StatusLeave:
	default:
		errs.Add("status", "status must be one of present absent late leave")
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, total, err := h.attendanceService.List(r.Context(), tenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, "Attendance retrieved", records, total)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attendanceService.Get(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Attendance retrieved", result)
}

func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	var req attendance.CreateAttendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.attendanceService.Create(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req attendance.UpdateAttendanceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.attendanceService.Update(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Attendance updated", result)
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, "Attendance deleted", nil)
}
