package attendance

import (
	"strings"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type CreateAttendanceRequest struct {
	EmployeeID  string  `json:"employee_id" validate:"required,uuid"`
	Date        string  `json:"date" validate:"required,date"`
	Status      string  `json:"status" validate:"required,oneof=present absent late leave"`
	LateMinutes int     `json:"late_minutes"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *CreateAttendanceRequest) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	errs := validator.Struct(r)
	errs = append(errs, r.ToEntity("").CheckLateMinutes()...)
	return errs.Err()
}

// ToEntity assumes Validate passed.
func (r *CreateAttendanceRequest) ToEntity(tenantID string) Attendance {
	date, _ := time.Parse(dateLayout, r.Date)
	return Attendance{
		TenantID:    tenantID,
		EmployeeID:  r.EmployeeID,
		Date:        date,
		Status:      Status(r.Status),
		LateMinutes: r.LateMinutes,
		Notes:       r.Notes,
	}
}

type UpdateAttendanceRequest struct {
	ID          string  `json:"-"`
	Status      *string `json:"status" validate:"omitempty,oneof=present absent late leave"`
	LateMinutes *int    `json:"late_minutes" validate:"omitempty,gte=0"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	if r.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
	errs := validator.Struct(r)
	if r.Status == nil && r.LateMinutes == nil && r.Notes == nil {
		errs.Add("body", "at least one field must be provided")
	}
	return errs.Err()
}

// Apply merges the request into a stored record. Moving away from late clears the minutes
// unless the request sets them explicitly.
func (r *UpdateAttendanceRequest) Apply(a Attendance) Attendance {
	if r.Status != nil {
		a.Status = Status(*r.Status)
		if a.Status != StatusLate && r.LateMinutes == nil {
			a.LateMinutes = 0
		}
	}
	if r.LateMinutes != nil {
		a.LateMinutes = *r.LateMinutes
	}
	if r.Notes != nil {
		a.Notes = r.Notes
	}
	return a
}

type AttendanceResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName *string   `json:"employee_name,omitempty"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	LateMinutes  int       `json:"late_minutes"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		TenantID:     a.TenantID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format(dateLayout),
		Status:       string(a.Status),
		LateMinutes:  a.LateMinutes,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
