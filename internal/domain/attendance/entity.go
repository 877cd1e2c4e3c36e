package attendance

import (
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"
)

// Attendance is one record per employee per calendar date.
type Attendance struct {
	ID          string
	TenantID    string
	EmployeeID  string
	Date        time.Time
	Status      Status
	LateMinutes int
	Notes       *string
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EmployeeName *string
}

// CheckLateMinutes enforces that only late records carry late minutes.
func (a Attendance) CheckLateMinutes() validator.ValidationErrors {
	var errs validator.ValidationErrors
	switch {
	case a.LateMinutes < 0:
		errs.Add("late_minutes", "late_minutes must be greater than or equal to 0")
	case a.Status == StatusLate && a.LateMinutes == 0:
		errs.Add("late_minutes", "late_minutes must be greater than 0 when status is late")
	case a.Status != StatusLate && a.LateMinutes > 0:
		errs.Add("late_minutes", "late_minutes is only allowed when status is late")
	}
	return errs
}
