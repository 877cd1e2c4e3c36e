package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance not found")
	ErrAttendanceAlreadyExists = errors.New("attendance already recorded for this employee on this date")
	ErrEmployeeNotFound        = errors.New("employee not found")
)
