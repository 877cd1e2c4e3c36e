package attendance

import (
	"context"
	"log/slog"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
)

type attendanceServiceImpl struct {
	attendances attendance.AttendanceRepository
	employees   employee.EmployeeRepository
	logger      *slog.Logger
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		attendances: attendanceRepo,
		employees:   employeeRepo,
		logger:      logger,
	}
}

func (s *attendanceServiceImpl) List(ctx context.Context, tenantID string, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	records, total, err := s.attendances.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, attendance.ToResponse(a))
	}
	return out, total, nil
}

func (s *attendanceServiceImpl) Get(ctx context.Context, tenantID, id string) (attendance.AttendanceResponse, error) {
	a, err := s.attendances.GetByID(ctx, tenantID, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(a), nil
}

func (s *attendanceServiceImpl) Create(ctx context.Context, tenantID string, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if _, err := s.employees.GetByID(ctx, tenantID, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendances.Create(ctx, req.ToEntity(tenantID))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.DebugContext(ctx, "attendance recorded",
		slog.String("employee_id", created.EmployeeID),
		slog.String("status", string(created.Status)),
		slog.Int("late_minutes", created.LateMinutes),
	)
	return attendance.ToResponse(created), nil
}

func (s *attendanceServiceImpl) Update(ctx context.Context, tenantID string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	current, err := s.attendances.GetByID(ctx, tenantID, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	next := req.Apply(current)
	if err := next.CheckLateMinutes().Err(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendances.Update(ctx, next)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

func (s *attendanceServiceImpl) Delete(ctx context.Context, tenantID, id string) error {
	return s.attendances.SoftDelete(ctx, tenantID, id)
}
