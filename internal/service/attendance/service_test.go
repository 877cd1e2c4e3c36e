package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/attendance"
	"github.com/AiDinaAgustin/microservice-payroll/internal/domain/employee"
	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b"

type fakeAttendances struct {
	attendance.AttendanceRepository
	rows map[string]attendance.Attendance
}

func (f *fakeAttendances) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range f.rows {
		if existing.TenantID == a.TenantID && existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) && !existing.IsDeleted {
			return attendance.Attendance{}, attendance.ErrAttendanceAlreadyExists
		}
	}
	a.ID = a.Date.Format("20060102")
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAttendances) GetByID(ctx context.Context, tenantID, id string) (attendance.Attendance, error) {
	a, ok := f.rows[id]
	if !ok || a.TenantID != tenantID || a.IsDeleted {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendances) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.rows[a.ID] = a
	return a, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
}

func (fakeEmployees) GetByID(ctx context.Context, tenantID, id string) (employee.EmployeeWithDetails, error) {
	if id != employeeID {
		return employee.EmployeeWithDetails{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeWithDetails{Employee: employee.Employee{ID: id, TenantID: tenantID}}, nil
}

func newService() (attendance.AttendanceService, *fakeAttendances) {
	repo := &fakeAttendances{rows: map[string]attendance.Attendance{}}
	return NewAttendanceService(repo, fakeEmployees{}, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, Date: "2025-06-02", Status: "late", LateMinutes: 10}
	require.NoError(t, req.Validate())

	got, err := svc.Create(ctx, "t1", req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", got.Date)
	assert.Equal(t, 10, got.LateMinutes)

	_, err = svc.Create(ctx, "t1", req)
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyExists)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	svc, repo := newService()
	req := attendance.CreateAttendanceRequest{EmployeeID: "0190a1b2-0000-7e4f-8a9b-0c1d2e3f4a5b", Date: "2025-06-02", Status: "present"}

	_, err := svc.Create(context.Background(), "t1", req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, repo.rows)
}

func TestCreateRequest_LateMinutesRules(t *testing.T) {
	cases := []struct {
		name    string
		status  string
		minutes int
		wantErr bool
	}{
		{"late with minutes", "late", 15, false},
		{"late without minutes", "late", 0, true},
		{"present with minutes", "present", 5, true},
		{"negative", "late", -1, true},
		{"absent", "absent", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := attendance.CreateAttendanceRequest{EmployeeID: employeeID, Date: "2025-06-02", Status: tc.status, LateMinutes: tc.minutes}
			err := req.Validate()
			if tc.wantErr {
				var verrs validator.ValidationErrors
				assert.ErrorAs(t, err, &verrs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "t1", attendance.CreateAttendanceRequest{EmployeeID: employeeID, Date: "2025-06-02", Status: "late", LateMinutes: 10})
	require.NoError(t, err)

	got, err := svc.Update(ctx, "t1", attendance.UpdateAttendanceRequest{ID: created.ID, Status: ptr("present")})
	require.NoError(t, err)
	assert.Equal(t, "present", got.Status)
	assert.Zero(t, got.LateMinutes)

	_, err = svc.Update(ctx, "t1", attendance.UpdateAttendanceRequest{ID: created.ID, LateMinutes: ptr(20)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "late_minutes", verrs[0].Field)

	got, err = svc.Update(ctx, "t1", attendance.UpdateAttendanceRequest{ID: created.ID, Status: ptr("late"), LateMinutes: ptr(20)})
	require.NoError(t, err)
	assert.Equal(t, 20, got.LateMinutes)
}

func TestUpdate_OtherTenant(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "t1", attendance.CreateAttendanceRequest{EmployeeID: employeeID, Date: "2025-06-02", Status: "present"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "t2", attendance.UpdateAttendanceRequest{ID: created.ID, Notes: ptr("x")})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
