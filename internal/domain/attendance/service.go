package attendance

import "context"

type AttendanceService interface {
	List(ctx context.Context, tenantID string, filter AttendanceFilter) ([]AttendanceResponse, int64, error)
	Get(ctx context.Context, tenantID, id string) (AttendanceResponse, error)
	Create(ctx context.Context, tenantID string, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, tenantID string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, tenantID, id string) error
}
